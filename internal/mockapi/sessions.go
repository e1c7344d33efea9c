package mockapi

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/config"
)

// SessionStore tracks active session ids so logout can revoke a token
// before it expires.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error
	Active(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

// NewSessionStore returns a Redis-backed store when MOCK_REDIS_ADDR is set,
// matching the real backend's session layout, and an in-memory store
// otherwise.
func NewSessionStore(cfg config.MockConfig, logger *zap.Logger) SessionStore {
	if cfg.RedisAddr == "" {
		return newMemorySessions()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("sessions stored in redis", zap.String("addr", cfg.RedisAddr))
	}
	return &redisSessions{client: client}
}

const sessionKeyPrefix = "hospitalcm:session:"

type redisSessions struct {
	client *redis.Client
}

func (r *redisSessions) Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, strconv.Itoa(userID), ttl).Err()
}

func (r *redisSessions) Active(ctx context.Context, sessionID string) (bool, error) {
	count, err := r.client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *redisSessions) Revoke(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (r *redisSessions) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]time.Time)}
}

func (m *memorySessions) Save(_ context.Context, sessionID string, _ int, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = time.Now().Add(ttl)
	return nil
}

func (m *memorySessions) Active(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(m.sessions, sessionID)
		return false, nil
	}
	return true, nil
}

func (m *memorySessions) Revoke(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memorySessions) Ping(context.Context) error {
	return nil
}
