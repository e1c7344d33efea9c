package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/config"
	"github.com/azauting/hospitalcm/internal/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.MockConfig{
		JWTSecret:         "test-secret",
		SessionTTLMinutes: 60,
		BcryptCost:        4,
	}
	store := NewStore()
	if err := Seed(store, cfg.BcryptCost); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	sessions := NewSessionStore(cfg, zap.NewNop())
	return NewServer(cfg, store, sessions, zap.NewNop())
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, s *Server, method, path string, cookie *http.Cookie, body any) (*http.Response, testEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var env testEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	resp.Body.Close()
	return resp, env
}

func login(t *testing.T, s *Server, email, password string) *http.Cookie {
	t.Helper()
	resp, env := doRequest(t, s, http.MethodPost, "/api/login", nil, map[string]string{
		"correo": email, "contrasena": password,
	})
	if !env.Success {
		t.Fatalf("login %s failed: %s", email, env.Message)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie {
			return cookie
		}
	}
	t.Fatalf("login response carried no session cookie")
	return nil
}

func decodeData(t *testing.T, env testEnvelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	resp, env := doRequest(t, s, http.MethodPost, "/api/login", nil, map[string]string{
		"correo": "admin@hospitalcm.cl", "contrasena": "wrong",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("business rejections use HTTP 200, got %d", resp.StatusCode)
	}
	if env.Success {
		t.Fatalf("bad credentials accepted")
	}
}

func TestRequestWithoutSessionIsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	resp, _ := doRequest(t, s, http.MethodGet, "/api/auth/me", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRoleGateForbidsRequester(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "solicitante@hospitalcm.cl", "solicitante123")

	resp, _ := doRequest(t, s, http.MethodGet, "/api/users/soportes", cookie, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("requester reached an admin route: %d", resp.StatusCode)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "admin@hospitalcm.cl", "admin123")

	if _, env := doRequest(t, s, http.MethodPost, "/api/logout", cookie, nil); !env.Success {
		t.Fatalf("logout failed: %s", env.Message)
	}
	resp, _ := doRequest(t, s, http.MethodGet, "/api/auth/me", cookie, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("revoked session still accepted: %d", resp.StatusCode)
	}
}

func TestAssignBeforeClassificationIsRejected(t *testing.T) {
	s := newTestServer(t)
	admin := login(t, s, "admin@hospitalcm.cl", "admin123")

	// Ticket 1 is seeded open and unclassified.
	_, env := doRequest(t, s, http.MethodPatch, "/api/tickets/1/assign", admin, map[string]int{"soporte_id": 2})
	if env.Success {
		t.Fatalf("assignment accepted on an unclassified ticket")
	}
}

func TestTriageFlow(t *testing.T) {
	s := newTestServer(t)
	admin := login(t, s, "admin@hospitalcm.cl", "admin123")

	var units []domain.Unit
	_, env := doRequest(t, s, http.MethodGet, "/api/tipos/unidad", admin, nil)
	decodeData(t, env, &units)
	var priorities []domain.PriorityType
	_, env = doRequest(t, s, http.MethodGet, "/api/tipos/prioridad", admin, nil)
	decodeData(t, env, &priorities)
	if len(units) == 0 || len(priorities) == 0 {
		t.Fatalf("seed catalogs are empty")
	}

	_, env = doRequest(t, s, http.MethodPatch, "/api/tickets/1", admin, map[string]int{
		"unidad_id": units[0].UnitID, "prioridad_id": priorities[0].PriorityID,
	})
	if !env.Success {
		t.Fatalf("classification failed: %s", env.Message)
	}

	_, env = doRequest(t, s, http.MethodPatch, "/api/tickets/1/assign", admin, map[string]int{"soporte_id": 2})
	if !env.Success {
		t.Fatalf("assignment after classification failed: %s", env.Message)
	}

	_, env = doRequest(t, s, http.MethodPatch, "/api/tickets/1/review", admin, nil)
	if !env.Success {
		t.Fatalf("review failed: %s", env.Message)
	}

	_, env = doRequest(t, s, http.MethodGet, "/api/tickets/1", admin, nil)
	var wrapper struct {
		Ticket domain.TicketBundle `json:"ticket"`
	}
	decodeData(t, env, &wrapper)
	if wrapper.Ticket.Ticket.Status != string(domain.TicketStatusReviewed) {
		t.Fatalf("status after review: %s", wrapper.Ticket.Ticket.Status)
	}

	_, env = doRequest(t, s, http.MethodPatch, "/api/tickets/1/close", admin, map[string]string{
		"respuesta_final": "se reemplazó el tóner",
	})
	if !env.Success {
		t.Fatalf("close failed: %s", env.Message)
	}
}

func TestRequesterCanCancelOwnOpenTicket(t *testing.T) {
	s := newTestServer(t)
	requester := login(t, s, "solicitante@hospitalcm.cl", "solicitante123")

	_, env := doRequest(t, s, http.MethodPatch, "/api/tickets/1/cancel", requester, nil)
	if !env.Success {
		t.Fatalf("owner cancel failed: %s", env.Message)
	}

	_, env = doRequest(t, s, http.MethodPatch, "/api/tickets/1/cancel", requester, nil)
	if env.Success {
		t.Fatalf("cancel of a cancelled ticket accepted")
	}
}

func TestMovementLogRecordsLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := login(t, s, "admin@hospitalcm.cl", "admin123")

	_, env := doRequest(t, s, http.MethodGet, "/api/tickets/movimientos/recientes", admin, nil)
	var movements []domain.Movement
	decodeData(t, env, &movements)
	if len(movements) == 0 {
		t.Fatalf("seed produced no movements")
	}
	// Newest first: the seed's last action is the support assignment.
	if movements[0].Kind != "asignacion_soporte" {
		t.Fatalf("newest movement: %s", movements[0].Kind)
	}
}

func TestCreateTicketAndListIt(t *testing.T) {
	s := newTestServer(t)
	requester := login(t, s, "solicitante@hospitalcm.cl", "solicitante123")
	admin := login(t, s, "admin@hospitalcm.cl", "admin123")

	var locations struct {
		Types struct {
			Locations []domain.Location `json:"ubicaciones"`
		} `json:"tipos_ubicacion"`
	}
	_, env := doRequest(t, s, http.MethodGet, "/api/tipos/ubicacion", requester, nil)
	decodeData(t, env, &locations)
	if len(locations.Types.Locations) == 0 {
		t.Fatalf("seed has no locations")
	}

	_, env = doRequest(t, s, http.MethodPost, "/api/tickets", requester, map[string]any{
		"asunto":       "Pantalla parpadea",
		"descripcion":  "El monitor del mesón parpadea de forma intermitente.",
		"ubicacion_id": locations.Types.Locations[0].LocationID,
	})
	if !env.Success {
		t.Fatalf("create failed: %s", env.Message)
	}

	_, env = doRequest(t, s, http.MethodGet, "/api/tickets/sin-revisar", admin, nil)
	var list struct {
		Tickets []domain.TicketSummary `json:"tickets"`
	}
	decodeData(t, env, &list)
	found := false
	for _, ticket := range list.Tickets {
		if ticket.Subject == "Pantalla parpadea" {
			found = true
			if ticket.Status != string(domain.TicketStatusOpen) {
				t.Fatalf("new ticket status: %s", ticket.Status)
			}
		}
	}
	if !found {
		t.Fatalf("created ticket missing from the unreviewed list")
	}
}

func TestAdminCreatesUser(t *testing.T) {
	s := newTestServer(t)
	admin := login(t, s, "admin@hospitalcm.cl", "admin123")

	_, env := doRequest(t, s, http.MethodPost, "/api/new-user", admin, map[string]any{
		"nombre_completo": "Nuevo Soporte",
		"correo":          "nuevo@hospitalcm.cl",
		"contrasena":      "clave123",
		"rol_id":          2,
	})
	if !env.Success {
		t.Fatalf("create user failed: %s", env.Message)
	}

	// Duplicate email is rejected.
	_, env = doRequest(t, s, http.MethodPost, "/api/new-user", admin, map[string]any{
		"nombre_completo": "Otro",
		"correo":          "nuevo@hospitalcm.cl",
		"contrasena":      "clave123",
		"rol_id":          2,
	})
	if env.Success {
		t.Fatalf("duplicate email accepted")
	}

	if login(t, s, "nuevo@hospitalcm.cl", "clave123") == nil {
		t.Fatalf("new user cannot log in")
	}
}
