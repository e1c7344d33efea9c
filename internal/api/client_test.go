package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/config"
	"github.com/azauting/hospitalcm/pkg/util"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(config.APIConfig{BaseURL: server.URL, RequestTimeoutSeconds: 5}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, server
}

func writeEnvelope(w http.ResponseWriter, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestSuccessfulEnvelopeDecodes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/my-ip" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeEnvelope(w, true, "", map[string]string{"ip": "10.1.2.3"})
	}))

	ip, err := client.MyIP(context.Background())
	if err != nil {
		t.Fatalf("MyIP: %v", err)
	}
	if ip != "10.1.2.3" {
		t.Fatalf("decoded ip: %q", ip)
	}
}

func TestEnvelopeRejectionBecomesAPIFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, false, "credenciales incorrectas", nil)
	}))

	_, err := client.Login(context.Background(), "x@y.cl", "bad")
	ce := util.ToClientError(err)
	if ce == nil || ce.Code != util.CodeAPIFailure {
		t.Fatalf("expected API_FAILURE, got %v", err)
	}
	if ce.Message != "credenciales incorrectas" {
		t.Fatalf("server message not preserved: %q", ce.Message)
	}
}

func TestUnauthorizedStatusMapsToUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Me(context.Background())
	if !util.IsUnauthorized(err) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestServerErrorStatusMapsToServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.MyTickets(context.Background())
	ce := util.ToClientError(err)
	if ce == nil || ce.Code != util.CodeServerError {
		t.Fatalf("expected SERVER_ERROR, got %v", err)
	}
}

func TestNetworkFailureMapsToNoConnection(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.MyTickets(context.Background())
	ce := util.ToClientError(err)
	if ce == nil || ce.Code != util.CodeNoConnection {
		t.Fatalf("expected NO_CONNECTION, got %v", err)
	}
}

func TestLoginValidatesBeforeRequest(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.Login(context.Background(), "", "secret")
	ce := util.ToClientError(err)
	if ce == nil || ce.Code != util.CodeValidation {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("validation must happen before the request")
	}
}

func TestCookieJarCarriesSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "hospitalcm_session", Value: "tok-123", Path: "/"})
			writeEnvelope(w, true, "", map[string]any{"user": map[string]any{"usuario_id": 1, "rol": "administrador"}})
		case "/api/auth/me":
			cookie, err := r.Cookie("hospitalcm_session")
			if err != nil || cookie.Value != "tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeEnvelope(w, true, "", map[string]any{"user": map[string]any{"usuario_id": 1, "rol": "administrador"}})
		}
	}))

	if _, err := client.Login(context.Background(), "a@b.cl", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me after login: %v", err)
	}
	if user.UserID != 1 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUnreviewedListAcceptsBothFieldNames(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, true, "", map[string]any{
			"tickets_sin_revisar": []map[string]any{{"ticket_id": 8, "asunto": "x"}},
		})
	}))

	tickets, err := client.UnreviewedTickets(context.Background())
	if err != nil {
		t.Fatalf("UnreviewedTickets: %v", err)
	}
	if len(tickets) != 1 || tickets[0].TicketID != 8 {
		t.Fatalf("fallback field not decoded: %v", tickets)
	}
}
