package session

import (
	"testing"

	"github.com/azauting/hospitalcm/internal/domain"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	if store.LoggedIn() {
		t.Fatalf("fresh store must be empty")
	}
	if store.Current() != nil {
		t.Fatalf("Current on empty store must be nil")
	}

	user := &domain.User{UserID: 1, FullName: "Ana Riquelme", Role: domain.RoleAdmin}
	store.Set(user)
	if !store.LoggedIn() {
		t.Fatalf("store should report logged in")
	}
	if got := store.Current(); got == nil || got.UserID != 1 {
		t.Fatalf("Current returned %+v", got)
	}

	store.Clear()
	if store.LoggedIn() {
		t.Fatalf("store should be empty after Clear")
	}
}

func TestHasRole(t *testing.T) {
	store := NewStore()
	if store.HasRole(domain.RoleAdmin) {
		t.Fatalf("empty store has no roles")
	}

	store.Set(&domain.User{UserID: 2, Role: domain.RoleSupport})
	if !store.HasRole(domain.RoleSupport) {
		t.Fatalf("expected soporte role")
	}
	if store.HasRole(domain.RoleAdmin) {
		t.Fatalf("soporte user must not pass the admin check")
	}
}
