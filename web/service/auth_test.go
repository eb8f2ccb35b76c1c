package service

import (
	"errors"
	"testing"

	"finanzas-ui/database/model"
)

func TestLoginAndParseToken(t *testing.T) {
	resetDB(t)
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleAdmin)

	svc := NewAuthService([]byte("test-secret"))

	token, user, err := svc.Login("ana@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if user.Id != ana.Id {
		t.Errorf("user id = %d, expected %d", user.Id, ana.Id)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	principal, err := svc.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if principal.Id != ana.Id {
		t.Errorf("principal id = %d, expected %d", principal.Id, ana.Id)
	}
	if principal.Role != model.RoleAdmin {
		t.Errorf("principal role = %q", principal.Role)
	}
	if !principal.IsAdmin() {
		t.Error("admin token did not yield an admin principal")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	resetDB(t)
	seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)

	svc := NewAuthService([]byte("test-secret"))

	// unknown email and wrong password must look the same
	_, _, err := svc.Login("nadie@example.com", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", err)
	}
	_, _, err = svc.Login("ana@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
}

func TestParseTokenRejectsForgery(t *testing.T) {
	resetDB(t)
	seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)

	issuer := NewAuthService([]byte("test-secret"))
	token, _, err := issuer.Login("ana@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}

	verifier := NewAuthService([]byte("another-secret"))
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("token signed with another secret: got %v", err)
	}
	if _, err := issuer.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("garbage token: got %v", err)
	}
}
