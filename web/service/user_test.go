package service

import (
	"errors"
	"testing"
	"time"

	"finanzas-ui/database"
	"finanzas-ui/database/model"
)

func TestCreateUser(t *testing.T) {
	resetDB(t)
	var svc UserService

	dto, err := svc.CreateUser("Ana", "ana@example.com", "secret", "555-0101", roleId(t, model.RoleUser))
	if err != nil {
		t.Fatal(err)
	}
	if dto.Id == 0 {
		t.Error("user id not assigned")
	}
	if dto.Role == nil || dto.Role.Name != model.RoleUser {
		t.Errorf("role not attached: %+v", dto.Role)
	}

	// password is stored hashed; logging in with the raw one still works
	auth := NewAuthService([]byte("test-secret"))
	if _, _, err := auth.Login("ana@example.com", "secret"); err != nil {
		t.Errorf("login with the created password failed: %v", err)
	}

	_, err = svc.CreateUser("Otra Ana", "ana@example.com", "secret", "555-0102", roleId(t, model.RoleUser))
	if !errors.Is(err, ErrEmailInUse) {
		t.Errorf("duplicate email: got %v, expected ErrEmailInUse", err)
	}

	_, err = svc.CreateUser("", "luis@example.com", "secret", "555-0103", roleId(t, model.RoleUser))
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("empty name: got %v, expected ErrMissingFields", err)
	}

	_, err = svc.CreateUser("Luis", "luis@example.com", "secret", "555-0103", 999)
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("ghost role: got %v, expected ErrUnknownRole", err)
	}
}

func TestDuplicateEmailCaughtByStore(t *testing.T) {
	resetDB(t)
	seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)

	// bypass the service-level check; the unique index must still hold
	dup := &model.User{
		Name:         "Otra Ana",
		Email:        "ana@example.com",
		PasswordHash: "x",
		Phone:        "555-0104",
		RoleId:       roleId(t, model.RoleUser),
	}
	err := database.GetDB().Create(dup).Error
	if err == nil {
		t.Fatal("duplicate email accepted by the store")
	}
	if !database.IsDuplicate(err) {
		t.Errorf("expected a duplicate-key error, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	resetDB(t)
	var svc UserService
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	seedUser(t, "Luis", "luis@example.com", "secret", model.RoleUser)

	dto, err := svc.UpdateUser(ana.Id, "Ana María", "ana@example.com", "555-0110", roleId(t, model.RoleAdmin))
	if err != nil {
		t.Fatal(err)
	}
	if dto.Name != "Ana María" {
		t.Errorf("Name = %q", dto.Name)
	}
	if dto.Role == nil || dto.Role.Name != model.RoleAdmin {
		t.Errorf("role change not applied: %+v", dto.Role)
	}

	// taking another user's email is refused; keeping your own is fine
	_, err = svc.UpdateUser(ana.Id, "Ana", "luis@example.com", "555-0110", roleId(t, model.RoleUser))
	if !errors.Is(err, ErrEmailInUse) {
		t.Errorf("stolen email: got %v, expected ErrEmailInUse", err)
	}
	if _, err := svc.UpdateUser(ana.Id, "Ana", "ana@example.com", "555-0110", roleId(t, model.RoleUser)); err != nil {
		t.Errorf("keeping own email failed: %v", err)
	}

	_, err = svc.UpdateUser(999, "Nadie", "nadie@example.com", "555-0111", roleId(t, model.RoleUser))
	if !database.IsNotFound(err) {
		t.Errorf("missing user: got %v, expected record-not-found", err)
	}
}

func TestDeleteUserRefusedWhileOwningMovements(t *testing.T) {
	resetDB(t)
	var svc UserService
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	movement := seedMovement(t, ana.Id, "Nómina", 1200, model.TypeIngreso, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	err := svc.DeleteUser(ana.Id)
	if !errors.Is(err, ErrUserHasMovements) {
		t.Fatalf("got %v, expected ErrUserHasMovements", err)
	}

	var movSvc MovementService
	if err := movSvc.DeleteMovement(movement.Id); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteUser(ana.Id); err != nil {
		t.Fatalf("delete after clearing movements: %v", err)
	}

	err = svc.DeleteUser(ana.Id)
	if !database.IsNotFound(err) {
		t.Errorf("double delete: got %v, expected record-not-found", err)
	}
}

func TestListUsersOmitsSecrets(t *testing.T) {
	resetDB(t)
	var svc UserService
	seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	seedUser(t, "Luis", "luis@example.com", "secret", model.RoleAdmin)

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, expected 2", len(users))
	}
	for _, u := range users {
		if u.Role == nil {
			t.Errorf("user %d has no role attached", u.Id)
		}
	}
}
