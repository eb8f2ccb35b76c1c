package service

import (
	"errors"
	"testing"
	"time"

	"finanzas-ui/database"
	"finanzas-ui/database/model"
	"finanzas-ui/web/authz"
)

func TestResolveOwner(t *testing.T) {
	resetDB(t)
	owner := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	movement := seedMovement(t, owner.Id, "Nómina", 1200, model.TypeIngreso, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	var svc MovementService

	gotOwner, err := svc.ResolveOwner(movement.Id)
	if err != nil {
		t.Fatal(err)
	}
	if gotOwner != owner.Id {
		t.Errorf("owner = %d, expected %d", gotOwner, owner.Id)
	}

	_, err = svc.ResolveOwner(999)
	if err == nil {
		t.Fatal("expected error for missing movement")
	}
	if !database.IsNotFound(err) {
		t.Errorf("expected record-not-found, got %v", err)
	}
}

func TestListMovementsScoping(t *testing.T) {
	resetDB(t)
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	luis := seedUser(t, "Luis", "luis@example.com", "secret", model.RoleUser)
	seedMovement(t, ana.Id, "Nómina", 1200, model.TypeIngreso, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	seedMovement(t, ana.Id, "Alquiler", 700, model.TypeEgreso, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	seedMovement(t, luis.Id, "Venta", 300, model.TypeIngreso, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))

	var svc MovementService

	all, err := svc.ListMovements(authz.ScopeAll, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("admin scope: got %d movements, expected 3", len(all))
	}
	if all[0].User == nil {
		t.Error("admin scope should preload the owning user")
	}
	// newest first
	if len(all) == 3 && all[0].Concept != "Venta" {
		t.Errorf("first movement = %q, expected newest", all[0].Concept)
	}

	own, err := svc.ListMovements(authz.ScopeOwned, ana.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 2 {
		t.Errorf("owned scope: got %d movements, expected 2", len(own))
	}
	for _, m := range own {
		if m.UserId != ana.Id {
			t.Errorf("owned scope leaked movement of user %d", m.UserId)
		}
	}

	none, err := svc.ListMovements(authz.ScopeNone, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("ScopeNone returned %d movements", len(none))
	}
}

func TestCreateMovement(t *testing.T) {
	resetDB(t)
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)

	var svc MovementService
	in := MovementInput{
		Concept: "Venta bicicleta",
		Amount:  250,
		Date:    time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Type:    model.TypeIngreso,
	}

	movement, err := svc.CreateMovement(in, ana.Id)
	if err != nil {
		t.Fatal(err)
	}
	if movement.Id == 0 {
		t.Error("movement id not assigned")
	}
	if movement.UserId != ana.Id {
		t.Errorf("UserId = %d, expected %d", movement.UserId, ana.Id)
	}

	_, err = svc.CreateMovement(in, 999)
	if !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("expected ErrOwnerNotFound for unknown owner, got %v", err)
	}
}

func TestUpdateMovementReassignsOwner(t *testing.T) {
	resetDB(t)
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	luis := seedUser(t, "Luis", "luis@example.com", "secret", model.RoleUser)
	movement := seedMovement(t, ana.Id, "Nómina", 1200, model.TypeIngreso, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	var svc MovementService
	in := MovementInput{
		Concept: "Nómina julio",
		Amount:  1250,
		Date:    time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		Type:    model.TypeIngreso,
	}

	// keep owner when newOwnerId is zero
	updated, err := svc.UpdateMovement(movement.Id, in, 0)
	if err != nil {
		t.Fatal(err)
	}
	if updated.UserId != ana.Id {
		t.Errorf("owner changed unexpectedly to %d", updated.UserId)
	}
	if updated.Concept != "Nómina julio" || updated.Amount != 1250 {
		t.Errorf("fields not applied: %+v", updated)
	}

	// reassign to another existing user
	updated, err = svc.UpdateMovement(movement.Id, in, luis.Id)
	if err != nil {
		t.Fatal(err)
	}
	if updated.UserId != luis.Id {
		t.Errorf("UserId = %d, expected %d", updated.UserId, luis.Id)
	}

	// reassign to a ghost
	_, err = svc.UpdateMovement(movement.Id, in, 999)
	if !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestDeleteMovement(t *testing.T) {
	resetDB(t)
	ana := seedUser(t, "Ana", "ana@example.com", "secret", model.RoleUser)
	movement := seedMovement(t, ana.Id, "Café", 3, model.TypeEgreso, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	var svc MovementService
	if err := svc.DeleteMovement(movement.Id); err != nil {
		t.Fatal(err)
	}

	err := svc.DeleteMovement(movement.Id)
	if !database.IsNotFound(err) {
		t.Errorf("expected record-not-found on double delete, got %v", err)
	}
}
