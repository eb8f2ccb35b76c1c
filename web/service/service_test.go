package service

import (
	"os"
	"testing"
	"time"

	"finanzas-ui/database"
	"finanzas-ui/database/model"
	"finanzas-ui/logger"
	"finanzas-ui/util/crypto"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	if err := database.InitTestDB(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// resetDB wipes users and movements between tests. Seeded roles stay.
func resetDB(t *testing.T) {
	t.Helper()
	db := database.GetDB()
	if err := db.Exec("DELETE FROM movements").Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		t.Fatal(err)
	}
}

func roleId(t *testing.T, name string) int {
	t.Helper()
	var role model.Role
	if err := database.GetDB().Where("name = ?", name).First(&role).Error; err != nil {
		t.Fatalf("role %q not seeded: %v", name, err)
	}
	return role.Id
}

func seedUser(t *testing.T, name, email, password, roleName string) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        "555-0100",
		RoleId:       roleId(t, roleName),
	}
	if err := database.GetDB().Create(user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func seedMovement(t *testing.T, ownerId int, concept string, amount float64, movType string, date time.Time) *model.Movement {
	t.Helper()
	movement := &model.Movement{
		Concept: concept,
		Amount:  amount,
		Date:    date,
		Type:    movType,
		UserId:  ownerId,
	}
	if err := database.GetDB().Create(movement).Error; err != nil {
		t.Fatal(err)
	}
	return movement
}
