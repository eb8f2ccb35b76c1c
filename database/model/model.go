// Package model defines the persisted entities of the finanzas-ui panel.
package model

import "time"

// Movement types. These are the only two values the API accepts.
const (
	TypeIngreso = "ingreso"
	TypeEgreso  = "egreso"
)

// Role names. Static reference data seeded at startup.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash"`
	Phone        string `json:"phone"`
	RoleId       int    `json:"roleId" gorm:"not null"`
	Role         *Role  `json:"role,omitempty" gorm:"foreignKey:RoleId"`
}

// Movement is a single income or expense record. Every movement belongs
// to exactly one user.
type Movement struct {
	Id      int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Concept string    `json:"concept" gorm:"size:100;not null"`
	Amount  float64   `json:"amount" gorm:"not null"`
	Date    time.Time `json:"date" gorm:"not null"`
	Type    string    `json:"type" gorm:"not null;default:ingreso"`
	UserId  int       `json:"userId" gorm:"not null;index"`
	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserId"`
}
