package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"finanzas-ui/database"
	"finanzas-ui/database/model"
	"finanzas-ui/util/common"
	"finanzas-ui/util/crypto"
	"finanzas-ui/web/authz"
)

const tokenLifetime = 72 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies credentials and issues bearer tokens for API
// clients that do not hold a session cookie.
type AuthService struct {
	JWTSecret []byte
}

func NewAuthService(secret []byte) *AuthService {
	return &AuthService{JWTSecret: secret}
}

// Login checks email and password against the store and returns the user
// together with a signed token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(email, rawPassword string) (string, *model.User, error) {
	db := database.GetDB()

	var user model.User
	if err := db.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !crypto.CheckPassword(user.PasswordHash, rawPassword) {
		return "", nil, ErrInvalidCredentials
	}

	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}
	claims := jwt.MapClaims{
		"id":   user.Id,
		"role": role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ParseToken validates a bearer token and reconstructs the principal it
// was issued for.
func (s *AuthService) ParseToken(tokenString string) (*authz.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.NewErrorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	role, _ := claims["role"].(string)

	return &authz.Principal{Id: int(id), Role: role}, nil
}
