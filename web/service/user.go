package service

import (
	"errors"

	"finanzas-ui/database"
	"finanzas-ui/database/model"
	"finanzas-ui/util/crypto"
)

var (
	ErrEmailInUse       = errors.New("email already in use")
	ErrMissingFields    = errors.New("all fields are required")
	ErrUserHasMovements = errors.New("user has movements")
	ErrUnknownRole      = errors.New("unknown role")
)

// UserService manages user accounts. Authorization happens before any of
// these methods run; they only enforce data rules.
type UserService struct{}

// UserDTO is the outward shape of a user. The password hash never leaves
// the service layer.
type UserDTO struct {
	Id     int         `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Phone  string      `json:"phone"`
	RoleId int         `json:"roleId"`
	Role   *model.Role `json:"role,omitempty"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		Id:     u.Id,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		RoleId: u.RoleId,
		Role:   u.Role,
	}
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	var user model.User
	if err := db.Preload("Role").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]UserDTO, error) {
	db := database.GetDB()

	var users []model.User
	if err := db.Preload("Role").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out, nil
}

func (s *UserService) CreateUser(name, email, rawPassword, phone string, roleId int) (UserDTO, error) {
	if name == "" || email == "" || rawPassword == "" || phone == "" || roleId == 0 {
		return UserDTO{}, ErrMissingFields
	}

	db := database.GetDB()

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return UserDTO{}, ErrEmailInUse
	}
	if !database.IsNotFound(err) {
		return UserDTO{}, err
	}

	var role model.Role
	if err := db.First(&role, roleId).Error; err != nil {
		if database.IsNotFound(err) {
			return UserDTO{}, ErrUnknownRole
		}
		return UserDTO{}, err
	}

	hash, err := crypto.HashPassword(rawPassword)
	if err != nil {
		return UserDTO{}, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		RoleId:       role.Id,
		Role:         &role,
	}
	if err := db.Create(user).Error; err != nil {
		// The uniqueness check above races with concurrent creates; the
		// index is the authority.
		if database.IsDuplicate(err) {
			return UserDTO{}, ErrEmailInUse
		}
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (s *UserService) UpdateUser(id int, name, email, phone string, roleId int) (UserDTO, error) {
	if name == "" || email == "" || phone == "" || roleId == 0 {
		return UserDTO{}, ErrMissingFields
	}

	db := database.GetDB()

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		return UserDTO{}, err
	}

	// Email must stay unique, excluding the user being updated.
	var existing model.User
	err := db.Where("email = ? AND id <> ?", email, id).First(&existing).Error
	if err == nil {
		return UserDTO{}, ErrEmailInUse
	}
	if !database.IsNotFound(err) {
		return UserDTO{}, err
	}

	var role model.Role
	if err := db.First(&role, roleId).Error; err != nil {
		if database.IsNotFound(err) {
			return UserDTO{}, ErrUnknownRole
		}
		return UserDTO{}, err
	}

	user.Name = name
	user.Email = email
	user.Phone = phone
	user.RoleId = role.Id
	user.Role = &role
	if err := db.Save(&user).Error; err != nil {
		if database.IsDuplicate(err) {
			return UserDTO{}, ErrEmailInUse
		}
		return UserDTO{}, err
	}
	return toUserDTO(&user), nil
}

// DeleteUser removes a user. Deletion is refused while the user still
// owns movements; the records would lose their owner otherwise.
func (s *UserService) DeleteUser(id int) error {
	db := database.GetDB()

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.Movement{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserHasMovements
	}

	return db.Delete(&model.User{}, id).Error
}

func (s *UserService) ListRoles() ([]model.Role, error) {
	db := database.GetDB()

	var roles []model.Role
	if err := db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
