package service

import (
	"errors"
	"time"

	"finanzas-ui/database"
	"finanzas-ui/database/model"
	"finanzas-ui/web/authz"

	"gorm.io/gorm"
)

var ErrOwnerNotFound = errors.New("owner user not found")

// MovementService manages income/expense records. It also resolves
// movement ownership for the policy engine.
type MovementService struct{}

// ResolveOwner maps a movement id to its owning user id. It reads only
// the owner column; no other movement field leaves this method, so a
// denied request learns nothing about the record. Not-found surfaces as
// a gorm record-not-found error, checked with database.IsNotFound.
func (s *MovementService) ResolveOwner(movementId int) (int, error) {
	db := database.GetDB()

	var ownerId int
	err := db.Model(&model.Movement{}).
		Select("user_id").
		Where("id = ?", movementId).
		Take(&ownerId).Error
	if err != nil {
		return 0, err
	}
	return ownerId, nil
}

// ListMovements returns movements visible under the given scope, newest
// first. Admin scope preloads the owner so the panel can show names.
func (s *MovementService) ListMovements(scope authz.Scope, ownerId int) ([]model.Movement, error) {
	db := database.GetDB()

	query := db.Model(&model.Movement{}).Order("date DESC")
	switch scope {
	case authz.ScopeAll:
		query = query.Preload("User")
	case authz.ScopeOwned:
		query = query.Where("user_id = ?", ownerId)
	default:
		return []model.Movement{}, nil
	}

	var movements []model.Movement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (s *MovementService) GetMovement(id int) (*model.Movement, error) {
	db := database.GetDB()

	var movement model.Movement
	if err := db.Preload("User").First(&movement, id).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

// CreateMovement persists a validated movement for ownerId. The owner
// comes from the authorization decision, never from the raw payload.
func (s *MovementService) CreateMovement(in MovementInput, ownerId int) (*model.Movement, error) {
	db := database.GetDB()

	var owner model.User
	if err := db.First(&owner, ownerId).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	movement := &model.Movement{
		Concept: in.Concept,
		Amount:  in.Amount,
		Date:    in.Date,
		Type:    in.Type,
		UserId:  owner.Id,
	}
	if err := db.Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

// UpdateMovement applies a validated payload to an existing movement.
// newOwnerId reassigns ownership when non-zero; the caller has already
// established that the principal may do so.
func (s *MovementService) UpdateMovement(id int, in MovementInput, newOwnerId int) (*model.Movement, error) {
	db := database.GetDB()

	var movement model.Movement
	if err := db.First(&movement, id).Error; err != nil {
		return nil, err
	}

	if newOwnerId != 0 && newOwnerId != movement.UserId {
		var owner model.User
		if err := db.First(&owner, newOwnerId).Error; err != nil {
			if database.IsNotFound(err) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
		movement.UserId = owner.Id
	}

	movement.Concept = in.Concept
	movement.Amount = in.Amount
	movement.Date = in.Date
	movement.Type = in.Type
	if err := db.Save(&movement).Error; err != nil {
		return nil, err
	}

	return s.GetMovement(movement.Id)
}

func (s *MovementService) DeleteMovement(id int) error {
	db := database.GetDB()

	result := db.Delete(&model.Movement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AllMovements returns every movement with its owner, for the admin
// export endpoint.
func (s *MovementService) AllMovements() ([]model.Movement, error) {
	db := database.GetDB()

	var movements []model.Movement
	if err := db.Preload("User").Order("date DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// movementsBetween returns movements in [from, to) under the given scope,
// oldest first, for report aggregation.
func (s *MovementService) movementsBetween(scope authz.Scope, ownerId int, from, to time.Time) ([]model.Movement, error) {
	db := database.GetDB()

	query := db.Model(&model.Movement{}).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC")
	switch scope {
	case authz.ScopeAll:
	case authz.ScopeOwned:
		query = query.Where("user_id = ?", ownerId)
	default:
		return []model.Movement{}, nil
	}

	var movements []model.Movement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
