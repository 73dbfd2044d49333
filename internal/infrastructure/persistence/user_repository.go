package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func userNotFound(id int64) *shared.Error {
	return shared.NewNotFoundError(fmt.Sprintf("User with id %d not found.", id))
}

// GetByID finds a user by ID
func (r *GormUserRepository) GetByID(ctx context.Context, id int64) (shared.Outcome[*identity.User], error) {
	var m models.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.Fail[*identity.User](userNotFound(id)), nil
	}
	if err != nil {
		return shared.Outcome[*identity.User]{}, err
	}
	return shared.Ok(m.ToDomain()), nil
}

// GetByEmail finds a user by normalized e-mail address
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (shared.Outcome[*identity.User], error) {
	var m models.UserModel
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.Fail[*identity.User](shared.NewNotFoundError(fmt.Sprintf("User with email %s not found.", email))), nil
	}
	if err != nil {
		return shared.Outcome[*identity.User]{}, err
	}
	return shared.Ok(m.ToDomain()), nil
}

// GetAll returns every user ordered by id
func (r *GormUserRepository) GetAll(ctx context.Context) (shared.Outcome[[]*identity.User], error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return shared.Outcome[[]*identity.User]{}, err
	}
	users := make([]*identity.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].ToDomain())
	}
	return shared.Ok(users), nil
}

// Add inserts a user and returns it as stored
func (r *GormUserRepository) Add(ctx context.Context, u *identity.User) (shared.Outcome[*identity.User], error) {
	m := models.UserModelFromDomain(u)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return shared.Outcome[*identity.User]{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update overwrites a user and returns it as stored
func (r *GormUserRepository) Update(ctx context.Context, u *identity.User) (shared.Outcome[*identity.User], error) {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"role":          int(u.Role),
		})
	if result.Error != nil {
		return shared.Outcome[*identity.User]{}, result.Error
	}
	if result.RowsAffected == 0 {
		return shared.Fail[*identity.User](userNotFound(u.ID)), nil
	}
	return r.GetByID(ctx, u.ID)
}

// Remove deletes a user
func (r *GormUserRepository) Remove(ctx context.Context, id int64) (shared.Outcome[shared.Unit], error) {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return shared.Outcome[shared.Unit]{}, result.Error
	}
	if result.RowsAffected == 0 {
		return shared.Fail[shared.Unit](userNotFound(id)), nil
	}
	return shared.OkUnit(), nil
}
