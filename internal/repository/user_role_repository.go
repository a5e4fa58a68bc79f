package repository

import (
	"context"

	"gorm.io/gorm"

	"usersadmin/internal/model"
)

// UserRoleRepository defines persistence operations on the user_roles table.
type UserRoleRepository interface {
	Create(ctx context.Context, role *model.UserRole) error
	List(ctx context.Context) ([]model.UserRole, error)
	FindByUserID(ctx context.Context, userID string) ([]model.UserRole, error)
	DeleteByUserID(ctx context.Context, userID string) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRoleRepository) error) error
}

type userRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository creates a new user role repository.
func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

// Create inserts a role assignment.
func (r *userRoleRepository) Create(ctx context.Context, role *model.UserRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// List returns every role assignment, unfiltered, in insertion order.
func (r *userRoleRepository) List(ctx context.Context) ([]model.UserRole, error) {
	roles := []model.UserRole{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// FindByUserID returns the role assignments of a single user.
func (r *userRoleRepository) FindByUserID(ctx context.Context, userID string) ([]model.UserRole, error) {
	roles := []model.UserRole{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// DeleteByUserID removes every role assignment of a user. Deleting nothing is not an error.
func (r *userRoleRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserRole{}).Error
}

// WithTransaction executes a function within a database transaction.
func (r *userRoleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRoleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &userRoleRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
