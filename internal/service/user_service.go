package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"usersadmin/internal/auth"
	apperrors "usersadmin/internal/errors"
	"usersadmin/internal/model"
	"usersadmin/internal/query"
	"usersadmin/internal/repository"
)

// UsersKey is the query key of the enriched user list.
const UsersKey query.Key = "users"

// UserService exposes the user management operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.EnrichedUser, error)
	UpdateRole(ctx context.Context, userID string, newRole model.Role) error
	AdminStatus(ctx context.Context, viewerID string) (auth.AdminStatus, error)
}

// Options tunes the user service.
type Options struct {
	// Atomic runs the delete and insert of a role change in one transaction.
	// When false the two writes are independent and an insert failure leaves
	// the user without a role row.
	Atomic bool
}

type userService struct {
	profiles repository.ProfileRepository
	roles    repository.UserRoleRepository
	queries  *query.Client
	update   query.Mutation[RoleChange]
}

// RoleChange is the input of a role update.
type RoleChange struct {
	UserID  string
	NewRole model.Role
}

var _ auth.AdminStatusProvider = (*userService)(nil)

// NewUserService builds a UserService over the profile and role repositories.
func NewUserService(
	profiles repository.ProfileRepository,
	roles repository.UserRoleRepository,
	queries *query.Client,
	opts Options,
) UserService {
	s := &userService{
		profiles: profiles,
		roles:    roles,
		queries:  queries,
	}
	s.update = query.Mutation[RoleChange]{
		Fn: func(ctx context.Context, in RoleChange) error {
			if opts.Atomic {
				return s.roles.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRoleRepository) error {
					return replaceRole(ctx, tx, in)
				})
			}
			return replaceRole(ctx, s.roles, in)
		},
		OnSuccess: func(ctx context.Context, in RoleChange) {
			if err := s.queries.Invalidate(ctx, UsersKey); err != nil {
				log.Printf("invalidate %s after role change of %s: %v", UsersKey, in.UserID, err)
			}
		},
	}
	return s
}

// ListUsers returns every profile, newest first, with its resolved role.
// Either underlying read failing fails the whole call.
func (s *userService) ListUsers(ctx context.Context) ([]model.EnrichedUser, error) {
	return query.Fetch(ctx, s.queries, UsersKey, func(ctx context.Context) ([]model.EnrichedUser, error) {
		profiles, err := s.profiles.ListNewestFirst(ctx)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		roles, err := s.roles.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list roles: %w", err)
		}
		return JoinRoles(profiles, roles), nil
	})
}

// UpdateRole replaces the role assignment of userID with newRole: the existing row is
// deleted, then the new one inserted. The cached user list is invalidated on success only.
func (s *userService) UpdateRole(ctx context.Context, userID string, newRole model.Role) error {
	if !newRole.Valid() {
		return apperrors.ErrInvalidRole
	}
	if _, err := s.profiles.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return fmt.Errorf("find profile: %w", err)
	}
	return s.update.Run(ctx, RoleChange{UserID: userID, NewRole: newRole})
}

// AdminStatus reports whether the viewer holds the admin role. The lookup is
// synchronous, so the status is never loading once returned.
func (s *userService) AdminStatus(ctx context.Context, viewerID string) (auth.AdminStatus, error) {
	rows, err := s.roles.FindByUserID(ctx, viewerID)
	if err != nil {
		return auth.AdminStatus{}, fmt.Errorf("find viewer role: %w", err)
	}
	role := model.DefaultRole
	if len(rows) > 0 {
		role = rows[0].Role
	}
	return auth.AdminStatus{IsAdmin: role == model.RoleAdmin}, nil
}

func replaceRole(ctx context.Context, roles repository.UserRoleRepository, in RoleChange) error {
	if err := roles.DeleteByUserID(ctx, in.UserID); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if err := roles.Create(ctx, &model.UserRole{UserID: in.UserID, Role: in.NewRole}); err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// JoinRoles resolves each profile's role from the role rows, preserving profile order.
// The first row for a user wins; users without a row get model.DefaultRole.
func JoinRoles(profiles []model.Profile, roles []model.UserRole) []model.EnrichedUser {
	byUser := make(map[string]model.Role, len(roles))
	for _, r := range roles {
		if _, seen := byUser[r.UserID]; !seen {
			byUser[r.UserID] = r.Role
		}
	}

	users := make([]model.EnrichedUser, 0, len(profiles))
	for _, p := range profiles {
		role, ok := byUser[p.ID]
		if !ok || role == "" {
			role = model.DefaultRole
		}
		users = append(users, model.EnrichedUser{
			ID:        p.ID,
			FullName:  p.FullName,
			Email:     p.Email,
			CreatedAt: p.CreatedAt,
			Role:      role,
		})
	}
	return users
}
