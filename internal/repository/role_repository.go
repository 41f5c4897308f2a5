package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rsvp/internal/model"
)

// RoleRepository manages the fixed set of role rows.
type RoleRepository interface {
	Ensure(ctx context.Context, names ...model.RoleName) (map[model.RoleName]model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// Ensure returns the rows for names, creating missing ones.
func (r *roleRepository) Ensure(ctx context.Context, names ...model.RoleName) (map[model.RoleName]model.Role, error) {
	roles := make(map[model.RoleName]model.Role, len(names))
	for _, name := range names {
		var role model.Role
		if err := r.db.WithContext(ctx).
			Where(model.Role{Name: name}).
			FirstOrCreate(&role).Error; err != nil {
			return nil, fmt.Errorf("ensure role %s: %w", name, err)
		}
		roles[name] = role
	}
	return roles, nil
}
