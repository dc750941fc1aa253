// Package userdir resolves role audiences to the users that hold them.
// The fan-out addresses notices to roles; this adapter turns a role into
// concrete user IDs.
package userdir

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents one directory entry. Branch users carry the branch they
// belong to; warehouse-side roles are global and have no branch.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string
	Role      string     `gorm:"index"`
	BranchID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for directory entries.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM user directory.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// UserIDsByRole retrieves the IDs of all users holding the given role with
// visibility of the given branch. Branch users are scoped to their branch;
// every other role is warehouse-wide.
func (d *GormUserDirectory) UserIDsByRole(
	ctx context.Context, role order.Role, branchID kernel.UUID,
) ([]kernel.UUID, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	query := d.db.WithContext(ctx).Model(&UserDTO{}).Where("role = ?", role.String())
	if role == order.RoleBranchUser {
		query = query.Where("branch_id = ?", branchID.Bytes())
	}

	var ids []uuid.UUID
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	users := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		userID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		users = append(users, userID)
	}

	return users, nil
}
