package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role identifies the kind of actor requesting a transition.
// Every edge of the order lifecycle names the roles allowed to initiate it;
// the aggregate rejects any other initiator with a ForbiddenTransitionError.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleBranchUser is the branch-side requester. Branch users create
	// orders, confirm approvals, raise issues, and confirm receipt.
	RoleBranchUser

	// RoleManager approves quantities, resolves issues, and drives the
	// arranging stages.
	RoleManager

	// RoleAdmin may do everything a manager may do.
	RoleAdmin

	// RolePackager drives the packaging sub-stages.
	RolePackager

	// RoleDispatcher moves packaged orders into transit.
	RoleDispatcher

	// RoleSystem is the internal actor used by scheduled jobs,
	// e.g. the automatic close of received orders.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleBranchUser: "BranchUser",
		RoleManager:    "Manager",
		RoleAdmin:      "Admin",
		RolePackager:   "Packager",
		RoleDispatcher: "Dispatcher",
		RoleSystem:     "System",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleBranchUser: "BranchUser",
		RoleManager:    "Manager",
		RoleAdmin:      "Admin",
		RolePackager:   "Packager",
		RoleDispatcher: "Dispatcher",
		RoleSystem:     "System",
	}
}

// AllRoles returns every valid role. Used by exhaustive transition tests.
func AllRoles() []Role {
	return []Role{RoleBranchUser, RoleManager, RoleAdmin, RolePackager, RoleDispatcher, RoleSystem}
}

// ParseRole converts a string representation (e.g. a JWT role claim) into a Role.
// Returns an error for unrecognized values.
func ParseRole(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Actor couples a user identity with the role it acts under.
// All transition methods of the Order aggregate take an Actor so that
// role checks and requester-identity checks share one input.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}
