package service

import (
	"context"

	"evote-service/internal/models"
	"evote-service/internal/server/repository"
	"evote-service/pkg/response"
)

// Authorizer answers the one question every admin action asks: does this
// user administer this election?
type Authorizer struct {
	roleRepo *repository.RoleRepository
}

func NewAuthorizer(roleRepo *repository.RoleRepository) *Authorizer {
	return &Authorizer{roleRepo: roleRepo}
}

// RequireElectionAdmin returns ErrForbidden unless the user holds an
// approved admin role for the election or is a super-admin.
func (a *Authorizer) RequireElectionAdmin(ctx context.Context, userID, electionID uint) error {
	ok, err := a.roleRepo.HasApprovedRole(ctx, userID, electionID, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if !ok {
		if ok, err = a.roleRepo.IsSuperAdmin(ctx, userID); err != nil {
			return err
		}
	}
	if !ok {
		return response.ErrForbidden
	}
	return nil
}

// IsElectionAdmin is the non-failing variant, for read paths that change
// shape for admins.
func (a *Authorizer) IsElectionAdmin(ctx context.Context, userID, electionID uint) (bool, error) {
	ok, err := a.roleRepo.HasApprovedRole(ctx, userID, electionID, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil || ok {
		return ok, err
	}
	return a.roleRepo.IsSuperAdmin(ctx, userID)
}
