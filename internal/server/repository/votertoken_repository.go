package repository

import (
	"context"
	"errors"
	"time"

	"evote-service/internal/models"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type VoterTokenRepository struct {
	db *gorm.DB
}

func NewVoterTokenRepository(db *gorm.DB) *VoterTokenRepository {
	return &VoterTokenRepository{db: db}
}

// CreateToken stores one issued token. A duplicate of (election, token) is
// reported so the caller can re-roll.
func (r *VoterTokenRepository) CreateToken(ctx context.Context, token *models.VoterToken) error {
	err := r.db.WithContext(ctx).Create(token).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

// ListByElection returns the issued tokens of an election, newest first
func (r *VoterTokenRepository) ListByElection(ctx context.Context, electionID uint) ([]models.VoterToken, error) {
	var tokens []models.VoterToken
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}

// Redeem consumes a voter token: in one transaction it looks up the unused
// token, creates the anonymous identity, creates the approved voter role and
// flips is_used. The conditional update guarded on is_used=false decides the
// race: the loser sees zero rows affected and the whole transaction rolls
// back, so a token can never mint two identities.
//
// Wrong token, wrong election and already-used are all reported as the same
// ErrNotFound so callers cannot tell which it was.
func (r *VoterTokenRepository) Redeem(ctx context.Context, tokenStr string, electionID uint, now time.Time, user *models.User, role *models.Role) (*models.VoterToken, error) {
	var vt models.VoterToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("token = ? AND election_id = ? AND is_used = ?", tokenStr, electionID, false).
			First(&vt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrNotFound
			}
			return err
		}
		if now.After(vt.ExpiresAt) {
			return response.ErrTokenExpired
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		role.UserID = user.ID
		role.ElectionID = vt.ElectionID
		role.OrganizationID = vt.OrganizationID
		role.Role = models.RoleVoter
		role.Status = models.RoleStatusApproved
		if err := tx.Create(role).Error; err != nil {
			return err
		}

		res := tx.Model(&models.VoterToken{}).
			Where("id = ? AND is_used = ?", vt.ID, false).
			Updates(map[string]interface{}{
				"is_used": true,
				"used_by": user.ID,
				"used_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.ErrNotFound
		}

		vt.IsUsed = true
		vt.UsedBy = &user.ID
		vt.UsedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vt, nil
}
