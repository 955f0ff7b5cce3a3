package repository

import (
	"context"
	"errors"

	"evote-service/internal/models"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// FindOrCreate resolves an organization by slug, creating it on first use.
// The unique index on slug makes the upsert race-safe: a concurrent create
// loses with a duplicate-key error and re-reads.
func (r *OrganizationRepository) FindOrCreate(ctx context.Context, slug string, createdBy uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org = models.Organization{
		Slug:      slug,
		Name:      slug,
		CreatedBy: createdBy,
		Status:    models.OrganizationActive,
	}
	if err := r.db.WithContext(ctx).Create(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
			return &org, err
		}
		return nil, err
	}
	return &org, nil
}

// FindByID finds an organization by id
func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, id).Error
	return &org, err
}

// List returns all organizations, newest first
func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orgs).Error
	return orgs, err
}
