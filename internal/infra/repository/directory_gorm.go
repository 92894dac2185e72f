package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

func (r *DirectoryGormRepository) GetProfessional(
	ctx context.Context,
	id string,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, notFoundAsNil("professional", err)
	}
	return &p, nil
}

func (r *DirectoryGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error; err != nil {
		return nil, notFoundAsNil("service", err)
	}
	return &s, nil
}

func (r *DirectoryGormRepository) GetLocation(
	ctx context.Context,
	id string,
) (*models.Location, error) {

	var l models.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&l).Error; err != nil {
		return nil, notFoundAsNil("location", err)
	}
	return &l, nil
}

func notFoundAsNil(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return fmt.Errorf("get %s: %w", entity, err)
}

var _ domain.Directory = (*DirectoryGormRepository)(nil)
