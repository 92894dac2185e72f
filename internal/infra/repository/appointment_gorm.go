package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithTx(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Capability
// --------------------------------------------------

func (r *AppointmentGormRepository) HasCapability(
	ctx context.Context,
	professionalID string,
	serviceID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProfessionalService{}).
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check capability: %w", err)
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment (conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) LockProfessional(
	ctx context.Context,
	professionalID string,
) error {

	var p models.Professional
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", professionalID).
		Take(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lock professional: %w", err)
	}

	return nil
}

func (r *AppointmentGormRepository) HasTimeConflict(
	ctx context.Context,
	professionalID string,
	start time.Time,
	end time.Time,
	excludeID string,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			professionalID,
			string(domain.StatusCanceled),
			end,
			start,
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var ids []string
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, fmt.Errorf("check time conflict: %w", err)
	}

	return len(ids) > 0, nil
}

// --------------------------------------------------
// Appointment (crud)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

// updatableColumns são as colunas gravadas por UpdateAppointment.
var updatableColumns = []string{
	"professional_id",
	"service_id",
	"location_id",
	"client_name",
	"client_phone",
	"start_time",
	"end_time",
	"status",
	"notes",
	"updated_at",
}

// UpdateAppointment usa UPDATE explícito; Save viraria INSERT ... ON CONFLICT
// quando a linha já foi apagada.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Select(updatableColumns).
		Updates(ap)
	if res.Error != nil {
		return false, fmt.Errorf("update appointment: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock appointment: %w", err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.withReferences(ctx).
		Where("appointments.id = ?", id).
		Take(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return false, fmt.Errorf("delete appointment: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	q := r.withReferences(ctx)

	if filter.ProfessionalID != "" {
		q = q.Where("professional_id = ?", filter.ProfessionalID)
	}
	if filter.ServiceID != "" {
		q = q.Where("service_id = ?", filter.ServiceID)
	}
	if filter.LocationID != "" {
		q = q.Where("location_id = ?", filter.LocationID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.StartDate != nil {
		q = q.Where("start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("start_time <= ?", *filter.EndDate)
	}

	var apps []models.Appointment
	if err := q.
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) withReferences(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Service").
		Preload("Location")
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
