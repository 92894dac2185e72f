package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute ordena por início, ascendente.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, httperr.ErrBadRequest("invalid_status", "Status inválido.")
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, httperr.ErrInternal("appointment_list_failed", err)
	}
	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}
