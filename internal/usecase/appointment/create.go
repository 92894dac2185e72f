package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID string
	ServiceID      string
	LocationID     string

	ClientName  string
	ClientPhone string

	StartTime time.Time
	// EndTime nil → início + duração do serviço
	EndTime *time.Time

	Notes  string
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	dir   domain.Directory
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	dir domain.Directory,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		dir:   dir,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() { metrics.IncWrite("create", outcome(err)) }()

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Referências
	// --------------------------------------------------
	if _, err := resolveProfessional(ctx, uc.dir, in.ProfessionalID); err != nil {
		return nil, err
	}

	service, err := resolveService(ctx, uc.dir, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if _, err := resolveLocation(ctx, uc.dir, in.LocationID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Capacidade
	// --------------------------------------------------
	if err := assertCapability(ctx, uc.repo, in.ProfessionalID, in.ServiceID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Janela de tempo
	// --------------------------------------------------
	end := domain.ResolveEnd(in.StartTime, in.EndTime, service.Duration())
	if !in.StartTime.Before(end) {
		return nil, errInvalidTimeRange()
	}

	// --------------------------------------------------
	// 4️⃣ Conflito + gravação
	// --------------------------------------------------
	ap = &models.Appointment{
		ProfessionalID: in.ProfessionalID,
		ServiceID:      in.ServiceID,
		LocationID:     in.LocationID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		StartTime:      in.StartTime,
		EndTime:        end,
		Status:         string(status),
		Notes:          in.Notes,
	}

	prepare := func(domain.Repository) (*models.Appointment, bool, error) {
		return ap, status.Blocking(), nil
	}
	write := func(tx domain.Repository, ap *models.Appointment) error {
		return tx.CreateAppointment(ctx, ap)
	}

	if _, err = book(ctx, uc.repo, prepare, write); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			recordConflict(uc.audit, ap)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return reload(ctx, uc.repo, ap.ID)
}
