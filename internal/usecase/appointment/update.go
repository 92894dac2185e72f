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

// UpdateAppointmentInput é parcial: campos nil ficam como estão.
type UpdateAppointmentInput struct {
	ID string

	ProfessionalID *string
	ServiceID      *string
	LocationID     *string

	ClientName  *string
	ClientPhone *string

	StartTime *time.Time
	EndTime   *time.Time

	Notes  *string
	Status *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	dir   domain.Directory
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	dir domain.Directory,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		dir:   dir,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() { metrics.IncWrite("update", outcome(err)) }()

	// --------------------------------------------------
	// 1️⃣ Referências informadas
	// --------------------------------------------------
	if in.ProfessionalID != nil {
		if _, err := resolveProfessional(ctx, uc.dir, *in.ProfessionalID); err != nil {
			return nil, err
		}
	}

	if in.ServiceID != nil {
		if _, err := resolveService(ctx, uc.dir, *in.ServiceID); err != nil {
			return nil, err
		}
	}

	if in.LocationID != nil {
		if _, err := resolveLocation(ctx, uc.dir, *in.LocationID); err != nil {
			return nil, err
		}
	}

	var previous models.Appointment

	// --------------------------------------------------
	// 2️⃣ Linha travada + merge (dentro da transação)
	// --------------------------------------------------
	prepare := func(tx domain.Repository) (*models.Appointment, bool, error) {
		current, err := lockAppointment(ctx, tx, in.ID)
		if err != nil {
			return nil, false, err
		}
		previous = *current

		checkOverlap, err := apply(ctx, tx, current, in)
		if err != nil {
			return nil, false, err
		}
		return current, checkOverlap, nil
	}
	write := func(tx domain.Repository, ap *models.Appointment) error {
		return amend(ctx, tx, ap)
	}

	// --------------------------------------------------
	// 3️⃣ Conflito (excluindo o próprio) + gravação
	// --------------------------------------------------
	ap, err = book(ctx, uc.repo, prepare, write)
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			recordConflict(uc.audit, ap)
		}
		return nil, err
	}

	if ap.Status != previous.Status {
		metrics.IncStatusTransition(ap.Status)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return reload(ctx, uc.repo, ap.ID)
}

// apply mescla a entrada parcial em ap e revalida o resultado.
// Retorna se o novo intervalo precisa passar pela checagem de conflito.
func apply(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	in UpdateAppointmentInput,
) (bool, error) {

	previous := *ap

	if in.ProfessionalID != nil {
		ap.ProfessionalID = *in.ProfessionalID
	}
	if in.ServiceID != nil {
		ap.ServiceID = *in.ServiceID
	}
	if in.LocationID != nil {
		ap.LocationID = *in.LocationID
	}

	// capacidade do par efetivo
	if ap.ProfessionalID != previous.ProfessionalID || ap.ServiceID != previous.ServiceID {
		if err := assertCapability(ctx, tx, ap.ProfessionalID, ap.ServiceID); err != nil {
			return false, err
		}
	}

	if in.ClientName != nil {
		ap.ClientName = *in.ClientName
	}
	if in.ClientPhone != nil {
		ap.ClientPhone = *in.ClientPhone
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.Status != nil && *in.Status != "" {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return false, err
		}
		ap.Status = string(status)
	}

	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		ap.EndTime = *in.EndTime
	}
	if !ap.StartTime.Before(ap.EndTime) {
		return false, errInvalidTimeRange()
	}

	status := domain.Status(ap.Status)
	moved := !ap.StartTime.Equal(previous.StartTime) ||
		!ap.EndTime.Equal(previous.EndTime) ||
		ap.ProfessionalID != previous.ProfessionalID
	reopened := !domain.Status(previous.Status).Blocking() && status.Blocking()

	return status.Blocking() && (moved || reopened), nil
}
