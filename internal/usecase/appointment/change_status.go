package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ChangeAppointmentStatus aplica uma ação de domínio (cancelar, concluir,
// falta) a um agendamento agendado.
type ChangeAppointmentStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	action domain.Action
	event  string
}

func NewCancelAppointment(repo domain.Repository, audit *audit.Dispatcher) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{repo: repo, audit: audit, action: domain.Cancel, event: "appointment_canceled"}
}

func NewCompleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{repo: repo, audit: audit, action: domain.Complete, event: "appointment_completed"}
}

func NewMarkNoShow(repo domain.Repository, audit *audit.Dispatcher) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{repo: repo, audit: audit, action: domain.MarkNoShow, event: "appointment_no_show"}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	id string,
) (ap *models.Appointment, err error) {

	defer func() { metrics.IncWrite("status", outcome(err)) }()

	// a transição só troca o status; o intervalo não muda e não é rechecado
	prepare := func(tx domain.Repository) (*models.Appointment, bool, error) {
		current, err := lockAppointment(ctx, tx, id)
		if err != nil {
			return nil, false, err
		}
		if err := uc.action(current); err != nil {
			return nil, false, err
		}
		return current, false, nil
	}
	write := func(tx domain.Repository, ap *models.Appointment) error {
		return amend(ctx, tx, ap)
	}

	ap, err = book(ctx, uc.repo, prepare, write)
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			recordConflict(uc.audit, ap)
		}
		return nil, err
	}

	metrics.IncStatusTransition(ap.Status)
	uc.audit.Dispatch(audit.Event{
		Action:   uc.event,
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return reload(ctx, uc.repo, ap.ID)
}
