package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// REFERÊNCIAS
// ======================================================

func resolveProfessional(ctx context.Context, dir domain.Directory, id string) (*models.Professional, error) {
	p, err := dir.GetProfessional(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("professional_lookup_failed", err)
	}
	if p == nil || !p.Active {
		return nil, errProfessionalNotFound()
	}
	return p, nil
}

func resolveService(ctx context.Context, dir domain.Directory, id string) (*models.Service, error) {
	s, err := dir.GetService(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("service_lookup_failed", err)
	}
	if s == nil || !s.Active {
		return nil, errServiceNotFound()
	}
	return s, nil
}

func resolveLocation(ctx context.Context, dir domain.Directory, id string) (*models.Location, error) {
	l, err := dir.GetLocation(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("location_lookup_failed", err)
	}
	if l == nil || !l.Active {
		return nil, errLocationNotFound()
	}
	return l, nil
}

func assertCapability(ctx context.Context, repo domain.Repository, professionalID, serviceID string) error {
	ok, err := repo.HasCapability(ctx, professionalID, serviceID)
	if err != nil {
		return httperr.ErrInternal("capability_check_failed", err)
	}
	if !ok {
		return errCapability()
	}
	return nil
}

// ======================================================
// ESCRITA
// ======================================================

// book roda prepare, trava o profissional, procura conflitos e grava, tudo
// na mesma transação. prepare devolve o agendamento a gravar e se o conflito
// deve ser verificado. A constraint de exclusão do banco tem a palavra final.
func book(
	ctx context.Context,
	repo domain.Repository,
	prepare func(tx domain.Repository) (*models.Appointment, bool, error),
	write func(tx domain.Repository, ap *models.Appointment) error,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := repo.WithTx(ctx, func(tx domain.Repository) error {
		next, checkOverlap, err := prepare(tx)
		if err != nil {
			return err
		}
		ap = next
		detach(ap)

		if err := tx.LockProfessional(ctx, ap.ProfessionalID); err != nil {
			return err
		}

		if checkOverlap {
			busy, err := tx.HasTimeConflict(ctx, ap.ProfessionalID, ap.StartTime, ap.EndTime, ap.ID)
			if err != nil {
				return err
			}
			if busy {
				return errTimeConflict()
			}
		}

		return write(tx, ap)
	})

	if httperr.IsExclusionConflict(err) {
		return ap, errTimeConflict()
	}
	return ap, asInternal("appointment_write_failed", err)
}

// lockAppointment relê o agendamento travado dentro da transação.
func lockAppointment(ctx context.Context, tx domain.Repository, id string) (*models.Appointment, error) {
	ap, err := tx.GetAppointmentForUpdate(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("appointment_lookup_failed", err)
	}
	if ap == nil {
		return nil, errAppointmentNotFound()
	}
	return ap, nil
}

// amend grava alterações de um agendamento existente; apagado no meio do
// caminho vira NotFound.
func amend(ctx context.Context, tx domain.Repository, ap *models.Appointment) error {
	updated, err := tx.UpdateAppointment(ctx, ap)
	if err != nil {
		return err
	}
	if !updated {
		return errAppointmentNotFound()
	}
	return nil
}

// detach limpa as associações pré-carregadas; só os ids são gravados.
func detach(ap *models.Appointment) {
	ap.Professional = models.Professional{}
	ap.Service = models.Service{}
	ap.Location = models.Location{}
}

// reload devolve o agendamento com as referências carregadas.
func reload(ctx context.Context, repo domain.Repository, id string) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("appointment_lookup_failed", err)
	}
	if ap == nil {
		return nil, errAppointmentNotFound()
	}
	return ap, nil
}

func recordConflict(d *audit.Dispatcher, ap *models.Appointment) {
	metrics.IncConflict()
	if ap == nil {
		return
	}
	d.Dispatch(audit.Event{
		Action:   "appointment_conflict",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"professionalId": ap.ProfessionalID,
			"start":          ap.StartTime,
			"end":            ap.EndTime,
		},
	})
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch httperr.KindOf(err) {
	case httperr.KindConflict:
		return "conflict"
	case httperr.KindNotFound:
		return "not_found"
	case httperr.KindBadRequest:
		return "rejected"
	default:
		return "error"
	}
}
