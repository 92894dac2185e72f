package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Directory resolve as entidades referenciadas por um agendamento.
// Retorna nil, nil quando a entidade não existe.
type Directory interface {
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
}

type Repository interface {
	// -------- Transaction --------
	WithTx(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Capability --------
	HasCapability(
		ctx context.Context,
		professionalID string,
		serviceID string,
	) (bool, error)

	// -------- Appointment (conflict) --------

	// LockProfessional serializa as marcações do profissional até o fim
	// da transação.
	LockProfessional(
		ctx context.Context,
		professionalID string,
	) error

	// HasTimeConflict ignora cancelados e o próprio excludeID.
	HasTimeConflict(
		ctx context.Context,
		professionalID string,
		start time.Time,
		end time.Time,
		excludeID string,
	) (bool, error)

	// -------- Appointment (crud) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment nunca insere: false quando a linha não existe mais.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) (bool, error)

	// GetAppointmentForUpdate trava a linha até o fim da transação.
	// Sem referências carregadas; nil, nil quando ausente.
	GetAppointmentForUpdate(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// GetAppointment retorna nil, nil quando ausente, com referências carregadas.
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id string,
	) (bool, error)

	ListAppointments(
		ctx context.Context,
		filter Filter,
	) ([]models.Appointment, error)
}
