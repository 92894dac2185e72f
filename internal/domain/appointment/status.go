package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// Blocking indica se o status ocupa a agenda do profissional.
func (s Status) Blocking() bool {
	return s != StatusCanceled
}

// ParseStatus devolve o status inicial quando raw é vazio.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return InitialStatus(), nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBadRequest("invalid_status", "Status inválido.")
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBadRequest("invalid_state", "Agendamento não pode ser cancelado.")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBadRequest("invalid_state", "Agendamento não pode ser concluído.")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBadRequest("invalid_state", "Agendamento não pode ser marcado como falta.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
