package appointment

import (
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func errAppointmentNotFound() error {
	return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado")
}

func errProfessionalNotFound() error {
	return httperr.ErrNotFound("professional_not_found", "Profissional não encontrado")
}

func errServiceNotFound() error {
	return httperr.ErrNotFound("service_not_found", "Serviço não encontrado")
}

func errLocationNotFound() error {
	return httperr.ErrNotFound("location_not_found", "Local não encontrado")
}

func errCapability() error {
	return httperr.ErrBadRequest("service_not_offered", "Este profissional não pode realizar este serviço")
}

func errTimeConflict() error {
	return httperr.ErrConflict("time_conflict", "O profissional já possui um agendamento neste horário")
}

func errInvalidTimeRange() error {
	return httperr.ErrBadRequest("invalid_time_range", "O horário de término deve ser posterior ao de início")
}

// asInternal mantém erros de negócio e classifica o resto como Internal.
func asInternal(code string, err error) error {
	if err == nil {
		return nil
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return httperr.ErrInternal(code, err)
}
