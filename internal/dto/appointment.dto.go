package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ServiceSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

type ProfessionalSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type LocationSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type AppointmentDTO struct {
	ID             string    `json:"id"`
	ProfessionalID string    `json:"professionalId"`
	ServiceID      string    `json:"serviceId"`
	LocationID     string    `json:"locationId"`
	ClientName     string    `json:"clientName"`
	ClientPhone    string    `json:"clientPhone"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Service      *ServiceSummary      `json:"service,omitempty"`
	Professional *ProfessionalSummary `json:"professional,omitempty"`
	Location     *LocationSummary     `json:"location,omitempty"`
}

// FromAppointment copia as referências pré-carregadas; as ausentes ficam nil.
func FromAppointment(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:             ap.ID,
		ProfessionalID: ap.ProfessionalID,
		ServiceID:      ap.ServiceID,
		LocationID:     ap.LocationID,
		ClientName:     ap.ClientName,
		ClientPhone:    ap.ClientPhone,
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         ap.Status,
		Notes:          ap.Notes,
		CreatedAt:      ap.CreatedAt,
		UpdatedAt:      ap.UpdatedAt,
	}

	if ap.Service.ID != "" {
		out.Service = &ServiceSummary{
			ID:       ap.Service.ID,
			Name:     ap.Service.Name,
			Duration: ap.Service.DurationMin,
			Price:    ap.Service.Price,
		}
	}
	if ap.Professional.ID != "" {
		out.Professional = &ProfessionalSummary{
			ID:        ap.Professional.ID,
			Name:      ap.Professional.Name,
			Specialty: ap.Professional.Specialty,
		}
	}
	if ap.Location.ID != "" {
		out.Location = &LocationSummary{
			ID:      ap.Location.ID,
			Name:    ap.Location.Name,
			Address: ap.Location.Address,
		}
	}

	return out
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
