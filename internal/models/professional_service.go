package models

// ProfessionalService é o vínculo de capacidade: o profissional pode realizar o serviço.
type ProfessionalService struct {
	ProfessionalID string `gorm:"type:uuid;primaryKey" json:"professionalId"`
	ServiceID      string `gorm:"type:uuid;primaryKey" json:"serviceId"`
}

func (ProfessionalService) TableName() string {
	return "professional_services"
}
