package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient é mantido pela recepção; agendamentos guardam apenas nome e telefone.
type Patient struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	Email  string `gorm:"size:100" json:"email"`
	Notes  string `gorm:"type:text" json:"notes"`
	Active bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
