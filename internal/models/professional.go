package models

import (
	"time"

	"gorm.io/gorm"
)

type Professional struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Active    bool   `gorm:"default:true" json:"isActive"`

	Services  []Service  `gorm:"many2many:professional_services;" json:"services,omitempty"`
	Locations []Location `gorm:"many2many:professional_locations;" json:"locations,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
