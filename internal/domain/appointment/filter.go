package appointment

import "time"

// Filter da listagem. Todos os campos são opcionais; zero é ignorado.
// StartDate e EndDate limitam StartTime de forma inclusiva.
type Filter struct {
	ProfessionalID string
	ServiceID      string
	LocationID     string
	Status         Status
	StartDate      *time.Time
	EndDate        *time.Time
}
