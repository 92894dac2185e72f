// Package seed carrega o cadastro inicial da clínica a partir de um YAML.
package seed

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Fixture struct {
	Locations     []Location     `yaml:"locations"`
	Services      []Service      `yaml:"services"`
	Professionals []Professional `yaml:"professionals"`
}

type Location struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
}

type Service struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Duration    int     `yaml:"duration"`
	Price       float64 `yaml:"price"`
	Category    string  `yaml:"category"`
}

type Professional struct {
	Name      string   `yaml:"name"`
	Email     string   `yaml:"email"`
	Phone     string   `yaml:"phone"`
	Specialty string   `yaml:"specialty"`
	Services  []string `yaml:"services"`
	Locations []string `yaml:"locations"`
}

type Result struct {
	Locations     int
	Services      int
	Professionals int
	Capabilities  int
}

func Parse(r io.Reader) (*Fixture, error) {
	var f Fixture

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (f *Fixture) validate() error {
	services := map[string]bool{}
	for _, s := range f.Services {
		if s.Name == "" {
			return fmt.Errorf("service without name")
		}
		if s.Duration <= 0 {
			return fmt.Errorf("service %q: duration must be positive", s.Name)
		}
		services[s.Name] = true
	}

	locations := map[string]bool{}
	for _, l := range f.Locations {
		if l.Name == "" {
			return fmt.Errorf("location without name")
		}
		locations[l.Name] = true
	}

	for _, p := range f.Professionals {
		if p.Name == "" {
			return fmt.Errorf("professional without name")
		}
		for _, s := range p.Services {
			if !services[s] {
				return fmt.Errorf("professional %q: unknown service %q", p.Name, s)
			}
		}
		for _, l := range p.Locations {
			if !locations[l] {
				return fmt.Errorf("professional %q: unknown location %q", p.Name, l)
			}
		}
	}

	return nil
}

// Apply grava o fixture numa transação. Registros já existentes
// (mesmo nome) são reaproveitados, então rodar duas vezes não duplica.
func Apply(ctx context.Context, db *gorm.DB, f *Fixture) (Result, error) {
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		locationIDs := map[string]string{}
		for _, l := range f.Locations {
			loc, created, err := findOrCreate(tx, l.Name, &models.Location{
				Name:    l.Name,
				Address: l.Address,
				Phone:   l.Phone,
				Active:  true,
			})
			if err != nil {
				return fmt.Errorf("seed location %q: %w", l.Name, err)
			}
			if created {
				res.Locations++
			}
			locationIDs[l.Name] = loc.ID
		}

		serviceIDs := map[string]string{}
		for _, s := range f.Services {
			svc, created, err := findOrCreate(tx, s.Name, &models.Service{
				Name:        s.Name,
				Description: s.Description,
				DurationMin: s.Duration,
				Price:       s.Price,
				Category:    s.Category,
				Active:      true,
			})
			if err != nil {
				return fmt.Errorf("seed service %q: %w", s.Name, err)
			}
			if created {
				res.Services++
			}
			serviceIDs[s.Name] = svc.ID
		}

		for _, p := range f.Professionals {
			prof, created, err := findOrCreate(tx, p.Name, &models.Professional{
				Name:      p.Name,
				Email:     p.Email,
				Phone:     p.Phone,
				Specialty: p.Specialty,
				Active:    true,
			})
			if err != nil {
				return fmt.Errorf("seed professional %q: %w", p.Name, err)
			}
			if created {
				res.Professionals++
			}

			for _, name := range p.Services {
				r := tx.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&models.ProfessionalService{
						ProfessionalID: prof.ID,
						ServiceID:      serviceIDs[name],
					})
				if r.Error != nil {
					return fmt.Errorf("seed capability %q/%q: %w", p.Name, name, r.Error)
				}
				res.Capabilities += int(r.RowsAffected)
			}

			if len(p.Locations) > 0 {
				locs := make([]models.Location, 0, len(p.Locations))
				for _, name := range p.Locations {
					locs = append(locs, models.Location{ID: locationIDs[name]})
				}
				if err := tx.Model(prof).
					Omit("Locations.*").
					Association("Locations").
					Append(locs); err != nil {
					return fmt.Errorf("seed locations of %q: %w", p.Name, err)
				}
			}
		}

		return nil
	})

	return res, err
}

// findOrCreate procura pelo nome e só insere quando não existe.
func findOrCreate[T any](tx *gorm.DB, name string, create *T) (*T, bool, error) {
	var found T
	r := tx.Where("name = ?", name).Limit(1).Find(&found)
	if r.Error != nil {
		return nil, false, r.Error
	}
	if r.RowsAffected > 0 {
		return &found, false, nil
	}

	if err := tx.Omit(clause.Associations).Create(create).Error; err != nil {
		return nil, false, err
	}
	return create, true, nil
}
