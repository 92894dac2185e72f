// Package memory guarda agendamentos e cadastro em memória.
// Usado pelos testes de use case e de handler.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Store struct {
	// txMu serializa WithTx; mu protege os mapas.
	txMu sync.Mutex
	mu   sync.RWMutex

	professionals map[string]models.Professional
	services      map[string]models.Service
	locations     map[string]models.Location
	capabilities  map[[2]string]struct{}
	appointments  map[string]models.Appointment

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		professionals: map[string]models.Professional{},
		services:      map[string]models.Service{},
		locations:     map[string]models.Location{},
		capabilities:  map[[2]string]struct{}{},
		appointments:  map[string]models.Appointment{},
		now:           time.Now,
	}
}

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func (s *Store) AddProfessional(p models.Professional) models.Professional {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.professionals[p.ID] = p
	return p
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddLocation(l models.Location) models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	s.locations[l.ID] = l
	return l
}

func (s *Store) Assign(professionalID, serviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capabilities[[2]string{professionalID, serviceID}] = struct{}{}
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (s *Store) GetProfessional(_ context.Context, id string) (*models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.professionals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) GetService(_ context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (s *Store) GetLocation(_ context.Context, id string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// --------------------------------------------------
// Repository
// --------------------------------------------------

// WithTx restaura os agendamentos quando fn falha.
func (s *Store) WithTx(ctx context.Context, fn func(repo domain.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := make(map[string]models.Appointment, len(s.appointments))
	for id, ap := range s.appointments {
		snapshot[id] = ap
	}
	s.mu.RUnlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.appointments = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) HasCapability(_ context.Context, professionalID, serviceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.capabilities[[2]string{professionalID, serviceID}]
	return ok, nil
}

// LockProfessional não faz nada: WithTx já serializa as escritas.
func (s *Store) LockProfessional(context.Context, string) error {
	return nil
}

func (s *Store) HasTimeConflict(
	_ context.Context,
	professionalID string,
	start time.Time,
	end time.Time,
	excludeID string,
) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, ap := range s.appointments {
		if id == excludeID || ap.ProfessionalID != professionalID {
			continue
		}
		if !domain.Status(ap.Status).Blocking() {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}
	now := s.now()
	ap.CreatedAt, ap.UpdatedAt = now, now

	s.appointments[ap.ID] = stripped(*ap)
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.appointments[ap.ID]
	if !ok {
		return false, nil
	}

	ap.CreatedAt = current.CreatedAt
	ap.UpdatedAt = s.now()
	s.appointments[ap.ID] = stripped(*ap)
	return true, nil
}

func (s *Store) GetAppointmentForUpdate(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, nil
	}
	return &ap, nil
}

func (s *Store) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, nil
	}
	s.preload(&ap)
	return &ap, nil
}

func (s *Store) DeleteAppointment(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return false, nil
	}
	delete(s.appointments, id)
	return true, nil
}

func (s *Store) ListAppointments(_ context.Context, f domain.Filter) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0, len(s.appointments))
	for _, ap := range s.appointments {
		if !matches(ap, f) {
			continue
		}
		s.preload(&ap)
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func matches(ap models.Appointment, f domain.Filter) bool {
	switch {
	case f.ProfessionalID != "" && ap.ProfessionalID != f.ProfessionalID:
		return false
	case f.ServiceID != "" && ap.ServiceID != f.ServiceID:
		return false
	case f.LocationID != "" && ap.LocationID != f.LocationID:
		return false
	case f.Status != "" && ap.Status != string(f.Status):
		return false
	case f.StartDate != nil && ap.StartTime.Before(*f.StartDate):
		return false
	case f.EndDate != nil && ap.StartTime.After(*f.EndDate):
		return false
	}
	return true
}

// preload imita o Preload do gorm. Quem chama segura mu.
func (s *Store) preload(ap *models.Appointment) {
	ap.Professional = s.professionals[ap.ProfessionalID]
	ap.Service = s.services[ap.ServiceID]
	ap.Location = s.locations[ap.LocationID]
}

func stripped(ap models.Appointment) models.Appointment {
	ap.Professional = models.Professional{}
	ap.Service = models.Service{}
	ap.Location = models.Location{}
	return ap
}

var (
	_ domain.Repository = (*Store)(nil)
	_ domain.Directory  = (*Store)(nil)
)
