package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fixture struct {
	store *memory.Store

	p1, p2 models.Professional
	s1, s2 models.Service
	l1     models.Location

	create *CreateAppointment
	update *UpdateAppointment
	get    *GetAppointment
	list   *ListAppointments
	delete *DeleteAppointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store: store,
		p1:    store.AddProfessional(models.Professional{Name: "Dra. Ana", Specialty: "Dermatologia", Active: true}),
		p2:    store.AddProfessional(models.Professional{Name: "Dr. Bruno", Specialty: "Fisioterapia", Active: true}),
		s1:    store.AddService(models.Service{Name: "Limpeza de pele", DurationMin: 40, Active: true}),
		s2:    store.AddService(models.Service{Name: "Drenagem", DurationMin: 60, Active: true}),
		l1:    store.AddLocation(models.Location{Name: "Unidade Centro", Active: true}),
	}
	store.Assign(f.p1.ID, f.s1.ID)
	store.Assign(f.p2.ID, f.s2.ID)

	f.create = NewCreateAppointment(store, store, nil)
	f.update = NewUpdateAppointment(store, store, nil)
	f.get = NewGetAppointment(store)
	f.list = NewListAppointments(store)
	f.delete = NewDeleteAppointment(store, nil)

	return f
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}

// book cria um agendamento P1/S1/L1 em 2025-04-03 (UTC).
func (f *fixture) book(t *testing.T, start, end string) *models.Appointment {
	t.Helper()

	ap, err := f.create.Execute(context.Background(), f.input(start, end))
	require.NoError(t, err)
	return ap
}

func (f *fixture) input(start, end string) CreateAppointmentInput {
	in := CreateAppointmentInput{
		ProfessionalID: f.p1.ID,
		ServiceID:      f.s1.ID,
		LocationID:     f.l1.ID,
		ClientName:     "Felipe Henrique",
		ClientPhone:    "15999999999",
		StartTime:      at("2025-04-03T" + start + ":00Z"),
	}
	if end != "" {
		in.EndTime = ptr(at("2025-04-03T" + end + ":00Z"))
	}
	return in
}

func filterAll() domain.Filter {
	return domain.Filter{}
}
