package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture(t)

	ap := f.book(t, "17:00", "17:40")

	assert.NotEmpty(t, ap.ID)
	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, at("2025-04-03T17:40:00Z"), ap.EndTime)
	assert.Equal(t, "Limpeza de pele", ap.Service.Name)
	assert.Equal(t, "Dra. Ana", ap.Professional.Name)
	assert.Equal(t, "Unidade Centro", ap.Location.Name)
}

func TestCreateAppointment_DerivesEndFromDuration(t *testing.T) {
	f := newFixture(t)

	ap := f.book(t, "09:00", "")
	assert.Equal(t, at("2025-04-03T09:40:00Z"), ap.EndTime)
}

func TestCreateAppointment_ExplicitEndIsKept(t *testing.T) {
	f := newFixture(t)

	ap := f.book(t, "09:00", "09:25")
	assert.Equal(t, at("2025-04-03T09:25:00Z"), ap.EndTime)
}

func TestCreateAppointment_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		conflict bool
	}{
		{"starts inside", "10:20", "11:00", true},
		{"ends inside", "09:30", "10:10", true},
		{"contains", "09:00", "11:00", true},
		{"touches end", "10:40", "11:20", false},
		{"touches start", "09:20", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.book(t, "10:00", "10:40")

			_, err := f.create.Execute(context.Background(), f.input(tt.start, tt.end))
			if tt.conflict {
				require.Error(t, err)
				assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
				var be httperr.BusinessError
				require.ErrorAs(t, err, &be)
				assert.Equal(t, "O profissional já possui um agendamento neste horário", be.Message)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateAppointment_OtherProfessionalDoesNotConflict(t *testing.T) {
	f := newFixture(t)
	f.book(t, "10:00", "10:40")

	in := f.input("10:00", "10:40")
	in.ProfessionalID = f.p2.ID
	in.ServiceID = f.s2.ID

	_, err := f.create.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_CanceledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "10:00", "10:40")
	_, err := NewCancelAppointment(f.store, nil).Execute(ctx, ap.ID)
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, f.input("10:00", "10:40"))
	assert.NoError(t, err)
}

func TestCreateAppointment_Capability(t *testing.T) {
	f := newFixture(t)

	in := f.input("10:00", "")
	in.ServiceID = f.s2.ID

	_, err := f.create.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.KindBadRequest, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "service_not_offered"))
}

func TestCreateAppointment_References(t *testing.T) {
	f := newFixture(t)
	inactive := f.store.AddProfessional(models.Professional{Name: "Dr. Inativo", Active: false})

	tests := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		code   string
	}{
		{"unknown professional", func(in *CreateAppointmentInput) { in.ProfessionalID = "missing" }, "professional_not_found"},
		{"inactive professional", func(in *CreateAppointmentInput) { in.ProfessionalID = inactive.ID }, "professional_not_found"},
		{"unknown service", func(in *CreateAppointmentInput) { in.ServiceID = "missing" }, "service_not_found"},
		{"unknown location", func(in *CreateAppointmentInput) { in.LocationID = "missing" }, "location_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input("10:00", "")
			tt.mutate(&in)

			_, err := f.create.Execute(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
			assert.True(t, httperr.IsBusiness(err, tt.code))
		})
	}

	apps, err := f.list.Execute(context.Background(), filterAll())
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestCreateAppointment_InvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), f.input("10:00", "09:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	_, err = f.create.Execute(context.Background(), f.input("10:00", "10:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))
}

func TestCreateAppointment_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	in := f.input("10:00", "")
	in.Status = "cancelled"

	_, err := f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestCreateAppointment_ConcurrentBookingsSameSlot(t *testing.T) {
	f := newFixture(t)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.create.Execute(context.Background(), f.input("15:00", "15:40"))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if httperr.KindOf(err) == httperr.KindConflict {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}
