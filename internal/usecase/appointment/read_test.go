package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func TestGetAppointment_Idempotent(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "10:00", "10:40")

	first, err := f.get.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	second, err := f.get.Execute(context.Background(), ap.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAppointment_Absent(t *testing.T) {
	f := newFixture(t)

	ap, err := f.get.Execute(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, ap)
}

func TestListAppointments_DateRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, start := range []string{
		"2025-04-20T09:00:00Z",
		"2025-03-31T22:00:00Z",
		"2025-04-01T00:00:00Z",
		"2025-05-01T08:00:00Z",
		"2025-04-30T00:00:00Z",
	} {
		in := f.input("00:00", "")
		in.StartTime = at(start)
		_, err := f.create.Execute(ctx, in)
		require.NoError(t, err)
	}

	from := at("2025-04-01T00:00:00Z")
	to := at("2025-04-30T00:00:00Z")

	apps, err := f.list.Execute(ctx, domain.Filter{StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, from, apps[0].StartTime)
	assert.Equal(t, at("2025-04-20T09:00:00Z"), apps[1].StartTime)
	assert.Equal(t, to, apps[2].StartTime)
	for _, ap := range apps {
		assert.Equal(t, "Limpeza de pele", ap.Service.Name)
	}

	apps, err = f.list.Execute(ctx, domain.Filter{StartDate: &to})
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	apps, err = f.list.Execute(ctx, domain.Filter{EndDate: &from})
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestListAppointments_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.book(t, "10:00", "10:40")
	f.book(t, "11:00", "11:40")

	other := f.input("10:00", "")
	other.ProfessionalID = f.p2.ID
	other.ServiceID = f.s2.ID
	_, err := f.create.Execute(ctx, other)
	require.NoError(t, err)

	_, err = NewCompleteAppointment(f.store, nil).Execute(ctx, a.ID)
	require.NoError(t, err)

	apps, err := f.list.Execute(ctx, domain.Filter{ProfessionalID: f.p1.ID})
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	apps, err = f.list.Execute(ctx, domain.Filter{ServiceID: f.s2.ID})
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	apps, err = f.list.Execute(ctx, domain.Filter{LocationID: f.l1.ID, Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, a.ID, apps[0].ID)

	apps, err = f.list.Execute(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, apps, 3)
	for i := 1; i < len(apps); i++ {
		assert.False(t, apps[i].StartTime.Before(apps[i-1].StartTime))
	}

	_, err = f.list.Execute(ctx, domain.Filter{Status: "unknown"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestListAppointments_Empty(t *testing.T) {
	f := newFixture(t)

	apps, err := f.list.Execute(context.Background(), domain.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, "17:00", "17:40")

	require.NoError(t, f.delete.Execute(ctx, ap.ID))

	got, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = f.delete.Execute(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "10:00", "10:40")

	got, err := NewMarkNoShow(f.store, nil).Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "no_show", got.Status)

	_, err = NewCancelAppointment(f.store, nil).Execute(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewCompleteAppointment(f.store, nil).Execute(ctx, "missing")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestScenario_BookConflictDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.create.Execute(ctx, f.input("17:00", "17:40"))
	require.NoError(t, err)
	assert.Equal(t, "scheduled", first.Status)

	_, err = f.create.Execute(ctx, f.input("17:10", "17:30"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	require.NoError(t, f.delete.Execute(ctx, first.ID))

	got, err := f.get.Execute(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = f.create.Execute(ctx, f.input("17:10", "17:30"))
	assert.NoError(t, err)
}
