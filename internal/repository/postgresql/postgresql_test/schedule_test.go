package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
)

func TestScheduleRepository_RoundTripsTimes(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewScheduleRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, schedule.Schedule{
		Name:               "Turno Mañana",
		StartTime:          schedule.MustParseTimeOfDay("07:30"),
		EndTime:            schedule.MustParseTimeOfDay("15:30"),
		GracePeriodMinutes: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "07:30", created.StartTime.String())
	assert.Equal(t, "15:30", created.EndTime.String())

	_, err = repo.Create(ctx, schedule.Schedule{Name: "turno mañana", StartTime: created.StartTime, EndTime: created.EndTime})
	assert.ErrorIs(t, err, schedule.ErrScheduleNameExists)

	none, err := repo.GetByUserID(ctx, "0198a2c4-7f00-7000-8000-000000000099")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestScheduleRepository_DeleteInUse(t *testing.T) {
	db := newTestDB(t)
	schedules := postgresql.NewScheduleRepository(db)
	users := postgresql.NewUserRepository(db)
	ctx := context.Background()

	s, err := schedules.Create(ctx, schedule.Schedule{
		Name:      "Jornada Estándar",
		StartTime: schedule.MustParseTimeOfDay("08:00"),
		EndTime:   schedule.MustParseTimeOfDay("18:00"),
	})
	require.NoError(t, err)
	ana := createUser(t, users, "ana")
	require.NoError(t, users.AssignSchedule(ctx, ana.ID, &s.ID))

	assert.ErrorIs(t, schedules.Delete(ctx, s.ID), schedule.ErrScheduleInUse)

	count, err := schedules.CountAssignedUsers(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, users.AssignSchedule(ctx, ana.ID, nil))
	require.NoError(t, schedules.Delete(ctx, s.ID))
	_, err = schedules.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}
