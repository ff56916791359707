//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository/postgres"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweeperIntegration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newServices(db)
	taskRepo := postgres.NewTaskRepository(db)

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	stale, err := svc.tasks.CreateTask(ctx, domain.CreateTaskCommand{Title: "Revisión", DueDate: yesterday})
	require.NoError(t, err)
	fresh, err := svc.tasks.CreateTask(ctx, domain.CreateTaskCommand{Title: "Entrega", DueDate: now})
	require.NoError(t, err)

	sweeper := scheduler.NewSweeper(taskRepo, scheduler.FixedClock(now), time.UTC, zap.NewNop(), time.Hour)

	moved, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	got, err := taskRepo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.True(t, got.DueDate.Equal(yesterday.AddDate(0, 0, 1)))
	assert.Equal(t, domain.StatusPending, got.Status)

	got, err = taskRepo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.True(t, got.DueDate.Equal(now))

	// повторный обход ничего не меняет
	moved, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
}
