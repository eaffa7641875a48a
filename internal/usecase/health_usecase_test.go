package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-applicant-tracker/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	status, healthy := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok}).Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok"}, status)

	status, healthy = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok, "redis": down}).Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "down", status["redis"])
}
