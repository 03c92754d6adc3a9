package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/catalog/domain"
	"github.com/smallbiznis/subtrack/internal/catalog/store"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalog(t *testing.T) domain.Catalog {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		Repo:  store.NewMemoryStore(),
	})
}

func TestCreateService(t *testing.T) {
	svc := newTestCatalog(t)

	created, err := svc.Create(context.Background(), domain.CreateServiceRequest{
		Name:        "Premium Video Streaming",
		Description: "Unlimited streaming in full HD",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "premium-video-streaming", created.Code)
	assert.Equal(t, "Premium Video Streaming", created.Name)
}

func TestCreateServiceRequiresName(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.Create(context.Background(), domain.CreateServiceRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestGetServiceByID(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateServiceRequest{Name: "Music"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, domain.GetServiceRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetByID(ctx, domain.GetServiceRequest{ID: "999999999999999999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(ctx, domain.GetServiceRequest{ID: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
