package docstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sangkips/flight-notify-service/internal/domains/messages"
	"github.com/sangkips/flight-notify-service/internal/domains/routes"
	"github.com/sangkips/flight-notify-service/internal/domains/templates"
	"github.com/sangkips/flight-notify-service/internal/domains/users"
)

func TestStatusHelpers(t *testing.T) {
	assert.True(t, isNotFound(status.Error(codes.NotFound, "no doc")))
	assert.False(t, isNotFound(errors.New("plain")))
	assert.True(t, isAlreadyExists(status.Error(codes.AlreadyExists, "dup")))
	assert.False(t, isAlreadyExists(nil))
}

// newEmulatorApp connects to the Firestore emulator named by
// FIRESTORE_EMULATOR_HOST and skips the test when none is running.
func newEmulatorApp(t *testing.T) *App {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	app, err := NewApp(ctx, "flight-notify-test", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.NoError(t, app.Ping(ctx))
	return app
}

func TestTemplateRepository_Emulator(t *testing.T) {
	app := newEmulatorApp(t)
	repo := NewTemplateRepository(app.Firestore)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	tmpl := templates.Template{ID: uuid.New().String(), Name: "Delay", Content: "טיסה {flightNumber}", IsActive: true, CreatedAt: now, UpdatedAt: now}
	_, err := repo.CreateTemplate(ctx, tmpl)
	require.NoError(t, err)

	got, err := repo.GetTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, got.ID)
	assert.Equal(t, "Delay", got.Name)

	tmpl.Name = "Delay v2"
	_, err = repo.UpdateTemplate(ctx, tmpl)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTemplate(ctx, tmpl.ID))
	assert.ErrorIs(t, repo.DeleteTemplate(ctx, tmpl.ID), templates.ErrTemplateNotFound)
	_, err = repo.GetTemplate(ctx, tmpl.ID)
	assert.ErrorIs(t, err, templates.ErrTemplateNotFound)
	_, err = repo.UpdateTemplate(ctx, tmpl)
	assert.ErrorIs(t, err, templates.ErrTemplateNotFound)
}

func TestRouteRepository_ReplaceRoutes_Emulator(t *testing.T) {
	app := newEmulatorApp(t)
	repo := NewRouteRepository(app.Firestore)
	ctx := context.Background()

	number := uuid.New().String()[:8]
	old := routes.FlightRoute{ID: uuid.New().String(), FlightNumber: number, DepartureCity: "TLV", ArrivalCity: "JFK", UpdatedAt: time.Now().UTC()}
	_, err := repo.CreateRoute(ctx, old)
	require.NoError(t, err)

	fresh := routes.FlightRoute{ID: uuid.New().String(), FlightNumber: number, DepartureCity: "TLV", ArrivalCity: "EWR", UpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.ReplaceRoutes(ctx, []routes.FlightRoute{fresh}))

	got, err := repo.GetRouteByFlightNumber(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
	assert.Equal(t, "EWR", got.ArrivalCity)

	_, err = repo.GetRoute(ctx, old.ID)
	assert.ErrorIs(t, err, routes.ErrRouteNotFound)
}

func TestUserRepository_EmailTaken_Emulator(t *testing.T) {
	app := newEmulatorApp(t)
	repo := NewUserRepository(app.Firestore)
	ctx := context.Background()

	email := uuid.New().String() + "@example.com"
	_, err := repo.CreateUser(ctx, users.User{ID: uuid.New().String(), Email: email, Role: users.RoleOperator})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, users.User{ID: uuid.New().String(), Email: email, Role: users.RoleOperator})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestMessageRepository_IdempotentCreate_Emulator(t *testing.T) {
	app := newEmulatorApp(t)
	repo := NewMessageRepository(app.Firestore)
	ctx := context.Background()

	m := messages.SentMessage{ID: uuid.New().String(), FlightNumber: "LY001", Recipients: 2, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateMessage(ctx, m))
	require.NoError(t, repo.CreateMessage(ctx, m))

	got, err := repo.GetMessage(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Recipients)
	assert.Equal(t, []string{}, got.Errors)
}
