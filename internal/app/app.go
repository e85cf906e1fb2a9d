// Package app builds the service graph shared by the server and worker
// binaries from one Config.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/auth"
	"github.com/sangkips/flight-notify-service/internal/cache"
	"github.com/sangkips/flight-notify-service/internal/config"
	"github.com/sangkips/flight-notify-service/internal/db"
	"github.com/sangkips/flight-notify-service/internal/dispatch"
	"github.com/sangkips/flight-notify-service/internal/docstore"
	"github.com/sangkips/flight-notify-service/internal/domains/messages"
	"github.com/sangkips/flight-notify-service/internal/domains/notifications"
	"github.com/sangkips/flight-notify-service/internal/domains/routes"
	"github.com/sangkips/flight-notify-service/internal/domains/templates"
	"github.com/sangkips/flight-notify-service/internal/domains/users"
	"github.com/sangkips/flight-notify-service/internal/gateway"
	"github.com/sangkips/flight-notify-service/internal/health"
	"github.com/sangkips/flight-notify-service/internal/metrics"
	"github.com/sangkips/flight-notify-service/internal/queue"
	"github.com/sangkips/flight-notify-service/internal/render"
)

const (
	cachePrefix = "notify"

	mockSuccessRate = 0.95
	mockMaxLatency  = 300 * time.Millisecond
)

// App holds every constructed service. Optional parts are nil when their
// backing system is not configured.
type App struct {
	Config *config.Config

	DB       *sql.DB
	Firebase *docstore.App
	Local    *cache.Store
	Queue    *queue.RabbitMQ
	Verifier auth.TokenVerifier

	Templates     *templates.Service
	Routes        *routes.Service
	Users         *users.Service
	Messages      *messages.Service
	Notifications *notifications.Service
	Health        *health.Handler

	closers []func() error
}

type repositories struct {
	templates templates.Repository
	routes    routes.Repository
	users     users.Repository
	messages  messages.Repository
	ping      health.CheckFunc
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Health: health.NewHandler()}

	repos, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Health.Require("store", repos.ping)

	a.openCache()

	if cfg.AsyncDispatchEnabled {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		a.Queue = rabbitMQ
		a.closers = append(a.closers, rabbitMQ.Close)
		a.Health.Optional("queue", func(ctx context.Context) error { return rabbitMQ.Ping() })
	}

	dir := render.NewDirectory()
	converter, err := render.NewConverter(dir, cfg.BaseTimezone)
	if err != nil {
		a.Close()
		return nil, err
	}
	renderer := render.NewRenderer(dir,
		render.WithCarrier(cfg.CarrierCode),
		render.WithReplaceAll(cfg.RenderReplaceAll),
	)

	a.Templates = templates.NewService(repos.templates)
	a.Routes = routes.NewService(repos.routes)
	a.Users = users.NewService(repos.users, a.Local)
	a.Messages = messages.NewService(repos.messages, a.Local)

	sms, email := senders(cfg)
	recorder := metrics.DispatchMetrics{}
	deps := notifications.Deps{
		SMS:        sms,
		Email:      email,
		Dispatcher: dispatch.NewDispatcher(sms, email, dispatch.WithDelay(cfg.DispatchDelay), dispatch.WithRecorder(recorder)),
		Recorder:   recorder,
		Renderer:   renderer,
		Directory:  dir,
		Converter:  converter,
		Templates:  a.Templates,
		Routes:     a.Routes,
		History:    a.Messages,
		Subject:    cfg.EmailSubject,
	}
	if a.Queue != nil {
		deps.Jobs = a.Queue
	}
	a.Notifications = notifications.NewService(deps)

	return a, nil
}

func (a *App) openStore(ctx context.Context) (repositories, error) {
	cfg := a.Config

	if cfg.UsesFirebase() {
		fb, err := docstore.NewApp(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
		if err != nil {
			return repositories{}, err
		}
		a.Firebase = fb
		a.Verifier = fb.Auth
		a.closers = append(a.closers, fb.Close)
	}

	if cfg.StoreDriver == config.StoreDriverFirestore {
		log.Info().Str("project", cfg.FirebaseProjectID).Msg("using Firestore document store")
		fs := a.Firebase.Firestore
		return repositories{
			templates: docstore.NewTemplateRepository(fs),
			routes:    docstore.NewRouteRepository(fs),
			users:     docstore.NewUserRepository(fs),
			messages:  docstore.NewMessageRepository(fs),
			ping:      a.Firebase.Ping,
		}, nil
	}

	conn, err := db.ConnectAndMigrate(cfg.DBURL)
	if err != nil {
		return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = conn
	a.closers = append(a.closers, conn.Close)
	log.Info().Msg("using Postgres store")
	return repositories{
		templates: templates.NewRepository(conn),
		routes:    routes.NewRepository(conn),
		users:     users.NewRepository(conn),
		messages:  messages.NewRepository(conn),
		ping:      health.DatabaseCheck(conn),
	}, nil
}

// openCache connects the local tier. Redis being down only disables the
// fallback, so errors are logged rather than returned.
func (a *App) openCache() {
	cfg := a.Config
	if cfg.RedisAddr == "" {
		return
	}
	rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, local cache tier disabled")
		return
	}
	a.Local = cache.NewStore(rdb, cachePrefix, cfg.CacheTTL)
	a.closers = append(a.closers, rdb.Close)
	a.Health.Optional("cache", a.Local.Ping)
}

func senders(cfg *config.Config) (dispatch.SMSSender, dispatch.EmailSender) {
	if cfg.GatewayMode == config.GatewayModeMock {
		log.Warn().Msg("GATEWAY_MODE=mock, no real SMS or email will be sent")
		mock := gateway.NewMockSender(mockSuccessRate, mockMaxLatency)
		return mock, mock
	}

	sms := gateway.NewSMSClient(gateway.SMSConfig{
		URL:      cfg.SMSGatewayURL,
		Token:    cfg.SMSGatewayToken,
		Username: cfg.SMSGatewayUsername,
		Sender:   cfg.SMSSender,
		Timeout:  cfg.SMSTimeout,
	}, nil)

	var email dispatch.EmailSender
	switch cfg.EmailProvider {
	case config.EmailProviderSMTP:
		email = gateway.NewSMTPEmail(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	default:
		email = gateway.NewResendEmail(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailScheduleDelay)
	}
	return sms, email
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("error during shutdown")
		}
	}
	a.closers = nil
}
