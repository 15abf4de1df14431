// Package server initializes and runs the drsgate server: database and
// migrations, object storage, the key service client, the AMQP event bus,
// and the public HTTP endpoint, with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dmitrijs2005/drsgate/internal/logging"
	"github.com/dmitrijs2005/drsgate/internal/server/config"
	"github.com/dmitrijs2005/drsgate/internal/server/events"
	"github.com/dmitrijs2005/drsgate/internal/server/httpapi"
	"github.com/dmitrijs2005/drsgate/internal/server/keyservice"
	"github.com/dmitrijs2005/drsgate/internal/server/services"
	"github.com/dmitrijs2005/drsgate/internal/server/shared/db"
	"github.com/dmitrijs2005/drsgate/internal/server/storage"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.HTTPServer
	subscriber *events.AMQPSubscriber
	amqpConn   *amqp.Connection
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	conn, err := amqp.Dial(cfg.AmqpURL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial error: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp channel error: %w", err)
	}

	publisher, err := events.NewAMQPPublisher(ch, cfg.EventExchange)
	if err != nil {
		return nil, fmt.Errorf("publisher init error: %w", err)
	}

	objectStorage := storage.NewS3Storage(cfg)
	keyService := keyservice.NewHTTPClient(cfg.EkssBaseURL)

	envelopes := services.NewEnvelopeCache(rm.Envelopes(), keyService)
	tokens := services.NewTokenIssuer(rm.Downloads(), rm.Envelopes(), cfg)
	access := services.NewAccessService(rm.Objects(), objectStorage, envelopes, tokens, publisher, cfg, logger)
	ranges := services.NewRangeService(objectStorage, cfg)
	registrar := services.NewRegistrar(rm.Objects(), publisher, cfg, logger)

	httpServer := httpapi.NewHTTPServer(cfg.EndpointAddr, logger, access, tokens, ranges, cfg.SecretKey)
	subscriber := events.NewAMQPSubscriber(ch, cfg.RegistrationQueue, cfg.EventExchange, registrar, logger.With("module", "subscriber"))

	return &App{
		config:     cfg,
		logger:     logger,
		httpServer: httpServer,
		subscriber: subscriber,
		amqpConn:   conn,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server error", "error", err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.subscriber.Run(ctx); err != nil && ctx.Err() == nil {
			app.logger.Error(ctx, "subscriber error", "error", err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.amqpConn.Close(); err != nil {
		app.logger.Error(ctx, "amqp close error", "error", err.Error())
	}
}
