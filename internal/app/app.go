package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/pawdoc/petshop/config"
	"github.com/pawdoc/petshop/internal/adapter/httphandler"
	"github.com/pawdoc/petshop/internal/adapter/kafka"
	"github.com/pawdoc/petshop/internal/adapter/storage"
	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
	"github.com/pawdoc/petshop/internal/core/service"
	"github.com/pawdoc/petshop/pkg/pricetable"
	"github.com/pawdoc/petshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type closer interface {
	Close()
}

type App struct {
	ctx context.Context
	cfg config.Config

	cartEventSerde schema.Serde

	cartStorage  port.CartStorage
	producer     kafka.CartEventsProducer
	activityProc kafka.CartActivityProcessor
	activityView kafka.CartActivityView

	catalog  service.CatalogService
	cart     *service.CartService
	notifier *service.NotificationService

	httpServer httphandler.HTTPServer
	closers    []closer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initProcessors()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.CartEvents + "-value"
	cartEventSerde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.cartEventSerde = cartEventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	switch backend := app.cfg.Storage.Backend; backend {
	case "postgres":
		sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.Storage.PostgresDSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.cartStorage = storage.NewCartRepository(sqldb.DB)
		app.closers = append(app.closers, sqldb)
	case "redis":
		repo, err := storage.NewRedisCartRepository(
			app.ctx, app.cfg.Storage.RedisAddr,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.cartStorage = repo
		app.closers = append(app.closers, repo)
	default:
		app.fallDown(op, fmt.Errorf("unknown storage backend %q", backend))
	}

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CartEvents,
		),
		kafka.ProducerEncoderOpt(app.cartEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
	app.closers = append(app.closers, producer)
}

func (app *App) initProcessors() {
	const op = "App.initProcessors"

	proc, err := kafka.NewCartActivityProcessor(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.CartEvents,
		app.cfg.Broker.Consumers.CartActivityGroup,
		app.cartEventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewCartActivityView(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Consumers.CartActivityGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.activityProc = proc
	app.activityView = view
	app.closers = append(app.closers, proc)
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	products, err := app.loadCatalog()
	if err != nil {
		app.fallDown(op, err)
	}
	slog.Info("catalog loaded", "nProducts", len(products))

	app.catalog = service.NewCatalogService(products)
	app.cart = service.NewCartService(app.ctx, app.cartStorage, app.producer)
	app.notifier = service.NewNotificationService()
}

// loadCatalog reads the price table once at startup. The catalog is
// immutable afterwards; admin-side changes require a restart.
func (app *App) loadCatalog() ([]domain.Product, error) {
	const op = "App.loadCatalog"

	raw, err := os.ReadFile(app.cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := pricetable.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]domain.Product, len(rows))
	for i, r := range rows {
		products[i] = domain.Product{
			ID:       r.ID,
			Code:     r.Code,
			Name:     r.Name,
			Category: r.Category,
			Price:    r.Price,
			Stock:    r.Stock,
		}
	}
	return products, nil
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.catalog)
	httphandler.RegisterCart(mux, app.catalog, app.cart, app.notifier)
	httphandler.RegisterNotifications(mux, app.notifier)
	httphandler.RegisterActivity(mux, app.catalog, app.activityView)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.activityProc.Run(app.ctx)
	go app.activityView.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	for _, c := range app.closers {
		c.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
