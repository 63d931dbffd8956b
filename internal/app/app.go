package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/niksmo/storefront-session/config"
	"github.com/niksmo/storefront-session/internal/adapter/httphandler"
	"github.com/niksmo/storefront-session/internal/adapter/kafka"
	"github.com/niksmo/storefront-session/internal/adapter/storage"
	"github.com/niksmo/storefront-session/internal/core/port"
	"github.com/niksmo/storefront-session/internal/core/service"
	"github.com/niksmo/storefront-session/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	product      schema.Serde
	shopperEvent schema.Serde
}

type App struct {
	ctx context.Context
	cfg config.Config

	serdes       serdes
	snapshotRepo storage.SnapshotRepository
	snapshot     port.SnapshotStorage
	catalog      storage.CatalogRepository
	producer     kafka.EventsProducer
	consumer     kafka.ProductsConsumer
	store        *service.Store
	session      service.SessionService
	httpServer   httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSnapshotStorage()
	app.initCatalog()
	app.initSerdes()
	app.initBrokerAdapters()
	app.initCore()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initSnapshotStorage never fails the application: an unavailable
// snapshot database degrades the session to in-memory only.
func (app *App) initSnapshotStorage() {
	const op = "App.initSnapshotStorage"
	log := slog.With("op", op)

	repo, err := storage.NewSnapshotRepository(app.cfg.Session.SnapshotPath)
	if err != nil {
		log.Error("snapshot storage is unavailable, "+
			"session is in-memory only", "err", err)
		return
	}
	app.snapshotRepo = repo
	app.snapshot = repo
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	catalog, err := storage.NewCatalogRepository(app.ctx, app.cfg.CatalogDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalog = catalog
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	productSubject := app.cfg.Broker.Topics.CatalogProducts + "-value"
	productSerde, err := schema.NewSerdeProductV1(
		ctx,
		schema.SubjectOpt(productSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	eventSubject := app.cfg.Broker.Topics.ShopperEvents + "-value"
	eventSerde, err := schema.NewSerdeShopperEventV1(
		ctx,
		schema.SubjectOpt(eventSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.product = productSerde
	app.serdes.shopperEvent = eventSerde
}

func (app *App) initBrokerAdapters() {
	const op = "App.initBrokerAdapters"

	seedBrokers := app.cfg.Broker.SeedBrokers
	eventsTopic := app.cfg.Broker.Topics.ShopperEvents
	productsTopic := app.cfg.Broker.Topics.CatalogProducts
	group := app.cfg.Broker.Consumers.CatalogGroup

	producer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, eventsTopic),
		kafka.ProducerEncoderOpt(app.serdes.shopperEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer

	consumer, err := kafka.NewProductsConsumer(
		kafka.ConsumerClientOpt(seedBrokers, productsTopic, group),
		kafka.ConsumerDecoderOpt(app.serdes.product),
		kafka.ConsumerSaverOpt(service.NewCatalogService(app.catalog)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.consumer = consumer
}

func (app *App) initCore() {
	storeCfg := service.StoreConfig{
		CompareLimit:        app.cfg.Session.CompareLimit,
		RecentlyViewedLimit: app.cfg.Session.RecentlyViewedLimit,
	}
	app.store = service.NewStore(app.ctx, app.snapshot, storeCfg)

	sessionID := uuid.NewString()
	app.session = service.NewSessionService(
		app.store, app.catalog, app.producer, sessionID,
	)
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, app.session, app.store)
	httphandler.RegisterWishlist(mux, app.session, app.store)
	httphandler.RegisterCompare(mux, app.session, app.store)
	httphandler.RegisterRecentlyViewed(mux, app.session, app.store)
	httphandler.RegisterOverlay(mux, app.session, app.session, app.store)
	httphandler.RegisterCatalog(mux, app.catalog)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.consumer.Run(app.ctx)

	app.store.Subscribe(func() {
		slog.Debug("session state changed")
	})

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.consumer.Close()
	app.producer.Close()
	app.catalog.Close()
	if app.snapshot != nil {
		app.snapshotRepo.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
