package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"table-orders/internal/auth"
	"table-orders/internal/billing"
	"table-orders/internal/broker"
	"table-orders/internal/common/httpx"
	"table-orders/internal/common/logger"
	"table-orders/internal/config"
	"table-orders/internal/connections/database"
	"table-orders/internal/connections/rabbitmq"
	"table-orders/internal/domain"
	"table-orders/internal/gateway"
	"table-orders/internal/handlers"
	"table-orders/internal/repository"
	"table-orders/internal/routing"
	"table-orders/internal/service"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (default: config.yaml, deploy/config.example.yaml)")
	port := flag.Int("port", 0, "http port (overrides config)")
	memory := flag.Bool("memory", false, "run with in-memory ledger/catalog/broker and a demo menu")
	prefetch := flag.Int("prefetch", 10, "action queue prefetch")
	flag.Parse()

	lg := logger.New("table-orders")

	path := *cfgPath
	if path == "" {
		var err error
		if path, err = config.FindConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "no config file found; pass --config")
			os.Exit(2)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *memory, *prefetch, lg); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, memory bool, prefetch int, lg *logger.Logger) error {
	var (
		ledger  repository.Ledger
		catalog repository.Catalog
		topics  broker.TopicBroker
		rmq     *rabbitmq.Client
	)

	if memory {
		ledger = repository.NewLedgerMemory()
		catalog = demoCatalog()
		topics = broker.NewMemoryBroker()
		lg.Info("memory_mode", nil)
	} else {
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repository.EnsureSchema(ctx, db); err != nil {
			return err
		}
		lg.Info("postgres_connected", map[string]any{
			"host": cfg.Database.Host, "database": cfg.Database.Database,
		})

		rmq, err = rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer rmq.Close()
		if err := rmq.DeclareTopology(); err != nil {
			return err
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})

		ledger = repository.NewLedgerPG(db)
		catalog = repository.NewCatalogPG(db)
		topics = broker.NewAMQPBroker(rmq, lg)
	}

	gate := auth.NewStaticGate(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Token)
	bills := billing.NewAggregator(ledger)
	router := routing.NewRouter(catalog, lg)
	orderSvc := service.NewOrderService(catalog, ledger, bills, router, topics, lg)
	statusSvc := service.NewStatusService(catalog, ledger, topics, lg)
	billSvc := service.NewBillService(ledger, topics, lg)
	querySvc := service.NewQueryService(catalog, ledger)

	dispatcher := gateway.NewDispatcher(topics, bills, orderSvc, statusSvc, billSvc, gate, lg)

	errCh := make(chan error, 2)
	if amqpTopics, ok := topics.(*broker.AMQPBroker); ok {
		consumer := gateway.NewConsumer(rmq, amqpTopics, dispatcher, prefetch, lg)
		go func() { errCh <- consumer.Run(ctx) }()
	}

	h := &handlers.Handler{
		Orders: handlers.NewOrdersHandler(querySvc),
		Auth:   handlers.NewAuthHandler(gate),
	}
	if memTopics, ok := topics.(*broker.MemoryBroker); ok {
		h.Actions = handlers.NewActionsHandler(dispatcher, memTopics)
	}
	srv := httpx.New(fmt.Sprintf(":%d", cfg.HTTP.Port), handlers.Router(h))
	lg.Info("service_started", map[string]any{"port": cfg.HTTP.Port})
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		lg.Info("graceful_shutdown", nil)
		return nil
	case err := <-errCh:
		return err
	}
}

func demoCatalog() repository.Catalog {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return repository.NewCatalogMemory(
		domain.MenuItem{ID: "margherita", Name: "Margherita", Price: price("8.50"), KitchenID: domain.KitchenHot},
		domain.MenuItem{ID: "carbonara", Name: "Carbonara", Price: price("11.00"), KitchenID: domain.KitchenHot},
		domain.MenuItem{ID: "caesar", Name: "Caesar Salad", Price: price("7.00"), KitchenID: domain.KitchenCold},
		domain.MenuItem{ID: "tiramisu", Name: "Tiramisu", Price: price("5.50"), KitchenID: domain.KitchenCold},
	)
}
