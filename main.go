package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/dan13ram/walletka-settlement/api"
	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/events"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/lsp"
	"github.com/dan13ram/walletka-settlement/mint"
	log "github.com/sirupsen/logrus"
)

func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var configPath string
	var envPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&envPath, "env", "", "path to env file")
	flag.Parse()

	var absConfigPath string
	if configPath != "" {
		absConfigPath, _ = filepath.Abs(configPath)
	}
	var absEnvPath string
	if envPath != "" {
		absEnvPath, _ = filepath.Abs(envPath)
	}
	if absConfigPath == "" && absEnvPath == "" {
		log.Fatal("[MAIN] Please provide a config file or an env file")
	}

	app.InitConfig(absConfigPath, absEnvPath)
	app.InitLogger()
	app.InitDB()

	healthcheck := app.NewHealthCheck()
	if app.Config.HealthCheck.ReadLastHealth {
		if last, err := healthcheck.FindLastHealth(); err == nil {
			log.WithField("healthy", last.Healthy).Info("[MAIN] Last health posted at ", last.UpdatedAt)
		}
	}

	wg := &sync.WaitGroup{}

	bus := events.NewAMQPBus(app.Config.RabbitMQ.URL, app.Config.RabbitMQ.Exchange, app.Config.RabbitMQ.PrefetchCount)

	lnd, err := lightning.NewLnd(app.Config.Lnd)
	if err != nil {
		log.Fatal("[MAIN] Error connecting to lnd: ", err)
	}

	monitorService, node, monitor := NewInvoiceMonitorService(lnd, lnd, bus, wg)

	ledgers := NewLedgers(app.DB)
	EnsureMints(ledgers.Account)

	engine := mint.NewEngineClient(app.Config.MintEngine.URL, time.Duration(app.Config.MintEngine.TimeoutMillis)*time.Millisecond)
	coordinator := mint.NewCoordinator(ledgers, engine, node, app.NewLocker(), mint.OptionsFromConfig())

	if pending, err := coordinator.ReconcilePending(); err != nil {
		log.WithError(err).Error("[MAIN] Error reading pending melts")
	} else if pending > 0 {
		log.Warn("[MAIN] ", pending, " melts need manual reconciliation")
	}

	var customers *lsp.CustomerService
	var delivery *lsp.DeliveryEngine
	if app.Config.LspConsumer.Enabled {
		customerStore := lsp.NewMongoCustomerStore(app.DB)
		invoiceStore := lsp.NewMongoCustomerInvoiceStore(app.DB)
		customers = lsp.NewCustomerService(customerStore, invoiceStore, node, lsp.CustomerOptionsFromConfig())
		delivery = NewDeliveryEngine(customerStore, invoiceStore, node, coordinator)
	}

	ResumeWatching(monitor, ledgers.Invoices, customers)

	services := []app.Service{
		monitorService,
		NewMintConsumerService(bus, coordinator, wg),
		NewLspConsumerService(bus, delivery, wg),
		mint.NewInvoiceExpiryService(ledgers.Invoices, lnd, wg),
	}

	var customerRoutes api.Customers
	if customers != nil {
		customerRoutes = customers
	}
	server := api.NewServer(coordinator, customerRoutes, healthcheck, app.Config.Lsp.Domain)
	services = append(services, api.NewHTTPService(server.Handler(), app.Config.HTTP.ListenAddress, wg))

	healthcheck.SetServices(services)
	services = append(services, app.NewHealthService(healthcheck, wg))

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	log.Info("[MAIN] Server started")

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Gracefully shutting down server...")

	for _, service := range services {
		service.Stop()
	}
	wg.Wait()

	if err := bus.Close(); err != nil {
		log.WithError(err).Warn("[MAIN] Error closing bus")
	}
	lnd.Close()
	if err := app.DB.Disconnect(); err != nil {
		log.WithError(err).Warn("[MAIN] Error disconnecting database")
	}
	log.Info("[MAIN] Server gracefully stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)
	done <- true
}
