package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090go/internal/adsb"
	"jet1090go/internal/aggregator"
	"jet1090go/internal/aircraftdb"
	"jet1090go/internal/basestation"
	"jet1090go/internal/beast"
	"jet1090go/internal/broadcast"
	"jet1090go/internal/dedup"
	"jet1090go/internal/ingest"
	"jet1090go/internal/logging"
)

// Application wires the ingest -> dedup -> decode -> aggregate task
// graph (spec §1) and owns its lifecycle.
type Application struct {
	config Config
	logger *logrus.Logger

	receivers    []ingest.SensorReceiver
	deduplicator *dedup.Deduplicator
	cprDecoder   *adsb.CPRDecoder
	store        *aggregator.StateStore
	aircraftDB   *aircraftdb.Database
	logRotator   *logging.LogRotator
	baseStation  *basestation.Writer
	sink         broadcast.Broadcaster
	hub          *broadcast.Hub

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication creates a new application instance.
func NewApplication(config Config) *Application {
	config = config.WithDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the application.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting ADS-B aggregator")

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.run(); err != nil {
		app.logger.WithError(err).Error("application error")
		return err
	}

	<-sigChan
	app.logger.Info("received shutdown signal")
	app.shutdown()

	return nil
}

// initializeComponents initializes all application components.
func (app *Application) initializeComponents() error {
	var err error

	app.cprDecoder = adsb.NewCPRDecoder()

	if app.config.AircraftDBPath != "" {
		app.aircraftDB = aircraftdb.New(app.logger)
		if err := app.aircraftDB.LoadCSV(app.config.AircraftDBPath); err != nil {
			return fmt.Errorf("failed to load aircraft database: %w", err)
		}
	}

	var db aggregator.AircraftDatabase
	if app.aircraftDB != nil {
		db = app.aircraftDB
	}
	app.store = aggregator.NewStateStore(app.cprDecoder, db, app.config.StateMaxAge, app.config.HistoryLength, app.logger)

	app.deduplicator = dedup.NewDeduplicator(app.config.DedupWindow, app.logger)

	for i, addr := range app.config.BeastAddrs {
		sensorID := fmt.Sprintf("beast-%d", i)
		app.receivers = append(app.receivers, beast.NewReceiver(addr, sensorID, addr, app.logger))
	}

	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}

	if app.config.BaseStationEnabled {
		app.baseStation = basestation.NewWriter(app.logRotator, app.logger)
	}

	var sinks []broadcast.Broadcaster
	if app.config.JSONLEnabled {
		sinks = append(sinks, broadcast.NewJSONLSink(app.logRotator))
	}
	if app.config.WebsocketAddr != "" {
		app.hub = broadcast.NewHub(app.logger)
		sinks = append(sinks, app.hub)
	}
	if len(sinks) > 0 {
		app.sink = broadcast.Multi{Sinks: sinks}
	}

	return nil
}

// run starts every background goroutine and returns once they're
// launched; Start blocks afterward on the OS signal channel.
func (app *Application) run() error {
	// Channel capacity scales with the number of sensors (spec's
	// "100 x number-of-sensors" operational guidance), with a floor so a
	// single-sensor deployment still gets reasonable slack.
	capacity := 100 * len(app.receivers)
	if capacity < 1000 {
		capacity = 1000
	}
	rawChan := make(chan ingest.RawFrame, capacity)
	mergedChan := make(chan dedup.Merged, capacity)

	for _, receiver := range app.receivers {
		receiver := receiver
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := receiver.Run(app.ctx, rawChan); err != nil && app.ctx.Err() == nil {
				app.logger.WithError(err).Error("sensor receiver stopped")
			}
		}()
	}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.deduplicator.Run(app.ctx, rawChan, mergedChan)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.logRotator.Start(app.ctx)
	}()

	if app.hub != nil {
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := app.hub.ListenAndServe(app.ctx, app.config.WebsocketAddr, app.config.WebsocketPath); err != nil && app.ctx.Err() == nil {
				app.logger.WithError(err).Error("websocket server stopped")
			}
		}()
	}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.processMerged(mergedChan)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.expireLoop()
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.reportStatistics()
	}()

	app.logger.Info("all components started successfully")
	return nil
}

// processMerged decodes each deduplicated frame and folds it into
// aggregator state, fanning the result out to whichever sinks are
// configured.
func (app *Application) processMerged(mergedChan <-chan dedup.Merged) {
	for {
		select {
		case <-app.ctx.Done():
			return
		case merged, ok := <-mergedChan:
			if !ok {
				return
			}
			app.handleFrame(merged)
		}
	}
}

func (app *Application) handleFrame(merged dedup.Merged) {
	msg, err := adsb.Parse(merged.Frame, merged.Timestamp)
	if err != nil {
		app.logger.WithError(err).Debug("failed to parse frame")
		return
	}

	app.store.Update(msg, merged)

	icaoHex := msg.ICAOHex()
	snap, ok := app.store.Snapshot(icaoHex)
	if !ok {
		return
	}

	if app.baseStation != nil {
		if err := app.baseStation.WriteMessage(msg, snap); err != nil {
			app.logger.WithError(err).Debug("failed to write BaseStation message")
		}
	}

	if app.sink != nil {
		evt := broadcast.NewEvent(msg, merged.Sensors)
		if err := app.sink.Publish(evt); err != nil {
			app.logger.WithError(err).Debug("failed to publish event")
		}
	}
}

// expireLoop periodically evicts stale aircraft from the store (spec
// §4.6).
func (app *Application) expireLoop() {
	ticker := time.NewTicker(app.config.ExpireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			app.store.Expire(time.Now(), app.config.StateMaxAge, app.config.HistoryMaxAge)
		}
	}
}

// reportStatistics reports processing statistics periodically.
func (app *Application) reportStatistics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			keys := app.store.ICAO24Keys()
			app.logger.WithFields(logrus.Fields{
				"aircraft_tracked": len(keys),
			}).Info("aggregator statistics")
		}
	}
}

// shutdown gracefully shuts down the application.
func (app *Application) shutdown() {
	app.logger.Info("shutting down application")
	app.cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("all goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("shutdown timeout, forcing exit")
	}

	if app.sink != nil {
		app.sink.Close()
	}
	if app.logRotator != nil {
		app.logRotator.Close()
	}

	app.logger.Info("shutdown completed")
}
