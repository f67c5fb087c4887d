package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/steer2go/internal/api"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/markusressel/steer2go/internal/persistence"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/statistics"
	"github.com/markusressel/steer2go/internal/telemetry"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/markusressel/steer2go/internal/vehicle"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	var pers persistence.Persistence = persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("Drive state persistence is unavailable: %v", err)
		pers = nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	collaborators, err := InitializeObjects(ctx, config)
	if err != nil {
		ui.Fatal("%v", err)
	}
	collaborators.Persistence = pers

	steeringController := controller.NewSteeringController(config, collaborators)
	steeringController.RestoreState()

	registerCollectors(steeringController, collaborators)

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			err := steeringController.Run(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			cancel()
		})
	}
	if collaborators.Publisher != nil {
		// === telemetry broadcast
		publisher := collaborators.Publisher
		g.Add(func() error {
			if err := publisher.Listen(ctx); err != nil {
				ui.Error("Cannot start telemetry broadcast, continuing without it (%v)", err)
				<-ctx.Done()
			}
			return nil
		}, func(err error) {
			cancel()
		})
	}
	if config.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(steeringController, prometheus.DefaultRegisterer)
		g.Add(func() error {
			addr := net.JoinHostPort(config.Api.Host, strconv.Itoa(config.Api.Port))
			ui.Info("REST API listening on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start REST API (%v)", err)
				<-ctx.Done()
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping REST API: %v", err)
			}
			cancel()
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		port := config.Statistics.Port
		if port <= 0 || port > 65535 {
			port = 9000
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
		addHttpServer(ctx, cancel, &g, "statistics", server)
	}
	if config.Profiling.Enabled {
		// === pprof
		addr := net.JoinHostPort(config.Profiling.Host, strconv.Itoa(config.Profiling.Port))
		server := &http.Server{Addr: addr, Handler: http.DefaultServeMux}
		addHttpServer(ctx, cancel, &g, "profiling", server)
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	shutdown(collaborators, config)

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates the sensors, the vehicle backend and the telemetry sinks described
// by the given configuration. Sensors are registered in sensors.SensorMap.
func InitializeObjects(ctx context.Context, config configuration.Configuration) (controller.Collaborators, error) {
	collaborators := controller.Collaborators{}

	var err error
	if collaborators.Lane, err = initializeSensor(config.Sensors.Lane); err != nil {
		return collaborators, err
	}
	if collaborators.Obstacle, err = initializeSensor(config.Sensors.Obstacle); err != nil {
		return collaborators, err
	}
	if collaborators.Pose, err = initializeSensor(config.Sensors.Pose); err != nil {
		return collaborators, err
	}

	collaborators.Vehicle, err = vehicle.NewVehicle(ctx, config.Vehicle)
	if err != nil {
		return collaborators, fmt.Errorf("unable to initialize vehicle: %w", err)
	}

	if config.Telemetry.Enabled {
		collaborators.Publisher = telemetry.NewPublisher(config.Telemetry)
	}
	if config.Recorder.Enabled {
		collaborators.Recorder = telemetry.NewRecorder(config.Recorder)
		ui.Info("Recording session %s", collaborators.Recorder.SessionId())
	}

	return collaborators, nil
}

func initializeSensor(config *configuration.ProviderConfig) (sensors.Sensor, error) {
	if config == nil {
		return nil, nil
	}
	sensor, err := sensors.NewSensor(*config)
	if err != nil {
		return nil, fmt.Errorf("unable to process sensor configuration %s: %w", config.ID, err)
	}
	if _, err := sensor.GetValues(); err != nil {
		ui.Warning("Error reading sensor %s: %v", config.ID, err)
	}
	sensors.SensorMap.Set(config.ID, sensor)
	return sensor, nil
}

func registerCollectors(steeringController *controller.SteeringController, collaborators controller.Collaborators) {
	statistics.Register(statistics.NewControllerCollector(steeringController))

	var sensorList []sensors.Sensor
	for _, s := range []sensors.Sensor{collaborators.Lane, collaborators.Obstacle, collaborators.Pose} {
		if s != nil {
			sensorList = append(sensorList, s)
		}
	}
	statistics.Register(statistics.NewSensorCollector(sensorList))

	if collaborators.Publisher != nil {
		statistics.Register(statistics.NewTelemetryCollector(collaborators.Publisher))
	}
}

func addHttpServer(ctx context.Context, cancel context.CancelFunc, g *run.Group, name string, server *http.Server) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
			<-ctx.Done()
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("Stopped %s server.", name)
		}
		cancel()
	})
}

func shutdown(collaborators controller.Collaborators, config configuration.Configuration) {
	if collaborators.Publisher != nil {
		collaborators.Publisher.Close()
	}
	if collaborators.Recorder != nil {
		if err := collaborators.Recorder.Export(); err != nil {
			ui.Error("Error exporting recorded session: %v", err)
		} else {
			ui.Info("Recorded session written to %s", config.Recorder.Path)
		}
	}
	if collaborators.Vehicle != nil {
		if err := collaborators.Vehicle.Close(); err != nil {
			ui.Warning("Error closing vehicle: %v", err)
		}
	}
}
