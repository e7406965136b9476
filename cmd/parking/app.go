package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frontandrew/parking/internal/delivery/cli"
	deliveryHTTP "github.com/frontandrew/parking/internal/delivery/http"
	"github.com/frontandrew/parking/internal/facility"
	"github.com/frontandrew/parking/internal/pkg/clock"
	"github.com/frontandrew/parking/internal/pkg/config"
	"github.com/frontandrew/parking/internal/pkg/database"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/pkg/redis"
	"github.com/frontandrew/parking/internal/report"
	"github.com/frontandrew/parking/internal/repository"
	"github.com/frontandrew/parking/internal/repository/cached"
	"github.com/frontandrew/parking/internal/repository/postgres"
	"github.com/frontandrew/parking/internal/usecase/parking"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// app держит конфигурацию и внешние подключения на время одной команды
type app struct {
	cfg      *config.Config
	log      logger.Logger
	exporter *report.Exporter
	archive  repository.ReportArchive
	db       *pgxpool.Pool
	cache    *redis.Client
}

// newApp загружает конфигурацию, применяет флаги и подключает хранилища отчетов
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("slots") {
		cfg.Facility.Slots = slotsFlag
	}
	if reportDirFlag != "" {
		cfg.Report.Dir = reportDirFlag
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output).
		With("session_id", uuid.New().String())
	logger.SetGlobalLogger(log)

	a := &app{cfg: cfg, log: log}

	repos, err := a.connectRepositories(cmd.Context())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.exporter = report.NewExporter(report.NewFileSink(cfg.Report.Dir), log, repos...)

	return a, nil
}

// connectRepositories подключает PostgreSQL и Redis, если они включены
func (a *app) connectRepositories(ctx context.Context) ([]repository.ReportRepository, error) {
	var archive repository.ReportArchive

	if a.cfg.Database.Enabled {
		db, err := database.Connect(ctx, &a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		archive = postgres.NewReportRepository(db)

		a.log.Info("Connected to PostgreSQL", map[string]interface{}{
			"host":     a.cfg.Database.Host,
			"port":     a.cfg.Database.Port,
			"database": a.cfg.Database.Database,
		})
	}

	if a.cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, &a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.cache = client

		a.log.Info("Connected to Redis", map[string]interface{}{
			"address": a.cfg.Redis.Address(),
		})
		repo := cached.NewReportRepository(archive, client, a.cfg.Redis.TTL)
		a.archive = repo
		return []repository.ReportRepository{repo}, nil
	}

	if archive != nil {
		a.archive = archive
		return []repository.ReportRepository{archive}, nil
	}
	return nil, nil
}

// newService создает парковку и сервис поверх нее
func (a *app) newService(slots int) (*parking.Service, error) {
	f, err := facility.New(slots)
	if err != nil {
		return nil, err
	}

	counts := f.TierCounts()
	a.log.Info("Parking lot initialized", map[string]interface{}{
		"total":    f.TotalSlots(),
		"small":    counts.Small,
		"large":    counts.Large,
		"oversize": counts.Oversize,
	})

	return parking.NewService(f, a.exporter, a.archive, clock.Real{}, a.log), nil
}

// RunConsole запускает интерактивное меню
func (a *app) RunConsole(ctx context.Context, in io.Reader, out io.Writer) error {
	console := cli.NewApp(in, out, func(slots int) (cli.ParkingService, error) {
		svc, err := a.newService(slots)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}, a.log)
	return console.Run(ctx, a.cfg.Facility.Slots)
}

// Serve запускает HTTP API и при остановке выгружает итоговый отчет
func (a *app) Serve(ctx context.Context) error {
	svc, err := a.newService(a.cfg.Facility.Slots)
	if err != nil {
		return err
	}

	handler := deliveryHTTP.NewRouter(deliveryHTTP.NewParkingHandler(svc, a.log), a.log).Setup()

	srv := &http.Server{
		Addr:         a.cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		a.log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
			_ = srv.Close()
		}
		a.log.Info("Server stopped gracefully")
	}

	res, err := svc.GenerateReport(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Parking lot report successfully generated to %s\n", res.Path)
	return nil
}

// Close закрывает подключения
func (a *app) Close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	database.Close(a.db)
}
