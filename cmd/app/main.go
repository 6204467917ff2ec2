package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Domenick1991/airops/config"
	"github.com/Domenick1991/airops/internal/cache"
	"github.com/Domenick1991/airops/internal/console"
	"github.com/Domenick1991/airops/internal/database"
	"github.com/Domenick1991/airops/internal/events"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/Domenick1991/airops/internal/menu"
	"github.com/Domenick1991/airops/internal/repository"
	"github.com/Domenick1991/airops/internal/service/auth"
	"github.com/Domenick1991/airops/internal/service/booking"
	"github.com/Domenick1991/airops/internal/service/maintenance"
	"github.com/Domenick1991/airops/internal/service/reports"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const greeting = `

*******************************************************
              User Interface
*******************************************************
`

const brokerCheckTimeout = 3 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "app <dbname> <port> <user>",
		Short:         "Airline operations console",
		Args:          cobra.ExactArgs(3),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), args[0], args[1], args[2])
		},
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbName, port, user string) error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Database.Name = dbName
	cfg.Database.User = user
	cfg.Database.Password = ""
	if cfg.Database.Port, err = strconv.Atoi(port); err != nil {
		return fmt.Errorf("invalid port %q", port)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Configure(logger.Config{Level: logger.LogLevel(cfg.Logging.Level), Pretty: cfg.Logging.Pretty})

	fmt.Print(greeting)
	fmt.Print("Connecting to database...")
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		fmt.Println()
		return err
	}
	fmt.Println("Done")
	defer func() {
		fmt.Print("Disconnecting from database...")
		db.Close()
		fmt.Println("Done\n\nBye !")
	}()

	var reportCache reports.Cache
	if cfg.Redis.Enabled {
		rc := cache.NewRedisCache(cfg.Redis, cfg.Database.Identity(), time.Duration(cfg.Reports.CacheTTLSeconds)*time.Second)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, reports are not cached")
		} else {
			reportCache = rc
		}
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer publisher.Close()
		checkCtx, cancel := context.WithTimeout(ctx, brokerCheckTimeout)
		if err := events.CheckConnection(checkCtx, publisher); err != nil {
			logger.Warn().Err(err).Str("driver", cfg.Events.Driver).Msg("event broker unreachable, events may be lost")
		}
		cancel()
	}

	services := menu.Services{
		Auth:    auth.NewAuthService(repository.NewAccountRepository(db.Pool), publisher),
		Reports: reports.NewReportService(repository.NewReportRepository(db.Pool), reportCache),
		Booking: booking.NewBookingService(repository.NewBookingRepository(db),
			booking.WithCache(reportCache),
			booking.WithPublisher(publisher),
			booking.WithRetryAttempts(cfg.Booking.KeyRetryAttempts),
		),
		Maintenance: maintenance.NewMaintenanceService(repository.NewMaintenanceRepository(db),
			maintenance.WithCache(reportCache),
			maintenance.WithPublisher(publisher),
			maintenance.WithRetryAttempts(cfg.Booking.KeyRetryAttempts),
		),
	}

	sessionLog := logger.With("session_id", uuid.NewString())
	sessionLog.Info().Str("database", cfg.Database.Name).Str("events", cfg.Events.Driver).Msg("session started")

	return menu.NewDispatcher(console.New(os.Stdin, os.Stdout), services, sessionLog).Run(ctx)
}
