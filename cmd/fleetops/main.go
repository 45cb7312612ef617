package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/config"
	"github.com/ukydev/fleet-ops/internal/db"
	"github.com/ukydev/fleet-ops/internal/handlers"
	"github.com/ukydev/fleet-ops/internal/ingest"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fleetops",
		Short: "Fleet operations dashboard backend",
		Long: `Fleet, maintenance, shift scheduling, billing and tender tracking
over a pluggable key-value store. Collections seed themselves from fixture
data on first read.`,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(queueCmd())
	rootCmd.AddCommand(shiftsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and wires the service over the configured backend.
func setup() (*config.Config, *db.Service, *auth.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	mode := db.TelemetrySynthesized
	if cfg.PersistTelemetry {
		mode = db.TelemetryPersisted
	}
	svc := db.New(store, authService, db.Options{
		StrictRefs:    cfg.StrictRefs,
		TelemetryMode: mode,
	})

	return cfg, svc, authService, closeStore, nil
}

func openStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := kv.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, func() { store.Close() }, nil
	case config.BackendMongo:
		store, err := kv.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo store: %w", err)
		}
		return store, func() { store.Close(context.Background()) }, nil
	default:
		return kv.NewMemory(), func() {}, nil
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, authService, closeStore, err := setup()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.MQTTBroker != "" {
				sub, err := ingest.NewSubscriber(cfg.MQTTBroker, cfg.MQTTTopic, svc.Telemetry)
				if err != nil {
					return err
				}
				go func() {
					if err := sub.Start(ctx); err != nil {
						log.WithError(err).Error("telemetry ingest stopped")
					}
				}()
			}

			go logFleetSnapshots(ctx, svc, cfg.RefreshInterval)

			server := handlers.NewServer(svc, authService)
			httpServer := &http.Server{
				Addr:    cfg.Addr,
				Handler: server.Handler(),
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.WithFields(log.Fields{
				"addr":    cfg.Addr,
				"backend": cfg.Backend,
			}).Info("server starting")

			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

// logFleetSnapshots periodically logs fleet counts, matching the refresh
// cadence of the dashboard it backs.
func logFleetSnapshots(ctx context.Context, svc *db.Service, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			vehicles, err := svc.Fleet.List(ctx)
			if err != nil {
				log.WithError(err).Warn("fleet snapshot failed")
				continue
			}
			active, open := 0, 0
			for _, v := range vehicles {
				if v.Status == models.VehicleActive {
					active++
				}
				open += v.OpenAlertsCount
			}
			log.WithFields(log.Fields{
				"vehicles":    len(vehicles),
				"active":      active,
				"open_alerts": open,
			}).Info("fleet snapshot")
		}
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset every collection to its fixture data",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, closeStore, err := setup()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := svc.Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Println("Collections seeded.")
			return nil
		},
	}
}

func queueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Print the maintenance queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, closeStore, err := setup()
			if err != nil {
				return err
			}
			defer closeStore()

			queue, err := svc.Maintenance.GetQueue(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("Maintenance queue")
			fmt.Println("=================")
			fmt.Println("Overdue:")
			for _, v := range queue.Overdue {
				fmt.Printf("  %-10s %-12s due %s\n", v.ID, v.AssetCode, v.Maintenance.NextDueAt.Format("2006-01-02"))
			}
			fmt.Println("Due soon:")
			for _, v := range queue.DueSoon {
				fmt.Printf("  %-10s %-12s due %s\n", v.ID, v.AssetCode, v.Maintenance.NextDueAt.Format("2006-01-02"))
			}
			fmt.Println("High risk:")
			for _, v := range queue.HighRisk {
				fmt.Printf("  %-10s %-12s health %.0f\n", v.ID, v.AssetCode, v.HealthScore)
			}
			fmt.Printf("Open work orders: %d\n", len(queue.OpenWorkOrders))
			return nil
		},
	}
}

func shiftsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "Print the shift board for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, closeStore, err := setup()
			if err != nil {
				return err
			}
			defer closeStore()

			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			}

			shifts, err := svc.Shifts.ListByDate(cmd.Context(), date)
			if err != nil {
				return err
			}
			summary, err := svc.Shifts.DashboardSummary(cmd.Context(), date)
			if err != nil {
				return err
			}

			fmt.Printf("Shift board for %s\n", date)
			fmt.Println("========================")
			for _, sh := range shifts {
				fmt.Printf("  %-10s %s-%s  team %-6s site %-6s %s\n",
					sh.ID, sh.PlannedStart, sh.PlannedEnd, sh.TeamID, sh.SiteID, sh.Status)
			}
			fmt.Printf("Active crews: %d | Headcount: %d | Missing check-ins: %d | Done: %d\n",
				summary.ActiveCrews, summary.TotalHeadcount, summary.MissingCheckins, summary.DoneShifts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (2006-01-02), defaults to today")
	return cmd
}
