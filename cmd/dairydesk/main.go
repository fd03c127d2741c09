package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairydesk/internal/catalog"
	"github.com/mamadbah2/dairydesk/internal/config"
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/devserver"
	"github.com/mamadbah2/dairydesk/internal/repository/mongodb"
	"github.com/mamadbah2/dairydesk/internal/repository/sheets"
	"github.com/mamadbah2/dairydesk/internal/scheduler"
	"github.com/mamadbah2/dairydesk/internal/service/reporting"
	"github.com/mamadbah2/dairydesk/internal/session"
	"github.com/mamadbah2/dairydesk/internal/tui"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
	"github.com/mamadbah2/dairydesk/pkg/logger"
)

// exportEndpoints maps the CLI's entity slugs onto collection endpoints.
var exportEndpoints = map[string]string{
	"milk-yield":   catalog.MilkYieldEndpoint,
	"vaccination":  catalog.VaccinationEndpoint,
	"calf-feeding": catalog.CalfFeedingEndpoint,
	"weaned-calf":  catalog.WeanedCalfEndpoint,
	"finance":      catalog.FinanceEndpoint,
	"hygiene":      catalog.HygieneEndpoint,
	"shift":        catalog.ShiftEndpoint,
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dairydesk",
		Short:         "Terminal console for the dairy farm records API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(loginCmd(), logoutCmd(), tuiCmd(), exportCmd(), reportCmd(), serveCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func loadSession(cfg *config.Config) (session.Session, *session.Store, error) {
	store, err := session.NewStore(cfg.Session.FilePath)
	if err != nil {
		return session.Session{}, nil, err
	}
	sess, err := store.Load()
	if err != nil {
		return session.Session{}, nil, err
	}
	return sess, store, nil
}

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, store, err := loadSession(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			sess, err := dairy.Login(ctx, cfg.API.BaseURL, username, password)
			if err != nil {
				return err
			}
			if err := store.Save(sess); err != nil {
				return err
			}

			fmt.Printf("signed in as %s (%s)\n", sess.Username, sess.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, store, err := loadSession(cfg)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sess, _, err := loadSession(cfg)
			if err != nil {
				return err
			}
			if !sess.Authenticated() {
				return errors.New("no session found, run 'dairydesk login' first")
			}

			logPath := filepath.Join(os.TempDir(), "dairydesk-tui.log")
			baseLogger := logger.Must(logger.NewFile(logPath))
			defer func() { _ = baseLogger.Sync() }()
			zap.ReplaceGlobals(baseLogger)

			client := dairy.New(cfg.API.BaseURL, sess)
			app := tui.NewApp(sess, tui.BuildPages(client, cfg.Downloads.Dir))

			_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
			return err
		},
	}
}

func exportCmd() *cobra.Command {
	var startDate, endDate, search string

	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Download an entity spreadsheet into the downloads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, ok := exportEndpoints[args[0]]
			if !ok {
				return fmt.Errorf("unknown entity %q", args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sess, _, err := loadSession(cfg)
			if err != nil {
				return err
			}
			if !sess.Authenticated() {
				return errors.New("no session found, run 'dairydesk login' first")
			}

			client := dairy.New(cfg.API.BaseURL, sess)
			exporter := controller.NewExporter(client, cfg.Downloads.Dir)

			query := url.Values{}
			filters := controller.Filters{StartDate: startDate, EndDate: endDate, Search: search}
			if startDate != "" {
				query.Set("start_date", startDate)
			}
			if endDate != "" {
				query.Set("end_date", endDate)
			}
			if search != "" {
				query.Set("search", search)
			}
			for key, values := range sess.ExportScope() {
				for _, v := range values {
					query.Set(key, v)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			path, err := exporter.Export(ctx, endpoint, controller.FileName(args[0], filters, time.Now()), query)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "inclusive end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&search, "search", "", "server-side search term")
	return cmd
}

func reportCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Publish the daily summary row to the report spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateReporting(); err != nil {
				return err
			}
			sess, _, err := loadSession(cfg)
			if err != nil {
				return err
			}
			if !sess.Authenticated() {
				return errors.New("no session found, run 'dairydesk login' first")
			}

			baseLogger := logger.Must(logger.New())
			defer func() { _ = baseLogger.Sync() }()
			zap.ReplaceGlobals(baseLogger)

			sink, err := sheets.NewGoogleSheetRepository(cmd.Context(), cfg.Reporting, baseLogger.Named("repo.sheets"))
			if err != nil {
				baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
			}

			client := dairy.New(cfg.API.BaseURL, sess)
			reportingSvc := reporting.NewService(client, sink, baseLogger.Named("svc.reporting"))

			if !watch {
				ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
				defer cancel()
				return reportingSvc.Run(ctx, time.Now())
			}

			sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			<-ctx.Done()
			baseLogger.Info("shutdown signal received")
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and publish on the cron schedule")
	return cmd
}

func serveCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local fixture API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			baseLogger := logger.Must(logger.New())
			defer func() { _ = baseLogger.Sync() }()
			zap.ReplaceGlobals(baseLogger)

			var store devserver.Store
			if cfg.DevServer.MongoURI != "" {
				repo, err := mongodb.NewRepository(cmd.Context(), cfg.DevServer.MongoURI, cfg.DevServer.MongoDB)
				if err != nil {
					baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
				}
				defer func() {
					if err := repo.Close(context.Background()); err != nil {
						baseLogger.Error("failed to close mongodb connection", zap.Error(err))
					}
				}()
				store = repo
			} else {
				store = devserver.NewMemoryStore()
			}

			if seed {
				if err := devserver.Seed(cmd.Context(), store); err != nil {
					return err
				}
				baseLogger.Info("fixture data seeded")
			}

			_, engine := devserver.New(store, cfg.DevServer.JWTSecret, baseLogger.Named("devserver"))

			srv := &http.Server{
				Addr:         ":" + cfg.DevServer.Port,
				Handler:      engine,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			go func() {
				baseLogger.Info("fixture server starting", zap.String("port", cfg.DevServer.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					baseLogger.Fatal("http server crashed", zap.Error(err))
				}
			}()

			<-ctx.Done()
			baseLogger.Info("shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "seed sample data on startup")
	return cmd
}
