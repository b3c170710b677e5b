package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"focustrack/internal/calendar"
	"focustrack/internal/config"
	"focustrack/internal/daemon"
	"focustrack/internal/database"
	"focustrack/internal/focus"
	"focustrack/internal/logging"
	"focustrack/internal/models"
	"focustrack/internal/reporter"
	"focustrack/internal/tracker"
	"focustrack/internal/web"
	"focustrack/pkg/detector"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	debug, _ := strconv.ParseBool(os.Getenv("FOCUSTRACK_DEBUG"))
	logging.SetupConsole(debug)

	switch command := os.Args[1]; command {
	case "start":
		startDaemon(false)
	case "serve":
		startDaemon(true)
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "report":
		generateReport()
	case "clear":
		clearDatabase()
	case "version":
		fmt.Printf("focustrack version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`focustrack - Application focus time tracker

Usage:
  focustrack <command> [options]

Commands:
  start              Start the tracking daemon
  serve              Start daemon with the dashboard API server
  stop               Stop the tracking daemon
  status             Show daemon status and current focused app
  report [period]    Generate time report (period: day, week, month)
  clear              Clear all tracking data from database
  version            Show version information
  help               Show this help message

Environment Variables:
  FOCUSTRACK_DB_PATH         Database file path
  FOCUSTRACK_POLL_INTERVAL   Poll interval in seconds
  FOCUSTRACK_TRACK_TITLES    Record window titles (true/false)
  FOCUSTRACK_FOCUS_DURATION  Default focus session length in minutes
  FOCUSTRACK_PID_FILE        PID file path
  FOCUSTRACK_LOG_FILE        Daemon log file path
  FOCUSTRACK_WEB_HOST        Dashboard API host
  FOCUSTRACK_WEB_PORT        Dashboard API port
  FOCUSTRACK_DEBUG           Verbose logging (true/false)

Version: %s
`, version)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func startDaemon(withWeb bool) {
	cfg := loadConfig()

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check daemon status")
	}
	if running {
		log.Fatal().Int("pid", pid).Msg("daemon is already running")
	}

	if os.Getenv("FOCUSTRACK_DAEMON_CHILD") != "1" {
		daemonize(cfg, withWeb)
		return
	}

	runDaemon(cfg, dm, withWeb)
}

func runDaemon(cfg *config.Config, dm *daemon.Daemon, withWeb bool) {
	debug, _ := strconv.ParseBool(os.Getenv("FOCUSTRACK_DEBUG"))
	logCloser := logging.SetupDaemon(cfg.Daemon.LogFile, debug)
	defer logCloser.Close()

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database schema")
	}

	det, err := detector.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize window detector")
	}
	defer det.Close()

	log.Info().Str("backend", det.Backend()).Msg("window detector initialized")

	if err := dm.WritePID(); err != nil {
		log.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer dm.RemovePID()

	repo := database.NewRepository(db)
	cal := calendar.New(nil)

	focusMgr := focus.NewManager(nil, func(s calendar.FocusSessionSummary) {
		cal.AddFocusSession(s)
		session := &models.FocusSession{
			StartTime: s.StartTime,
			Duration:  int64(s.Duration.Seconds()),
			MusicUsed: s.MusicUsed,
		}
		if err := repo.CreateSession(session); err != nil {
			log.Error().Err(err).Msg("failed to persist focus session")
		}
	})

	pt := tracker.New(det, nil, cfg.Tracker.TrackTitles)
	svc := tracker.NewService(cfg, pt, repo, cal, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := svc.Start(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	var webServer *web.Server
	if withWeb {
		handler := web.NewHandler(cfg, pt, cal, focusMgr, reporter.New(repo))
		webServer = web.NewServer(cfg, handler)
		g.Go(func() error {
			if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		log.Info().Str("addr", webServer.Address()).Msg("dashboard API available")
	}

	log.Info().Msg("focustrack daemon started")

	select {
	case <-sigChan:
		log.Info().Msg("received shutdown signal")
	case <-ctx.Done():
	}

	cancel()
	svc.Stop()

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down web server")
		}
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("daemon exited with error")
	}
	log.Info().Msg("daemon stopped")
}

func stopDaemon() {
	cfg := loadConfig()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check daemon status")
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatal().Err(err).Msg("failed to stop daemon")
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := loadConfig()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check daemon status")
	}

	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Poll Interval: %v\n", cfg.Tracker.PollInterval)
	}

	det, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not initialize window detector: %v\n", err)
		return
	}
	defer det.Close()

	if info := det.GetActiveWindow(); info != nil {
		fmt.Printf("\nCurrent Window:\n")
		fmt.Printf("  Identity: %s\n", info.Identity())
		fmt.Printf("  Class: %s\n", info.Class)
		fmt.Printf("  Title: %s\n", info.Title)
		fmt.Printf("  Backend: %s\n", info.Backend)
	} else {
		fmt.Println("\nNo focused window detected")
	}
}

func generateReport() {
	periodType := "day"
	if len(os.Args) > 2 {
		periodType = os.Args[2]
	}

	cfg := loadConfig()

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	rep := reporter.New(database.NewRepository(db))

	jsonOutput := len(os.Args) > 3 && os.Args[3] == "--json"

	report, err := rep.GenerateReport(periodType)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}

	if jsonOutput {
		jsonStr, err := rep.FormatReportJSON(report)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to format JSON")
		}
		fmt.Println(jsonStr)
	} else {
		fmt.Println(rep.FormatReportText(report))
	}
}

func clearDatabase() {
	cfg := loadConfig()

	fmt.Print("This will delete all tracking data. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.NewRepository(db).Clear(); err != nil {
		log.Fatal().Err(err).Msg("failed to clear database")
	}
	fmt.Println("Database cleared successfully")
}

func daemonize(cfg *config.Config, withWeb bool) {
	env := os.Environ()
	env = append(env, "FOCUSTRACK_DAEMON_CHILD=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys:   detachAttr(),
	}

	process, err := os.StartProcess(os.Args[0], os.Args, procAttr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start daemon process")
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	if withWeb {
		fmt.Printf("Dashboard API: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	}
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
}
