// Command mudra runs the hand-gesture launcher: it watches a webcam, counts
// extended fingers and triggers the configured action for each stable count.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		log.Fatalf("Failed to resolve home directory: %v", err)
	}

	configPath := flag.String("config", defaultConfig, "path to the config file")
	staticDir := flag.String("static", "", "directory with the settings UI (optional)")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir := filepath.Dir(*configPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	// First run: persist the configured mappings without clobbering edits
	// made through the API.
	if err := st.Mappings().Seed(cfg.Mappings); err != nil {
		log.Fatalf("Failed to seed mappings: %v", err)
	}

	speaker, err := action.NewSpeaker()
	if err != nil {
		if errors.Is(err, action.ErrNoSpeechCommand) {
			log.Print("No speech command found, spoken feedback disabled")
		} else {
			log.Printf("Speech unavailable: %v", err)
		}
	}

	var plugins *plugin.Manager
	var pluginExec *plugin.Executor
	if cfg.PluginDir != "" {
		plugins = plugin.NewManager(cfg.PluginDir)
		if err := plugins.Discover(); err != nil {
			log.Printf("Plugin discovery failed: %v", err)
			plugins = nil
		} else {
			pluginExec = plugin.NewExecutor(10 * time.Second)
			log.Printf("Discovered %d plugins", len(plugins.List()))
		}
	}

	dispatcher := action.NewDispatcher(action.Options{
		Speaker:    speaker,
		Resolver:   action.NewResolver(cfg.Programs),
		Plugins:    plugins,
		PluginExec: pluginExec,
	})

	var det detector.Detector
	mpDet, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
	if err != nil {
		// Keep the API and settings reachable even when detection cannot run.
		log.Printf("Hand detection unavailable: %v", err)
		det = detector.NewMockDetector()
	} else {
		det = mpDet
	}
	defer det.Close()

	camera := capture.NewCamera(cfg.CameraID)

	var sysTray *tray.Tray
	if !*noTray {
		sysTray = tray.New()
	}

	application := app.New(cfg, app.Options{
		Camera:     camera,
		Detector:   det,
		Dispatcher: dispatcher,
		Store:      st,
		Tray:       sysTray,
	})

	// Stored mappings override the config file ones.
	if err := application.LoadMappings(); err != nil {
		log.Printf("Falling back to config mappings: %v", err)
	}

	// The pause toggle persists across restarts.
	if v, err := st.Settings().GetDefault("enabled", "true"); err == nil && v == "false" {
		application.SetEnabled(false)
		log.Print("Gesture detection paused (restored from settings)")
	}

	srv := server.New(server.Config{
		StaticDir: *staticDir,
		Store:     st,
		Camera:    camera,
		Detector:  det,
		Status:    application,
	})
	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
	}()

	if sysTray != nil {
		sysTray.OnToggle(func(enabled bool) {
			application.SetEnabled(enabled)
			if err := st.Settings().Set("enabled", strconv.FormatBool(enabled)); err != nil {
				log.Printf("Failed to persist enabled state: %v", err)
			}
			if enabled {
				log.Print("Gesture detection resumed")
			} else {
				log.Print("Gesture detection paused")
			}
		})
		sysTray.OnSettings(func() {
			addr := cfg.ListenAddr
			if addr != "" && addr[0] == ':' {
				addr = "localhost" + addr
			}
			if err := action.NewBrowser().OpenURL("http://" + addr); err != nil {
				log.Printf("Failed to open settings: %v", err)
			}
		})
		sysTray.OnQuit(func() {
			application.Stop()
		})

		sysTray.Run()
	} else {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		application.Stop()
	}

	log.Print("Shutting down")
}
