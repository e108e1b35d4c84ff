package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lokesh7385/mudra/internal/metrics"
	"github.com/lokesh7385/mudra/internal/server"
	"github.com/lokesh7385/mudra/internal/tray"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the camera pipeline, dashboard server and system tray",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd, true)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the camera pipeline and dashboard server without a tray",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd, false)
	},
}

func init() {
	for _, c := range []*cobra.Command{runCmd, serveCmd} {
		c.Flags().String("addr", "", "HTTP listen address (overrides config)")
		c.Flags().Bool("no-mirror", false, "Do not flip frames horizontally")
		rootCmd.AddCommand(c)
	}
}

// runDaemon starts the pipeline and server and blocks until a signal, a
// server failure or, with the tray, the Quit menu item.
func runDaemon(cmd *cobra.Command, withTray bool) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if noMirror, _ := cmd.Flags().GetBool("no-mirror"); noMirror {
		cfg.Camera.Mirror = false
	}

	svc, err := openServices(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	m := metrics.New()
	pipeline, err := svc.newPipeline(m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Start(ctx); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer pipeline.Stop()

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(cfg.DataDir)
	}
	if staticDir != "" {
		log.Info("serving dashboard", "dir", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     svc.store,
		App:       pipeline,
		Bindings:  svc.actions,
		Metrics:   m,
		Logger:    log,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe(ctx, cfg.Server.Addr)
	}()

	if withTray {
		t := tray.New(pipeline.IsEnabled())
		t.OnToggle(pipeline.SetEnabled)
		t.OnDashboard(func() {
			if err := openBrowser(dashboardURL(cfg.Server.Addr)); err != nil {
				log.Warn("open dashboard", "error", err)
			}
		})
		t.OnQuit(stop)

		events, unsubscribe := pipeline.Subscribe(16)
		defer unsubscribe()
		go t.Watch(events)

		go func() {
			select {
			case <-ctx.Done():
			case err := <-serverErr:
				serverErr <- err
				stop()
			}
			t.Quit()
		}()

		// Blocks on the main goroutine until Quit.
		t.Run()
		stop()
	} else {
		select {
		case <-ctx.Done():
		case err := <-serverErr:
			serverErr <- err
			stop()
		}
	}

	if err := <-serverErr; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server: %w", err)
	}
	log.Info("shutting down")
	return nil
}

// findWebDir searches for the dashboard assets in the working directory,
// its parents and the data dir. Returns "" if none exist.
func findWebDir(dataDir string) string {
	candidates := []string{"web", "../web", "../../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}

func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	return c.Start()
}
