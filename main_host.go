package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abedrayen/Portfolio/app"
	"github.com/abedrayen/Portfolio/hal"
	"github.com/abedrayen/Portfolio/internal/buildinfo"
	"github.com/abedrayen/Portfolio/internal/config"
	"github.com/abedrayen/Portfolio/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath  string
	envFile     string
	headless    bool
	hz          int
	ticks       uint64
	reloadEvery uint64
	snapshot    string
	icons       string
	logLevel    string
	noSplash    bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   buildinfo.Name,
		Short: "Rotating 3D cloud of skill icons",
		Long: `portfolio renders a slowly rotating sphere of skill icons, after a short
intro. Icons are fetched from the network or disk in one batch and appear
together once every icon has loaded or failed.

Keys: R reshuffles and reloads the icons, Space skips the intro, Esc quits.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	cmd.Version = buildinfo.String()
	cmd.SetVersionTemplate("{{.Version}}\n")

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file.")
	fl.StringVar(&f.envFile, "env-file", ".env", "Path to a .env file with PORTFOLIO_* overrides.")
	fl.BoolVar(&f.headless, "headless", false, "Run without a window.")
	fl.IntVar(&f.hz, "hz", 0, "Tick rate in headless mode.")
	fl.Uint64Var(&f.ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
	fl.Uint64Var(&f.reloadEvery, "reload-every", 0, "Reload the icons every N ticks in headless mode.")
	fl.StringVar(&f.snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	fl.StringVar(&f.icons, "icons", "", "Comma separated icon URLs or paths, replacing the configured list.")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error).")
	fl.BoolVar(&f.noSplash, "no-splash", false, "Skip the intro.")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

func loadConfig(cmd *cobra.Command, f rootFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	env, err := config.ReadEnvFile(f.envFile)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, env); err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("hz") {
		cfg.Headless.Hz = f.hz
	}
	if fl.Changed("ticks") {
		cfg.Headless.Ticks = f.ticks
	}
	if fl.Changed("reload-every") {
		cfg.Headless.ReloadEvery = f.reloadEvery
	}
	if fl.Changed("icons") {
		cfg.Cloud.Images = config.SplitList(f.icons)
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.noSplash {
		cfg.Splash.Enabled = false
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, f rootFlags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger.WithField("version", buildinfo.Short()).Debug("starting")

	if !f.headless {
		return hal.RunWindow(func(h hal.HAL) (hal.App, error) {
			return app.New(h, *cfg, app.Options{})
		}, hal.WindowConfig{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			TPS:    cfg.Window.TPS,
			Log:    logger,
		})
	}
	return runHeadless(cmd.Context(), cfg, f.snapshot, logger)
}

func runHeadless(ctx context.Context, cfg *config.Config, snapshot string, logger *log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	return runHeadlessUntil(ctx, cfg, snapshot, logger, sigs)
}

// runHeadlessUntil runs the headless loop next to a watcher that stops it on
// the first signal from sigs. A signal-stopped run is a clean exit.
func runHeadlessUntil(ctx context.Context, cfg *config.Config, snapshot string, logger *log.Logger, sigs <-chan os.Signal) error {
	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	hc := hal.HeadlessConfig{
		Hz:     cfg.Headless.Hz,
		Ticks:  cfg.Headless.Ticks,
		Width:  cfg.Headless.Width,
		Height: cfg.Headless.Height,
		Log:    logger,
	}
	if snapshot != "" {
		hc.Snapshot = func(img *image.RGBA) error { return writePNG(snapshot, img) }
	}

	g.Go(func() error {
		defer cancel()
		return hal.RunHeadless(runCtx, func(h hal.HAL) (hal.App, error) {
			return app.New(h, *cfg, app.Options{ReloadEvery: cfg.Headless.ReloadEvery})
		}, hc)
	})
	g.Go(func() error {
		select {
		case sig := <-sigs:
			logger.WithField("signal", sig.String()).Info("stopping")
			cancel()
		case <-runCtx.Done():
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return nil
	}
	return err
}

func writePNG(path string, img image.Image) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(fh, img); err != nil {
		fh.Close()
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
