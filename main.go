package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	engineinput "lightstation/pkg/engine/input"
	"lightstation/pkg/engine/logging"
	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/game/audio"
	"lightstation/pkg/game/config"
	"lightstation/pkg/game/devtools"
	"lightstation/pkg/game/gameplay"
	"lightstation/pkg/game/generator"
	"lightstation/pkg/game/renderer"
	ebitenrenderer "lightstation/pkg/game/renderer/ebiten"
	"lightstation/pkg/game/renderer/tui"
	"lightstation/pkg/game/setup"
	"lightstation/pkg/game/state"
	"lightstation/pkg/net/replication"
	"lightstation/pkg/persistence/journal"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	mode := flag.String("mode", "", "local, server or client (overrides the config)")
	gui := flag.Bool("gui", false, "use the graphical renderer instead of the terminal")
	addr := flag.String("addr", "", "listen address (server) or websocket URL (client)")
	seed := flag.Int64("seed", 0, "layout seed when no layout is configured (0 picks one)")
	dump := flag.String("dump", "", "write a station dump to this file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *mode, *gui, *addr, *seed)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, *dump == "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *dump != "" {
		if err := dumpStation(cfg, *dump, logger); err != nil {
			logger.Error("dump failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("station stopped", zap.Error(err))
		os.Exit(1)
	}
}

// newLogger logs to the configured file while the terminal renderer runs,
// otherwise to stderr
func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	if interactive && !cfg.GUI && cfg.Log.File != "" {
		return logging.NewFileLogger(cfg.Log.Level, cfg.Log.File, "lightstation")
	}
	return logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "lightstation")
}

// applyFlags lets command line flags override the config file
func applyFlags(cfg *config.Config, mode string, gui bool, addr string, seed int64) {
	if mode != "" {
		cfg.Mode = mode
	}
	if gui {
		cfg.GUI = true
	}
	if addr != "" {
		if cfg.Mode == config.ModeClient {
			cfg.Net.ServerURL = addr
		} else {
			cfg.Net.Listen = addr
		}
	}
	if seed != 0 {
		cfg.Station.Seed = seed
	}
}

// stationLayout returns the configured layout or generates one
func stationLayout(cfg config.Config, logger *zap.Logger) string {
	if cfg.Station.Layout != "" {
		return cfg.Station.Layout
	}
	seed := cfg.Station.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("generating station", zap.Int64("seed", seed),
		zap.Int("rows", cfg.Station.Rows), zap.Int("cols", cfg.Station.Cols))
	return generator.NewBSP(seed).Generate(cfg.Station.Rows, cfg.Station.Cols)
}

// dumpStation loads the station, starts its switches and writes the dump
func dumpStation(cfg config.Config, path string, logger *zap.Logger) error {
	g, err := setup.LoadStation(stationLayout(cfg, logger), setup.OptionsFromConfig(cfg), scheduler.New(scheduler.RealClock{}))
	if err != nil {
		return fmt.Errorf("load station: %w", err)
	}
	g.Switches.StartAll()
	gameplay.Tick(g)
	abs, err := devtools.DumpToFile(g, path)
	if err != nil {
		return err
	}
	logger.Info("station dumped", zap.String("path", abs))
	return nil
}

func run(cfg config.Config, logger *zap.Logger) error {
	gotext.Configure(cfg.LocalesPath, cfg.Locale, "default")
	if err := engineinput.ApplyKeyBindings(cfg.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sched := scheduler.New(scheduler.RealClock{})
	g, err := setup.LoadStation(stationLayout(cfg, logger), setup.OptionsFromConfig(cfg), sched)
	if err != nil {
		return fmt.Errorf("load station: %w", err)
	}
	logger.Info("station loaded",
		zap.String("mode", cfg.Mode),
		zap.Int("switches", g.Switches.Len()),
		zap.Int("apcs", len(g.APCs)),
		zap.Int("rooms", g.Rooms))

	if cfg.Journal.Path != "" {
		j, err := openJournal(ctx, cfg, g, logger)
		if err != nil {
			return err
		}
		defer j.Close()
	}

	clicker := audio.NewClicker()
	if cfg.Audio {
		if err := clicker.Initialize(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		}
		defer clicker.Cleanup()
	}

	switch cfg.Mode {
	case config.ModeServer:
		hub := replication.NewHub(g.Switches, sched, logger.Named("hub"))
		g.Switches.AddListener(hub)
		srv := serve(cfg.Net.Listen, hub, logger)
		defer shutdown(srv, logger)
		g.Switches.StartAll()
	case config.ModeClient:
		client, err := replication.Dial(ctx, cfg.Net.ServerURL, g.Switches, sched, logger.Named("client"))
		if err != nil {
			return err
		}
		defer client.Close()
		g.Replica = true
		g.Switches.SetRequester(client)
		g.Switches.StartClientAll()
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("lost connection to server", zap.Error(err))
			}
			cancel()
		}()
	default:
		g.Switches.StartAll()
	}
	defer g.Switches.StopAll()

	sched.Every(cfg.Station.Tick, func() { gameplay.Tick(g) })
	gameplay.Tick(g)

	if cfg.GUI {
		return runGUI(g, sched, clicker, logger)
	}
	return runTUI(ctx, g, sched, clicker, cfg.Station.Tick, logger)
}

// openJournal restores saved switch states and records every change from now on
func openJournal(ctx context.Context, cfg config.Config, g *state.Game, logger *zap.Logger) (*journal.Journal, error) {
	j, err := journal.Open(cfg.Journal.Path, logger.Named("journal"))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// The server owns client state, so a client only records.
	if cfg.Mode != config.ModeClient {
		states, err := j.LastStates(ctx)
		if err != nil {
			j.Close()
			return nil, fmt.Errorf("read journal: %w", err)
		}
		if n := g.Switches.Restore(states); n > 0 {
			logger.Info("restored switch states", zap.Int("count", n))
		}
	}
	g.Switches.AddListener(j)
	return j, nil
}

// serve starts the replication endpoint in the background
func serve(listen string, hub *replication.Hub, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub.Handler())
	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("replication listening", zap.String("addr", listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("replication server failed", zap.Error(err))
		}
	}()
	return srv
}

func shutdown(srv *http.Server, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("replication shutdown", zap.Error(err))
	}
}

// runTUI runs the scheduler on this goroutine. Keys are read on another
// goroutine and handed over with Post.
func runTUI(ctx context.Context, g *state.Game, sched *scheduler.Scheduler, clicker *audio.Clicker, tick time.Duration, logger *zap.Logger) error {
	t := tui.New()
	if err := t.Init(); err != nil {
		return err
	}
	g.Switches.SetPresenter(renderer.Fanout{t, clicker})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			intent, err := t.GetInput()
			if err != nil {
				logger.Error("read input", zap.Error(err))
				sched.Post(cancel)
				return
			}
			sched.Post(func() {
				gameplay.ProcessIntent(g, intent)
				if g.Quit {
					cancel()
					return
				}
				t.RenderFrame(g)
			})
		}
	}()

	sched.Every(tick, func() {
		if t.TakeDirty() {
			t.RenderFrame(g)
		}
	})
	t.RenderFrame(g)

	err := sched.Run(ctx, tick/2)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runGUI hands the main goroutine to Ebiten, which ticks the scheduler from Update
func runGUI(g *state.Game, sched *scheduler.Scheduler, clicker *audio.Clicker, logger *zap.Logger) error {
	e := ebitenrenderer.New(g, sched, func(intent engineinput.Intent) {
		gameplay.ProcessIntent(g, intent)
	}, logger.Named("ebiten"))
	if err := e.Init(); err != nil {
		return err
	}
	g.Switches.SetPresenter(renderer.Fanout{e, clicker})
	return e.Run()
}
