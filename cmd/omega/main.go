package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mousecraft/omega/internal/component"
	"github.com/mousecraft/omega/internal/config"
	"github.com/mousecraft/omega/internal/core/event"
	"github.com/mousecraft/omega/internal/engine"
	"github.com/mousecraft/omega/internal/prefab"
	"github.com/mousecraft/omega/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(sceneName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              Omega  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscene:\033[0m %s\n\n", sceneName)
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg := config.Defaults()
	cfgPath := "config/omega.toml"
	if p := os.Getenv("OMEGA_CONFIG"); p != "" {
		cfgPath = p
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if cfg, err = config.Load(cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch cfg.Debug.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Debug.ProfileDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Debug.ProfileDir), profile.NoShutdownHook).Stop()
	}

	printBanner(cfg.Scene.Name)

	// 3. Engine, component pools, systems
	eng := engine.New(cfg.Engine, log)
	builtins, err := component.Register(eng.Components())
	if err != nil {
		return err
	}
	if err := eng.AddSystem(system.NewUpdatableSystem(eng.Components())); err != nil {
		return err
	}
	if err := eng.AddSystem(system.NewLifetimeSystem(builtins.Lifetimes, log.Named("lifetime"))); err != nil {
		return err
	}
	if err := eng.AddSystem(system.NewStatsSystem(eng.Entities(), eng.Components(), log.Named("stats"))); err != nil {
		return err
	}
	event.Subscribe(eng.Bus(), func(ev event.EntityDestroyed) {
		log.Debug("entity destroyed", zap.Stringer("id", ev.EntityID), zap.String("name", ev.Name))
	})

	// 4. Build the scene while it is still inactive, then activate it
	scene := eng.NewScene(cfg.Scene.Name)
	if cfg.Scene.Prefab != "" {
		doc, err := prefab.Load(cfg.Scene.Prefab)
		if err != nil {
			return fmt.Errorf("load scene prefab: %w", err)
		}
		tree, err := doc.Instantiate(eng.Entities(), eng.Components())
		if err != nil {
			return fmt.Errorf("instantiate scene prefab: %w", err)
		}
		if err := scene.Root().AddChild(tree); err != nil {
			return fmt.Errorf("attach scene prefab: %w", err)
		}
	}
	printStat("entities", eng.Entities().Len())
	for _, t := range eng.Components().Types() {
		printStat(eng.Components().Name(t), eng.Components().Count(t))
	}

	if err := eng.ChangeScene(scene); err != nil {
		return err
	}

	// 5. Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printReady(fmt.Sprintf("game loop (tick: %s, frame: %s)", cfg.Engine.TickRate, cfg.Engine.FrameRate))
	fmt.Println()

	if err := eng.Run(ctx); err != nil {
		return err
	}
	return eng.Shutdown()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
