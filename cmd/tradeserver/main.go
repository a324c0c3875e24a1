package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/bgb"
	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
	"github.com/Guillem96/pokemon-trade-spoofer/internal/config"
	"github.com/Guillem96/pokemon-trade-spoofer/internal/dex"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        pokemon-trade-spoofer  v0.1.0       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      Generation II BGB link-cable peer     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

// scaffoldRoster is the species offered by the default party factory
// when no richer party source is wired in.
var scaffoldRoster = []byte{1, 4, 7, 25, 133, 152}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("TRADESERVER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfigOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	printSection("dex")
	table, err := loadSpeciesTable(cfg.Dex)
	if err != nil {
		return fmt.Errorf("load species table: %w", err)
	}
	printStat("species", table.Len())
	fmt.Println()

	factory := dex.NewStaticFactory(table, rand.New(rand.NewSource(rand.Int63())))

	partySource := func() (*codec.Party, error) {
		p, err := dex.NewScaffoldParty(factory, table, cfg.Trainer.Name, scaffoldRoster, cfg.Trainer.DefaultLevel, rand.New(rand.NewSource(rand.Int63())))
		if err != nil {
			return nil, err
		}
		return &p, nil
	}

	server, err := bgb.NewServer(cfg.Server.BindAddress, log, cfg.Queue.ControlQueueSize, cfg.Queue.SIOQueueSize, partySource)
	if err != nil {
		return fmt.Errorf("bgb server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ctx) }()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s", server.Addr().String()))
	fmt.Println()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdownCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		select {
		case <-serveErr:
			log.Info("server stopped")
		case <-time.After(cfg.Server.ShutdownWait):
			log.Warn("shutdown wait exceeded, exiting anyway", zap.Duration("wait", cfg.Server.ShutdownWait))
		}
		return nil
	case err := <-serveErr:
		cancel()
		return err
	}
}

func loadConfigOrDefault(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadSpeciesTable(cfg config.DexConfig) (*dex.Table, error) {
	if cfg.DataPath == "" {
		return dex.LoadDefault()
	}
	data, err := os.ReadFile(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	return dex.Load(data)
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
