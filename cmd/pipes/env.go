package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pipes/internal/config"
	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/platform/tui"
	"github.com/vovakirdan/tui-pipes/internal/progress"
	redistracker "github.com/vovakirdan/tui-pipes/internal/progress/redis"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// env holds what every command needs: config, logger, store and catalog.
type env struct {
	cfg     config.Config
	logger  *log.Logger
	store   *storage.Store
	catalog *levels.Catalog
	theme   tui.Theme

	redis *redistracker.Tracker

	memMu sync.Mutex
	mem   map[string]*progress.Memory
}

// setup loads config, applies flag overrides and opens the store.
// The store is required: stages, progress and records all live there.
func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagTheme != "" {
		cfg.UI.Theme = flagTheme
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level))

	theme, ok := tui.ThemeByName(cfg.UI.Theme)
	if !ok {
		logger.Warn("unknown theme, using classic", "theme", cfg.UI.Theme, "available", tui.ThemeNames())
	}

	store, err := storage.Open(config.ExpandHome(cfg.Storage.Path))
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		logger: logger,
		store:  store,
		theme:  theme,
		mem:    make(map[string]*progress.Memory),
	}

	if cfg.Progress.Backend == config.BackendRedis {
		rc := cfg.Progress.Redis
		e.redis = redistracker.New(rc.Addr, rc.Password, rc.DB,
			redistracker.WithPrefix(rc.Prefix),
			redistracker.WithTTL(rc.TTL()),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := e.redis.Ping(pingCtx); err != nil {
			e.close()
			return nil, fmt.Errorf("redis progress backend: %w", err)
		}
	}

	if err := e.reloadCatalog(ctx); err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}

func (e *env) reloadCatalog(ctx context.Context) error {
	opts := levels.CatalogOptions{
		SkipBuiltin: e.cfg.Levels.SkipBuiltin,
		Dir:         config.ExpandHome(e.cfg.Levels.Dir),
		Logger:      e.logger,
	}
	if e.cfg.Levels.IncludeDB {
		opts.Store = e.store
	}
	catalog, err := levels.BuildCatalog(ctx, opts)
	if err != nil {
		return err
	}
	e.catalog = catalog
	return nil
}

// tracker returns the configured progress tracker for a player.
func (e *env) tracker(player string) progress.Tracker {
	switch e.cfg.Progress.Backend {
	case config.BackendRedis:
		return e.redis.ForPlayer(player)
	case config.BackendMemory:
		e.memMu.Lock()
		defer e.memMu.Unlock()
		m, ok := e.mem[player]
		if !ok {
			m = progress.NewMemory()
			e.mem[player] = m
		}
		return m
	default:
		return e.store.Tracker(player)
	}
}

// appDeps builds the TUI dependencies for the local player.
func (e *env) appDeps(player string) tui.AppDeps {
	return tui.AppDeps{
		Catalog:     e.catalog,
		Tracker:     e.tracker(player),
		Recorder:    e.store,
		Records:     e.store,
		Theme:       e.theme,
		Logger:      e.logger,
		Player:      player,
		ClearBanner: e.cfg.UI.ClearBanner(),
	}
}

// runtimeConfig sizes the game to the current terminal.
func (e *env) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: e.cfg.UI.TickRate,
	}
}

func (e *env) close() {
	var errs []error
	if e.redis != nil {
		errs = append(errs, e.redis.Close())
	}
	if e.store != nil {
		errs = append(errs, e.store.Close())
	}
	if err := errors.Join(errs...); err != nil {
		e.logger.Warn("close", "err", err)
	}
}

// localPlayer names the player for local play.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
