// Package app wires the simulator together with fx.
package app

import (
	"context"

	"github.com/matheus3301/mockmsg/internal/bus"
	"github.com/matheus3301/mockmsg/internal/config"
	"github.com/matheus3301/mockmsg/internal/gesture"
	"github.com/matheus3301/mockmsg/internal/lock"
	"github.com/matheus3301/mockmsg/internal/logging"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/profile"
	"github.com/matheus3301/mockmsg/internal/receipts"
	"github.com/matheus3301/mockmsg/internal/scenario"
	"github.com/matheus3301/mockmsg/internal/store"
	"github.com/matheus3301/mockmsg/internal/tui"
	"github.com/matheus3301/mockmsg/internal/tui/model"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Binary is the lock owner and log file name of the TUI.
const Binary = "mockmsg"

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	Profile string
	Config  *config.Config
}

// Module returns the fx module for the simulator, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	if p.Config == nil {
		p.Config = config.Default()
	}
	return fx.Options(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Module("mockmsg",
			fx.Supply(p),
			fx.Provide(
				provideLogger,
				provideBus,
				provideLock,
				provideStore,
				provideRepository,
				provideSession,
				provideReceipts,
				provideViewModel,
				provideTUI,
				provideWatcher,
			),
			fx.Invoke(registerLifecycle),
		),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Path:  profile.LogPath(p.Profile, Binary),
		Level: p.Config.LogLevel,
	}, p.Profile)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.Profile); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(profile.Dir(p.Profile), Binary)
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideStore depends on the lock so the database is only opened by the
// instance owning the profile.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.DBPath(p.Profile)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed() {
		logger.Info("migrations applied", zap.Uint("from", result.From), zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideRepository(db *store.DB, logger *zap.Logger) *mock.Repository {
	return mock.NewRepository(db, logger.Named("repo"))
}

func provideSession() *mock.Session {
	return mock.NewSession()
}

func provideReceipts(p Params, s *mock.Session, b *bus.Bus, logger *zap.Logger) *receipts.Progressor {
	r := p.Config.Receipts
	return receipts.NewProgressor(s, b, logger.Named("receipts"), r.DeliveredAfter.Duration, r.ReadAfter.Duration)
}

func provideViewModel(repo *mock.Repository, s *mock.Session, r *receipts.Progressor, b *bus.Bus, logger *zap.Logger) (*model.ViewModel, error) {
	vm := model.NewViewModel(model.Deps{
		Store:    repo,
		Session:  s,
		Receipts: r,
		Bus:      b,
		Logger:   logger.Named("triggers"),
	})
	if err := vm.Load(); err != nil {
		return nil, err
	}
	return vm, nil
}

func provideTUI(p Params, vm *model.ViewModel, logger *zap.Logger) *tui.App {
	g := p.Config.Gesture
	return tui.NewApp(vm, logger.Named("tui"), tui.Options{
		Gesture: gesture.NewTapDetector(g.Taps, g.Window.Duration),
	})
}

// provideWatcher returns nil when no scenario file is configured.
func provideWatcher(p Params, repo *mock.Repository, b *bus.Bus, ui *tui.App, logger *zap.Logger) *scenario.Watcher {
	if p.Config.ScenarioFile == "" {
		return nil
	}
	return scenario.NewWatcher(p.Config.ScenarioFile, repo, b, logger.Named("scenario"), ui.Reload)
}

func registerLifecycle(lc fx.Lifecycle, lk *lock.Lock, db *store.DB, r *receipts.Progressor, vm *model.ViewModel, w *scenario.Watcher, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r.Start(context.Background())
			if w != nil {
				if _, err := w.Apply(); err != nil {
					logger.Warn("initial scenario load failed", zap.Error(err))
				}
				if err := w.Start(context.Background()); err != nil {
					logger.Error("scenario watch failed", zap.Error(err))
				}
			}
			logger.Info("mockmsg started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			if w != nil {
				w.Stop()
			}
			r.Stop()
			vm.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("mockmsg stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
