package cli

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/SolBenven/proyecto-final-prog-av/internal/analytics"
	"github.com/SolBenven/proyecto-final-prog-av/internal/claims"
	"github.com/SolBenven/proyecto-final-prog-av/internal/classify"
	"github.com/SolBenven/proyecto-final-prog-av/internal/images"
	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/similarity"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
	"github.com/SolBenven/proyecto-final-prog-av/internal/users"
	"github.com/SolBenven/proyecto-final-prog-av/internal/worker"
)

// app bundles the wired services behind every subcommand. Each command
// opens the app, runs, and closes it; the embedded database allows one
// process at a time.
type app struct {
	cfg       *model.Config
	store     *store.Store
	directory *store.Directory
	users     *users.Service
	claims    *claims.Service
	reporter  *analytics.Reporter
	images    *images.Store
	logger    *slog.Logger
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	storeCfg := store.DefaultConfig(cfg.DataDir)
	if cfg.Verbose {
		storeCfg.Logger = logger
	}
	st, err := store.Open(storeCfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	directory := store.NewDirectory(st)

	provider, err := classify.NewProvider(classify.ConfigFromModel(cfg.Classifier))
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	var limiter *worker.Limiter
	if cfg.Classifier.RequestsPerSecond > 0 {
		limiter = worker.NewLimiter(cfg.Classifier.RequestsPerSecond, cfg.Classifier.Burst)
		// The keyword provider runs in-process; only remote providers
		// have a quota to protect.
		limiter.SetRate("keyword", math.MaxFloat64, 1)
	}
	router := classify.NewRouter(provider, directory, limiter, logger)
	finder := similarity.NewFinder(cfg.Similarity)

	imgStore, err := images.NewStore(cfg.UploadsDir)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		store:     st,
		directory: directory,
		users:     users.NewService(st, logger),
		claims:    claims.NewService(st, directory, router, finder, nil, logger),
		reporter:  analytics.NewReporter(st),
		images:    imgStore,
		logger:    logger,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}

// userByUsername resolves a --user/--admin flag value.
func (a *app) userByUsername(username string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: falta el nombre de usuario", model.ErrValidation)
	}
	return a.store.UserByUsername(username)
}

// departmentByName resolves a department flag by internal name, then
// by id as a fallback.
func (a *app) departmentByName(name string) (*model.Department, error) {
	if dep, err := a.directory.ByName(name); err == nil {
		return dep, nil
	}
	return a.directory.ByID(name)
}

// adminByUsername resolves a --admin flag and checks the account is
// administrative.
func (a *app) adminByUsername(username string) (*model.User, error) {
	u, err := a.userByUsername(username)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, fmt.Errorf("%w: %s no es un usuario administrador", model.ErrPermissionDenied, username)
	}
	return u, nil
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
