package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
	"github.com/SolBenven/proyecto-final-prog-av/internal/worker"
)

// Router resolves the owning department for a new claim. An explicit
// department id bypasses classification entirely (bulk/seed loading);
// otherwise the provider classifies the text and the label table picks
// the department. Every classification failure degrades silently to the
// central-authority department; only the absence of that fallback is an
// error, because then the claim cannot be routed at all.
type Router struct {
	provider  Provider
	directory *store.Directory
	limiter   *worker.Limiter
	logger    *slog.Logger
}

// NewRouter creates a classification router. provider may be nil
// (classification disabled) and limiter may be nil (no rate limiting).
func NewRouter(provider Provider, directory *store.Directory, limiter *worker.Limiter, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Router{
		provider:  provider,
		directory: directory,
		limiter:   limiter,
		logger:    logger,
	}
}

// Resolve returns the department id for the claim text. When
// explicitID is non-empty it is validated and returned unchanged.
func (r *Router) Resolve(ctx context.Context, detail, explicitID string) (string, error) {
	if explicitID != "" {
		if _, err := r.directory.ByID(explicitID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return "", fmt.Errorf("%w: departamento no válido", model.ErrValidation)
			}
			return "", err
		}
		return explicitID, nil
	}

	if id, ok := r.classify(ctx, detail); ok {
		return id, nil
	}

	fallback, err := r.directory.CentralAuthority()
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("%w: no se encontró la secretaría técnica", model.ErrRoutingUnavailable)
		}
		return "", err
	}
	return fallback.ID, nil
}

// classify runs the provider and maps its label to a department id.
// All failures are recovered here; they must never surface to the
// caller as anything but the fallback path.
func (r *Router) classify(ctx context.Context, detail string) (string, bool) {
	if r.provider == nil {
		return "", false
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.provider.Name()); err != nil {
			r.logger.Debug("classifier rate limit wait aborted", "error", err)
			return "", false
		}
	}

	label, err := r.provider.Classify(ctx, detail)
	if err != nil {
		r.logger.Debug("classification failed, using fallback", "provider", r.provider.Name(), "error", err)
		return "", false
	}

	name, ok := DepartmentNameForLabel(label)
	if !ok {
		r.logger.Debug("classifier produced unmapped label", "label", label)
		return "", false
	}

	dep, err := r.directory.ByName(name)
	if err != nil {
		r.logger.Debug("classified department missing", "name", name, "error", err)
		return "", false
	}
	return dep.ID, true
}
