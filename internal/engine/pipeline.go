package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fabmap/internal/application"
	"fabmap/internal/application/commands"
	"fabmap/internal/domain"
	"fabmap/internal/logger"
	"fabmap/internal/metrics"
	"fabmap/internal/ports"
)

// Op names a pipeline operation
type Op string

const (
	OpCreatePin     Op = "create_pin"
	OpUpdatePin     Op = "update_pin"
	OpAddFabricator Op = "add_fabricator"
	OpReload        Op = "reload"
)

// Outcome is what a pipeline call hands back to the event loop.
// Committed is set once the backend accepted a mutation. When Reloaded is
// set, Pins is the full newest-first list to install.
type Outcome struct {
	Op        Op
	PinID     string
	Pins      []domain.Pin
	Committed bool
	Reloaded  bool
	Message   string
}

// Pipeline issues mutations to the backend and re-fetches every pin after each one.
// It never touches engine state; the caller applies the Outcome.
type Pipeline struct {
	repo    ports.PinRepository
	session ports.Session
	log     *slog.Logger
}

// NewPipeline creates a Pipeline. A nil log uses the process logger.
func NewPipeline(repo ports.PinRepository, session ports.Session, log *slog.Logger) *Pipeline {
	if log == nil {
		log = logger.L()
	}
	return &Pipeline{repo: repo, session: session, log: log}
}

// CreatePin places a "New Pin" at lat/lng once the user has confirmed it
func (p *Pipeline) CreatePin(ctx context.Context, lat, lng float64, confirmed bool) (Outcome, error) {
	res, err := commands.NewCreatePinCommand(p.repo, p.session, lat, lng, confirmed).Execute(ctx)
	if err != nil {
		return p.fail(OpCreatePin, "", err)
	}
	p.succeed(OpCreatePin, res.Pin.ID)
	return p.finish(ctx, Outcome{Op: OpCreatePin, PinID: res.Pin.ID, Committed: true, Message: res.Message})
}

// UpdatePin saves title and description. An empty title is sent as is.
func (p *Pipeline) UpdatePin(ctx context.Context, pinID, title, description string) (Outcome, error) {
	res, err := commands.NewUpdatePinCommand(p.repo, pinID, title, description).Execute(ctx)
	if err != nil {
		return p.fail(OpUpdatePin, pinID, err)
	}
	p.succeed(OpUpdatePin, pinID)
	return p.finish(ctx, Outcome{Op: OpUpdatePin, PinID: pinID, Committed: true, Message: res.Message})
}

// AddFabricator attaches the draft to the pin. Missing name or address
// fails validation without a backend call.
func (p *Pipeline) AddFabricator(ctx context.Context, pinID string, draft FabricatorDraft) (Outcome, error) {
	res, err := commands.NewAddFabricatorCommand(p.repo, pinID, draft.Name, draft.Address, draft.Phone).Execute(ctx)
	if err != nil {
		return p.fail(OpAddFabricator, pinID, err)
	}
	p.succeed(OpAddFabricator, pinID)
	return p.finish(ctx, Outcome{Op: OpAddFabricator, PinID: pinID, Committed: true, Message: res.Message})
}

// Reload fetches the full pin list
func (p *Pipeline) Reload(ctx context.Context) (Outcome, error) {
	return p.finish(ctx, Outcome{Op: OpReload})
}

// finish reloads after a committed mutation. If only the reload fails the
// Outcome is still returned so the caller can drop the stale buffer.
func (p *Pipeline) finish(ctx context.Context, out Outcome) (Outcome, error) {
	start := time.Now()
	pins, err := commands.NewListPinsCommand(p.repo).Execute(ctx)
	metrics.ReloadsTotal.Inc()
	metrics.ReloadDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		p.log.Warn("reload_failed", "op", out.Op, "pin_id", out.PinID, "err", err)
		return out, err
	}
	out.Pins = pins
	out.Reloaded = true
	p.log.Debug("reload_ok", "op", out.Op, "pins", len(pins), "ms", time.Since(start).Milliseconds())
	return out, nil
}

func (p *Pipeline) succeed(op Op, pinID string) {
	metrics.MutationsTotal.WithLabelValues(string(op), metrics.OutcomeSuccess).Inc()
	p.log.Info("mutation_ok", "op", op, "pin_id", pinID)
}

func (p *Pipeline) fail(op Op, pinID string, err error) (Outcome, error) {
	var valErr *application.ValidationError
	var netErr *application.NetworkError
	switch {
	case errors.As(err, &valErr):
		metrics.MutationsTotal.WithLabelValues(string(op), metrics.OutcomeInvalid).Inc()
		p.log.Debug("mutation_invalid", "op", op, "pin_id", pinID, "field", valErr.Field)
	case application.IsPrecondition(err):
		metrics.MutationsTotal.WithLabelValues(string(op), metrics.OutcomeRejected).Inc()
		p.log.Debug("mutation_rejected", "op", op, "pin_id", pinID, "err", err)
	case errors.As(err, &netErr):
		metrics.MutationsTotal.WithLabelValues(string(op), metrics.OutcomeFailure).Inc()
		p.log.Error("mutation_failed", "op", op, "pin_id", pinID, "err", netErr.Err)
	default:
		metrics.MutationsTotal.WithLabelValues(string(op), metrics.OutcomeFailure).Inc()
		p.log.Error("mutation_failed", "op", op, "pin_id", pinID, "err", err)
	}
	return Outcome{Op: op, PinID: pinID}, err
}
