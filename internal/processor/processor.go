package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/extractor"
	"github.com/MikeSquared-Agency/augur/internal/hermes"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/store"
)

const defaultTimeout = 30 * time.Second

// DecisionStore persists decisions and remembers each owner's last mode.
type DecisionStore interface {
	LatestMode(ctx context.Context, ownerUUID uuid.UUID) (mode.Mode, error)
	WriteDecision(ctx context.Context, d store.Decision) (uuid.UUID, error)
}

// Publisher sends events to the bus.
type Publisher interface {
	Publish(subject string, data any) error
}

// Notifier tells humans about mode changes.
type Notifier interface {
	PostModeChange(ctx context.Context, owner uuid.UUID, entryID string, res engine.Result) (string, error)
}

// Processor turns submitted entries into mode decisions. Store, publisher
// and notifier are optional.
type Processor struct {
	engine     *engine.Engine
	source     extractor.Source
	sourceName string
	store      DecisionStore
	pub        Publisher
	notifier   Notifier
	logger     *slog.Logger
	timeout    time.Duration
	now        func() time.Time
}

// Options configures a Processor. Zero values fall back to rule-based
// signals with no persistence, publishing or notifications.
type Options struct {
	Engine     *engine.Engine
	Source     extractor.Source
	SourceName string
	Store      DecisionStore
	Publisher  Publisher
	Notifier   Notifier
	Timeout    time.Duration
}

func New(opts Options, logger *slog.Logger) *Processor {
	p := &Processor{
		engine:     opts.Engine,
		source:     opts.Source,
		sourceName: opts.SourceName,
		store:      opts.Store,
		pub:        opts.Publisher,
		notifier:   opts.Notifier,
		logger:     logger,
		timeout:    opts.Timeout,
		now:        time.Now,
	}
	if p.engine == nil {
		p.engine = engine.New(nil)
	}
	if p.source == nil {
		p.source = extractor.NewRules(nil)
		p.sourceName = "rules"
	}
	if p.sourceName == "" {
		p.sourceName = "rules"
	}
	if p.timeout <= 0 {
		p.timeout = defaultTimeout
	}
	return p
}

// Outcome is what processing one entry produced.
type Outcome struct {
	DecisionID uuid.UUID
	Result     engine.Result
}

// HandleEntrySubmitted is the NATS handler for augur.entry.submitted.
// Bad events are logged and dropped.
func (p *Processor) HandleEntrySubmitted(subject string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var ev hermes.EntryEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		p.logger.Error("failed to parse entry event", "subject", subject, "error", err)
		return
	}

	if _, err := p.Process(ctx, ev); err != nil {
		p.logger.Error("entry processing failed", "entry_id", ev.EntryID, "error", err)
	}
}

// Process decides a mode for one entry, persists it and publishes the
// decision. Persistence, publish and notify failures are logged, not returned.
func (p *Processor) Process(ctx context.Context, ev hermes.EntryEvent) (Outcome, error) {
	owner, err := ev.Owner()
	if err != nil {
		return Outcome{}, err
	}

	prev := p.previousMode(ctx, owner, ev)

	v, err := p.source.Extract(ctx, ev.Text)
	if err != nil {
		p.logger.Warn("signal source failed, using rules", "entry_id", ev.EntryID, "error", err)
		v = p.engine.Signals(ev.Text)
	}
	res := p.engine.ClassifyWithSignals(ev.Text, v, prev)

	p.logger.Info("mode decided",
		"entry_id", ev.EntryID,
		"owner", owner.String(),
		"mode", res.Mode,
		"previous_mode", res.Previous,
		"changed", res.Changed(),
	)

	out := Outcome{Result: res}
	if p.store != nil {
		id, err := p.store.WriteDecision(ctx, store.Decision{
			OwnerUUID:    owner,
			EntryID:      ev.EntryID,
			Mode:         res.Mode,
			PreviousMode: res.Previous,
			Signals:      res.Signals,
			Boosts:       res.Boosts,
			Scores:       res.Scores,
			SignalSource: p.sourceName,
			WeightsName:  p.engine.Scorer().Weights().Name,
		})
		if err != nil {
			p.logger.Error("failed to persist decision", "entry_id", ev.EntryID, "error", err)
		} else {
			out.DecisionID = id
		}
	}

	if err := p.publish(ev, owner, out); err != nil {
		p.logger.Error("failed to publish decision", "entry_id", ev.EntryID, "error", err)
	}
	if res.Changed() && p.notifier != nil {
		if _, err := p.notifier.PostModeChange(ctx, owner, ev.EntryID, res); err != nil {
			p.logger.Error("failed to post mode change", "entry_id", ev.EntryID, "error", err)
		}
	}
	return out, nil
}

// previousMode prefers the mode carried on the event. An unknown label is
// treated as no previous mode; a missing one is looked up in the store.
func (p *Processor) previousMode(ctx context.Context, owner uuid.UUID, ev hermes.EntryEvent) mode.Mode {
	if ev.PreviousMode != "" {
		prev, ok := ev.Previous()
		if !ok {
			p.logger.Warn("ignoring unknown previous mode", "entry_id", ev.EntryID, "previous_mode", ev.PreviousMode)
		}
		return prev
	}
	if p.store == nil {
		return mode.None
	}
	prev, err := p.store.LatestMode(ctx, owner)
	if err != nil {
		p.logger.Warn("previous mode lookup failed", "owner", owner.String(), "error", err)
		return mode.None
	}
	return prev
}

func (p *Processor) publish(ev hermes.EntryEvent, owner uuid.UUID, out Outcome) error {
	if p.pub == nil {
		return nil
	}
	now := p.now().UTC()
	res := out.Result

	decided := hermes.DecisionEvent{
		EntryID:      ev.EntryID,
		OwnerUUID:    owner.String(),
		Mode:         res.Mode,
		PreviousMode: res.Previous,
		Changed:      res.Changed(),
		Signals:      res.Signals,
		Scores:       res.Scores,
		SignalSource: p.sourceName,
		DecidedAt:    now,
	}
	if out.DecisionID != uuid.Nil {
		decided.DecisionID = out.DecisionID.String()
	}

	var errs []error
	if err := p.pub.Publish(hermes.SubjectModeDecided, decided); err != nil {
		errs = append(errs, fmt.Errorf("publish decided: %w", err))
	}
	if res.Changed() {
		changed := hermes.ModeChangedEvent{
			OwnerUUID: owner.String(),
			EntryID:   ev.EntryID,
			From:      res.Previous,
			To:        res.Mode,
			ChangedAt: now,
		}
		if err := p.pub.Publish(hermes.SubjectModeChanged, changed); err != nil {
			errs = append(errs, fmt.Errorf("publish changed: %w", err))
		}
	}
	return errors.Join(errs...)
}
