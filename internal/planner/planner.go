// Package planner runs a complete calculation: it validates the input,
// allocates cuts to reels, applies the clean-reel policy and, when every
// cut was placed, records the cuts in the journal.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/model"
)

// Planner is the single writer of the cut journal.
type Planner struct {
	sink    cutlog.Sink
	now     func() time.Time
	batchID func() string
	log     logrus.FieldLogger
	dryRun  bool
}

// Option configures a Planner.
type Option func(*Planner)

// WithClock overrides the clock used for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithBatchID overrides the batch id generator.
func WithBatchID(gen func() string) Option {
	return func(p *Planner) { p.batchID = gen }
}

// WithLogger sets the logger. The standard logrus logger is used by default.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Planner) { p.log = log }
}

// WithDryRun disables journal writes.
func WithDryRun(dryRun bool) Option {
	return func(p *Planner) { p.dryRun = dryRun }
}

func New(sink cutlog.Sink, opts ...Option) *Planner {
	p := &Planner{
		sink:    sink,
		now:     time.Now,
		batchID: cutlog.NewBatchID,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Outcome is the result of a calculation together with the journal entries
// it produced. Entries is empty unless the run succeeded and was committed.
type Outcome struct {
	Result  model.AllocationResult
	BatchID string
	Entries []model.CutLogEntry
}

// Calculate runs one calculation. Invalid input is returned as an error
// wrapping engine.ErrInvalidInput and nothing is allocated. An infeasible
// plan is not an error: the outcome reports Success=false and the journal
// is left untouched. On success the sink receives every cut in one call.
func (p *Planner) Calculate(ctx context.Context, reels []model.Reel, cuts []model.CutRequest, policy model.Policy) (Outcome, error) {
	result, err := engine.Run(reels, cuts, policy)
	if err != nil {
		return Outcome{}, err
	}

	p.log.WithFields(logrus.Fields{
		"reels":       len(reels),
		"cuts":        len(cuts),
		"placed":      result.PlacedCount(),
		"unallocated": len(result.UnallocatedCuts),
		"policy":      policy.String(),
	}).Debug("allocation finished")

	for _, w := range result.Warnings {
		p.log.Warn(w)
	}

	out := Outcome{Result: result}
	if !result.Success {
		p.log.Infof("%d of %d cuts could not be placed; journal not updated", len(result.UnallocatedCuts), len(cuts))
		return out, nil
	}
	if p.dryRun || p.sink == nil {
		return out, nil
	}

	out.BatchID = p.batchID()
	out.Entries = cutlog.Project(result, out.BatchID, p.now().UTC())
	if err := p.sink.Append(ctx, out.Entries); err != nil {
		return Outcome{Result: result}, fmt.Errorf("failed to record cuts in journal: %w", err)
	}

	p.log.WithField("batch", out.BatchID).Infof("recorded %d cuts on %d reels", len(out.Entries), result.ReelsUsed())
	return out, nil
}
