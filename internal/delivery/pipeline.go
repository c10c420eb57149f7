// Package delivery dispatches a finished report to an ordered set of
// channels. One channel failing never stops the others.
package delivery

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shiftcount/internal/clock"
	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/observability/metrics"
	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
	"github.com/smallbiznis/shiftcount/internal/report/render"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Kind string

const (
	KindRemote   Kind = "remote"
	KindDocument Kind = "document"
	KindExport   Kind = "export"
	KindMessage  Kind = "message"
)

// Channel is one way of getting the report off the device.
type Channel interface {
	Name() string
	Kind() Kind
	Deliver(ctx context.Context, d *Dispatch) error
}

// Channels is the ordered channel list a pipeline runs.
type Channels []Channel

// Dispatch carries one delivery run through the channels. Remote channels
// may set Locator; Message is composed before the first message channel.
type Dispatch struct {
	ID        snowflake.ID
	Title     string
	Report    reportdomain.Report
	Timestamp time.Time
	Locator   string
	Message   render.Message
}

type Attempt struct {
	Channel  string        `json:"channel"`
	Kind     Kind          `json:"kind"`
	Skipped  bool          `json:"skipped,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

func (a Attempt) Delivered() bool {
	return !a.Skipped && a.Err == nil
}

type Outcome struct {
	DispatchID string         `json:"dispatch_id"`
	Locator    string         `json:"locator,omitempty"`
	Message    render.Message `json:"message"`
	Attempts   []Attempt      `json:"attempts"`
}

// Failed lists the attempts that ran and returned an error.
func (o Outcome) Failed() []Attempt {
	var out []Attempt
	for _, a := range o.Attempts {
		if a.Err != nil {
			out = append(out, a)
		}
	}
	return out
}

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Clock    clock.Clock
	GenID    *snowflake.Node
	Channels Channels
	Metrics  *metrics.Metrics `optional:"true"`
}

type Pipeline struct {
	channels Channels
	grace    time.Duration
	clock    clock.Clock
	genID    *snowflake.Node
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewPipeline(p Params) *Pipeline {
	return &Pipeline{
		channels: p.Channels,
		grace:    p.Config.Delivery.GracePeriod,
		clock:    p.Clock,
		genID:    p.GenID,
		log:      p.Log.Named("delivery.pipeline"),
		metrics:  p.Metrics,
	}
}

var Module = fx.Module("delivery",
	fx.Provide(NewPipeline),
)

// Run hands report to every channel in order. Channel errors are recorded in
// the outcome and logged, never returned. The grace period is waited out
// before the first message channel; if ctx ends, the rest are skipped.
func (p *Pipeline) Run(ctx context.Context, title string, report reportdomain.Report) Outcome {
	d := &Dispatch{
		ID:        p.genID.Generate(),
		Title:     render.TitleOrDefault(title),
		Report:    report,
		Timestamp: p.clock.Now(),
	}
	log := p.log.With(zap.String("dispatch_id", d.ID.String()))

	outcome := Outcome{
		DispatchID: d.ID.String(),
		Attempts:   make([]Attempt, 0, len(p.channels)),
	}

	composed := false
	for i, ch := range p.channels {
		if ch.Kind() == KindMessage && !composed {
			composed = true
			d.Message = render.SummaryMessage(d.Title, report.GrandTotal, d.Locator)
			if err := p.clock.Sleep(ctx, p.grace); err != nil {
				log.Warn("delivery interrupted during grace period", zap.Error(err))
				outcome.Attempts = append(outcome.Attempts, p.skip(p.channels[i:])...)
				break
			}
		}
		if err := ctx.Err(); err != nil {
			log.Warn("delivery interrupted", zap.Error(err))
			outcome.Attempts = append(outcome.Attempts, p.skip(p.channels[i:])...)
			break
		}

		outcome.Attempts = append(outcome.Attempts, p.attempt(ctx, log, ch, d))
	}

	if !composed {
		d.Message = render.SummaryMessage(d.Title, report.GrandTotal, d.Locator)
	}
	outcome.Locator = d.Locator
	outcome.Message = d.Message
	return outcome
}

func (p *Pipeline) attempt(ctx context.Context, log *zap.Logger, ch Channel, d *Dispatch) Attempt {
	start := p.clock.Now()
	err := ch.Deliver(ctx, d)
	elapsed := p.clock.Now().Sub(start)

	a := Attempt{Channel: ch.Name(), Kind: ch.Kind(), Duration: elapsed, Err: err}
	fields := []zap.Field{
		zap.String("channel", ch.Name()),
		zap.String("kind", string(ch.Kind())),
		zap.Duration("duration", elapsed),
	}
	if err != nil {
		a.Error = err.Error()
		p.metrics.RecordDelivery(ch.Name(), metrics.OutcomeFailed, elapsed.Seconds())
		log.Warn("delivery channel failed", append(fields, zap.Error(err))...)
		return a
	}

	p.metrics.RecordDelivery(ch.Name(), metrics.OutcomeDelivered, elapsed.Seconds())
	log.Info("delivery channel done", fields...)
	return a
}

func (p *Pipeline) skip(channels Channels) []Attempt {
	out := make([]Attempt, 0, len(channels))
	for _, ch := range channels {
		p.metrics.RecordDelivery(ch.Name(), metrics.OutcomeSkipped, 0)
		out = append(out, Attempt{Channel: ch.Name(), Kind: ch.Kind(), Skipped: true})
	}
	return out
}
