package service

import (
	"context"

	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
	"github.com/smallbiznis/shiftcount/internal/report/render"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Dispatcher runs a finished report through the delivery channels.
type Dispatcher interface {
	Run(ctx context.Context, title string, report reportdomain.Report) delivery.Outcome
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Products productdomain.Service
	Pipeline Dispatcher
	Shift    *config.ShiftConfigHolder
}

// Service builds reports from the current inventory snapshot.
type Service struct {
	log      *zap.Logger
	products productdomain.Service
	pipeline Dispatcher
	shift    *config.ShiftConfigHolder
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("report.service"),
		products: p.Products,
		pipeline: p.Pipeline,
		shift:    p.Shift,
	}
}

var Module = fx.Module("report",
	fx.Provide(
		func(p *delivery.Pipeline) Dispatcher { return p },
		New,
	),
)

func (s *Service) Preview(ctx context.Context) (reportdomain.Report, error) {
	return reportdomain.Aggregate(s.products.Snapshot(ctx))
}

func (s *Service) CSV(ctx context.Context) ([]byte, error) {
	report, err := s.Preview(ctx)
	if err != nil {
		return nil, err
	}
	return render.BuildCSV(report), nil
}

// Deliver aggregates the inventory and sends it out. Only an empty
// inventory is an error; channel failures are reported in the outcome.
func (s *Service) Deliver(ctx context.Context) (delivery.Outcome, error) {
	report, err := s.Preview(ctx)
	if err != nil {
		return delivery.Outcome{}, err
	}

	outcome := s.pipeline.Run(ctx, s.Title(), report)
	s.log.Info("report delivered",
		zap.String("dispatch_id", outcome.DispatchID),
		zap.Int("grand_total", report.GrandTotal),
		zap.Int("failed_channels", len(outcome.Failed())),
	)
	return outcome, nil
}

func (s *Service) Title() string {
	return render.TitleOrDefault(s.shift.Get().ReportTitle)
}
