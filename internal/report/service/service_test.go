package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
	productservice "github.com/smallbiznis/shiftcount/internal/product/service"
	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopRepo struct{}

func (nopRepo) Load(ctx context.Context) ([]productdomain.RawProduct, error) { return nil, nil }
func (nopRepo) Save(ctx context.Context, products []productdomain.Product) error {
	return nil
}

type fakeDispatcher struct {
	runs   int
	title  string
	report reportdomain.Report
}

func (f *fakeDispatcher) Run(ctx context.Context, title string, report reportdomain.Report) delivery.Outcome {
	f.runs++
	f.title = title
	f.report = report
	return delivery.Outcome{DispatchID: "1"}
}

func newTestService(t *testing.T, products []productdomain.Product) (*Service, *fakeDispatcher) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	store := productservice.New(productservice.Params{Log: zap.NewNop(), GenID: node, Repo: nopRepo{}})
	store.Seed(context.Background(), products)

	dispatcher := &fakeDispatcher{}
	svc := New(Params{
		Log:      zap.NewNop(),
		Products: store,
		Pipeline: dispatcher,
		Shift:    config.NewStaticShiftConfigHolder(config.ShiftConfig{ReportTitle: "Closing Count"}),
	})
	return svc, dispatcher
}

func TestDeliverEmptyInventory(t *testing.T) {
	svc, dispatcher := newTestService(t, nil)

	_, err := svc.Deliver(context.Background())
	assert.ErrorIs(t, err, reportdomain.ErrEmptyInventory)
	assert.Equal(t, 0, dispatcher.runs)

	_, err = svc.CSV(context.Background())
	assert.ErrorIs(t, err, reportdomain.ErrEmptyInventory)
}

func TestDeliverAggregatesSnapshot(t *testing.T) {
	svc, dispatcher := newTestService(t, []productdomain.Product{
		{Name: "Beer", Category: "Beer", Singles: 3, Cases: 2, Pack: 24},
		{Name: "Wine", Category: "Wine", Singles: 1, Pack: 12, Completed: true},
	})

	outcome, err := svc.Deliver(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1", outcome.DispatchID)
	assert.Equal(t, 1, dispatcher.runs)
	assert.Equal(t, "Closing Count", dispatcher.title)
	assert.Equal(t, 52, dispatcher.report.GrandTotal)
}

func TestCSVContainsGrandTotal(t *testing.T) {
	svc, _ := newTestService(t, []productdomain.Product{{Name: "Beer", Category: "Beer", Singles: 3, Cases: 2, Pack: 24}})

	data, err := svc.CSV(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), `"Grand Total","","","","","51"`))
}

func TestTitleFallsBackToDefault(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.shift = config.NewStaticShiftConfigHolder(config.ShiftConfig{})
	assert.Equal(t, "End of Night Inventory Report", svc.Title())
}
