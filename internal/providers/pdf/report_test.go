package pdf

import (
	"context"
	"io"
	"testing"
	"time"

	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
	"github.com/smallbiznis/shiftcount/internal/report/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReportProducesPDF(t *testing.T) {
	provider := New()

	r, err := provider.GenerateReport(context.Background(), render.RenderInput{
		GeneratedAt: time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC),
		Report: reportdomain.Report{
			Rows:       []reportdomain.Row{{Name: "Beer", Singles: 3, Cases: 2, Pack: 24, Total: 51}},
			GrandTotal: 51,
		},
	})
	require.NoError(t, err)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, len(body) > 4)
	assert.Equal(t, "%PDF", string(body[:4]))
}

func TestGenerateReportHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().GenerateReport(ctx, render.RenderInput{})
	assert.ErrorIs(t, err, context.Canceled)
}
