package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shiftcount/internal/clock"
	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	"github.com/smallbiznis/shiftcount/internal/providers/pdf"
	"github.com/smallbiznis/shiftcount/internal/providers/surface"
	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
	"github.com/smallbiznis/shiftcount/internal/report/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type exportedFile struct {
	name        string
	contentType string
	data        []byte
}

type memoryExporter struct {
	mu    sync.Mutex
	files []exportedFile
}

func (e *memoryExporter) Export(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.files = append(e.files, exportedFile{name: filename, contentType: contentType, data: data})
	return filename, nil
}

type memoryPrinter struct {
	titles []string
	docs   []string
}

func (p *memoryPrinter) Print(ctx context.Context, title, html string) (string, error) {
	p.titles = append(p.titles, title)
	p.docs = append(p.docs, html)
	return title, nil
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type memoryMailer struct {
	sent []sentMail
}

func (m *memoryMailer) Send(ctx context.Context, to []string, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func testDispatch() *delivery.Dispatch {
	return &delivery.Dispatch{
		ID:        1,
		Title:     render.DefaultTitle,
		Timestamp: time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC),
		Report: reportdomain.Report{
			Rows:       []reportdomain.Row{{Name: "Beer", Category: "Beer", Singles: 3, Cases: 2, Pack: 24, Total: 51}},
			GrandTotal: 51,
		},
		Message: render.SummaryMessage(render.DefaultTitle, 51, ""),
	}
}

func shiftHolder(sms, emailTo string) *config.ShiftConfigHolder {
	return config.NewStaticShiftConfigHolder(config.ShiftConfig{
		PackSizes: config.DefaultPackSizes,
		SMSNumber: sms,
		EmailTo:   emailTo,
	})
}

func TestUploadPostsPayloadAndReadsLocator(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"url":"https://reports.test/abc"}`))
	}))
	defer srv.Close()

	d := testDispatch()
	err := NewUpload(srv.URL, srv.Client()).Deliver(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "https://reports.test/abc", d.Locator)
	assert.Equal(t, float64(51), got["grandTotal"])
	assert.Equal(t, "2026-10-18T23:30:00Z", got["timestamp"])

	items, ok := got["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, map[string]any{
		"name": "Beer", "singles": float64(3), "cases": float64(2), "pack": float64(24), "total": float64(51),
	}, items[0])
}

func TestUploadToleratesEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := testDispatch()
	require.NoError(t, NewUpload(srv.URL, srv.Client()).Deliver(context.Background(), d))
	assert.Empty(t, d.Locator)
}

func TestUploadFailures(t *testing.T) {
	err := NewUpload("", http.DefaultClient).Deliver(context.Background(), testDispatch())
	assert.ErrorIs(t, err, ErrUploadUnconfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err = NewUpload(srv.URL, srv.Client()).Deliver(context.Background(), testDispatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDocumentPrintsRenderedReport(t *testing.T) {
	printer := &memoryPrinter{}
	err := NewDocument(render.NewHTMLRenderer(), printer).Deliver(context.Background(), testDispatch())
	require.NoError(t, err)

	require.Len(t, printer.docs, 1)
	assert.Equal(t, render.DefaultTitle, printer.titles[0])
	assert.Contains(t, printer.docs[0], "Beer")
	assert.Contains(t, printer.docs[0], "51")
}

func TestPDFExportsNamedFile(t *testing.T) {
	exporter := &memoryExporter{}
	err := NewPDF(pdf.New(), exporter).Deliver(context.Background(), testDispatch())
	require.NoError(t, err)

	require.Len(t, exporter.files, 1)
	assert.Equal(t, "end-of-night-inventory-report-2026-10-18.pdf", exporter.files[0].name)
	assert.Equal(t, "application/pdf", exporter.files[0].contentType)
	assert.True(t, strings.HasPrefix(string(exporter.files[0].data), "%PDF"))
}

func TestPDFRejectsEmptyDocument(t *testing.T) {
	err := NewPDF(&pdf.NoOpProvider{}, &memoryExporter{}).Deliver(context.Background(), testDispatch())
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestCSVExport(t *testing.T) {
	exporter := &memoryExporter{}
	require.NoError(t, NewCSV(exporter).Deliver(context.Background(), testDispatch()))

	require.Len(t, exporter.files, 1)
	assert.Equal(t, "bartending-inventory-report.csv", exporter.files[0].name)
	assert.Contains(t, string(exporter.files[0].data), `"Grand Total"`)
}

func TestMessageChannelsLaunchComposers(t *testing.T) {
	launcher := surface.NewLogLauncher(zap.NewNop())
	shift := shiftHolder("5551234", "boss@bar.test")

	require.NoError(t, NewSMS(shift, launcher).Deliver(context.Background(), testDispatch()))
	require.NoError(t, NewMailto(shift, launcher).Deliver(context.Background(), testDispatch()))

	launched := launcher.Launched()
	require.Len(t, launched, 2)
	assert.True(t, strings.HasPrefix(launched[0], "sms:5551234?body=Inventory%20Summary"))
	assert.True(t, strings.HasPrefix(launched[1], "mailto:boss%40bar.test?subject=End%20of%20Night"))
}

func TestEmailSendsSummary(t *testing.T) {
	mailer := &memoryMailer{}
	shift := shiftHolder("", "a@bar.test, b@bar.test")

	require.NoError(t, NewEmail(shift, mailer).Deliver(context.Background(), testDispatch()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"a@bar.test", "b@bar.test"}, mailer.sent[0].to)
	assert.Equal(t, render.DefaultTitle, mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "<p>Total Units: 51</p>")
}

func TestBuildKeepsConfiguredOrder(t *testing.T) {
	var cfg config.Config
	cfg.Delivery.Channels = []string{"csv", "upload", "sms", "csv"}

	channels, err := Build(Params{
		Config:   cfg,
		Log:      zap.NewNop(),
		Shift:    shiftHolder("", ""),
		Renderer: render.NewHTMLRenderer(),
		Exporter: &memoryExporter{},
		Launcher: surface.NewLogLauncher(zap.NewNop()),
	})
	require.NoError(t, err)

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	assert.Equal(t, []string{"csv", "upload", "sms"}, names)

	cfg.Delivery.Channels = []string{"fax"}
	_, err = Build(Params{Config: cfg, Log: zap.NewNop()})
	assert.Error(t, err)
}

func TestBuildRejectsMessageBeforeUpload(t *testing.T) {
	var cfg config.Config
	cfg.Delivery.Channels = []string{"csv", "sms", "upload"}

	_, err := Build(Params{
		Config:   cfg,
		Log:      zap.NewNop(),
		Shift:    shiftHolder("", ""),
		Exporter: &memoryExporter{},
		Launcher: surface.NewLogLauncher(zap.NewNop()),
	})
	assert.ErrorIs(t, err, ErrMessageBeforeRemote)
}

func TestPipelineUploadFailureFallsBackToLocalMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	printer := &memoryPrinter{}
	launcher := surface.NewLogLauncher(zap.NewNop())
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	var cfg config.Config
	cfg.Delivery.GracePeriod = 1200 * time.Millisecond
	clk := clock.NewFakeClock(time.Now())

	pipeline := delivery.NewPipeline(delivery.Params{
		Config: cfg,
		Log:    zap.NewNop(),
		Clock:  clk,
		GenID:  node,
		Channels: delivery.Channels{
			NewUpload(srv.URL, srv.Client()),
			NewDocument(render.NewHTMLRenderer(), printer),
			NewSMS(shiftHolder("", ""), launcher),
		},
	})

	outcome := pipeline.Run(context.Background(), "", testDispatch().Report)

	require.Len(t, outcome.Attempts, 3)
	assert.Error(t, outcome.Attempts[0].Err)
	assert.True(t, outcome.Attempts[1].Delivered())
	assert.True(t, outcome.Attempts[2].Delivered())
	assert.Len(t, printer.docs, 1)

	launched := launcher.Launched()
	require.Len(t, launched, 1)
	assert.Contains(t, launched[0], render.EncodeComponent("Inventory complete."))
	assert.Equal(t, []time.Duration{1200 * time.Millisecond}, clk.Sleeps())
}
