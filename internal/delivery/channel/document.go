package channel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	"github.com/smallbiznis/shiftcount/internal/providers/pdf"
	"github.com/smallbiznis/shiftcount/internal/providers/surface"
	"github.com/smallbiznis/shiftcount/internal/report/render"
)

var ErrEmptyDocument = errors.New("empty_document")

// Document renders the printable HTML report and hands it to the printer.
type Document struct {
	renderer *render.HTMLRenderer
	printer  surface.Printer
}

func NewDocument(renderer *render.HTMLRenderer, printer surface.Printer) *Document {
	return &Document{renderer: renderer, printer: printer}
}

func (c *Document) Name() string        { return NameDocument }
func (c *Document) Kind() delivery.Kind { return delivery.KindDocument }

func (c *Document) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	html, err := c.renderer.RenderHTML(renderInput(d))
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	_, err = c.printer.Print(ctx, d.Title, html)
	return err
}

// PDF exports the report as a PDF named after the title and date.
type PDF struct {
	provider pdf.Provider
	exporter surface.Exporter
}

func NewPDF(provider pdf.Provider, exporter surface.Exporter) *PDF {
	return &PDF{provider: provider, exporter: exporter}
}

func (c *PDF) Name() string        { return NamePDF }
func (c *PDF) Kind() delivery.Kind { return delivery.KindDocument }

func (c *PDF) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	r, err := c.provider.GenerateReport(ctx, renderInput(d))
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	if r == nil {
		return ErrEmptyDocument
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}
	_, err = c.exporter.Export(ctx, PDFFilename(d), "application/pdf", buf.Bytes())
	return err
}

func PDFFilename(d *delivery.Dispatch) string {
	return fmt.Sprintf("%s-%s.pdf", slug.Make(render.TitleOrDefault(d.Title)), d.Timestamp.Format("2006-01-02"))
}

// CSV exports the spreadsheet version of the report.
type CSV struct {
	exporter surface.Exporter
}

func NewCSV(exporter surface.Exporter) *CSV {
	return &CSV{exporter: exporter}
}

func (c *CSV) Name() string        { return NameCSV }
func (c *CSV) Kind() delivery.Kind { return delivery.KindExport }

func (c *CSV) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	_, err := c.exporter.Export(ctx, render.CSVFilename, "text/csv; charset=utf-8", render.BuildCSV(d.Report))
	return err
}

func renderInput(d *delivery.Dispatch) render.RenderInput {
	return render.RenderInput{
		Title:       d.Title,
		GeneratedAt: d.Timestamp,
		Report:      d.Report,
	}
}
