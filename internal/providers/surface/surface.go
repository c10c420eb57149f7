// Package surface holds the device-side outputs a delivery can hand off
// to: a print surface, a file export, and an external app launcher.
package surface

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/smallbiznis/shiftcount/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidFilename = errors.New("invalid_filename")

// Printer presents an HTML document for printing.
type Printer interface {
	Print(ctx context.Context, title string, html string) (string, error)
}

// Exporter saves a named file for the operator.
type Exporter interface {
	Export(ctx context.Context, filename string, contentType string, data []byte) (string, error)
}

// Launcher hands a composed URI (sms:, mailto:) to an external app.
type Launcher interface {
	Launch(ctx context.Context, uri string) error
}

var Module = fx.Module("providers.surface",
	fx.Provide(
		NewFileExporter,
		func(e *FileExporter) Exporter { return e },
		NewFilePrinter,
		func(p *FilePrinter) Printer { return p },
		NewLogLauncher,
		func(l *LogLauncher) Launcher { return l },
	),
)

type FileExporter struct {
	dir string
	log *zap.Logger
}

func NewFileExporter(cfg config.Config, log *zap.Logger) *FileExporter {
	return &FileExporter{dir: cfg.Delivery.ExportDir, log: log.Named("surface.export")}
}

func NewFileExporterAt(dir string, log *zap.Logger) *FileExporter {
	return &FileExporter{dir: dir, log: log.Named("surface.export")}
}

func (e *FileExporter) Export(ctx context.Context, filename string, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", ErrInvalidFilename
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	e.log.Info("file exported",
		zap.String("path", path),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)
	return path, nil
}

// FilePrinter writes the printable document next to exports; the
// document's own script opens the print dialog when viewed.
type FilePrinter struct {
	exporter *FileExporter
}

func NewFilePrinter(exporter *FileExporter) *FilePrinter {
	return &FilePrinter{exporter: exporter}
}

func (p *FilePrinter) Print(ctx context.Context, title string, html string) (string, error) {
	name := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	if name == "" {
		name = "report"
	}
	return p.exporter.Export(ctx, name+".html", "text/html; charset=utf-8", []byte(html))
}

// LogLauncher records launched URIs. A server has no messaging app to open.
type LogLauncher struct {
	log *zap.Logger

	mu       sync.Mutex
	launched []string
}

func NewLogLauncher(log *zap.Logger) *LogLauncher {
	return &LogLauncher{log: log.Named("surface.launcher")}
}

func (l *LogLauncher) Launch(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	l.launched = append(l.launched, uri)
	l.mu.Unlock()

	l.log.Info("composer launched", zap.String("uri", uri))
	return nil
}

func (l *LogLauncher) Launched() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.launched))
	copy(out, l.launched)
	return out
}
