package surface

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileExporterWritesFile(t *testing.T) {
	dir := t.TempDir()
	e := NewFileExporterAt(filepath.Join(dir, "out"), zap.NewNop())

	path, err := e.Export(context.Background(), "report.csv", "text/csv", []byte("a,b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "report.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(data))
}

func TestFileExporterStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	e := NewFileExporterAt(dir, zap.NewNop())

	path, err := e.Export(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd"), path)

	_, err = e.Export(context.Background(), "  ", "text/plain", nil)
	assert.ErrorIs(t, err, ErrInvalidFilename)
}

func TestFilePrinterNamesFromTitle(t *testing.T) {
	dir := t.TempDir()
	p := NewFilePrinter(NewFileExporterAt(dir, zap.NewNop()))

	path, err := p.Print(context.Background(), "End of Night Inventory Report", "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "end-of-night-inventory-report.html"), path)
}

func TestLogLauncherRecords(t *testing.T) {
	l := NewLogLauncher(zap.NewNop())
	require.NoError(t, l.Launch(context.Background(), "sms:?body=hi"))
	assert.Equal(t, []string{"sms:?body=hi"}, l.Launched())
}
