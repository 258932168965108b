package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Itecs-company/Obed-micro/internal/api"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

// ExportFilename encodes the format and the effective range bounds, with
// "all" standing in for an unset bound.
func ExportFilename(format api.ExportFormat, rng model.DateRange) string {
	return fmt.Sprintf("employees_%s_%s.%s", model.Label(rng.Start), model.Label(rng.End), format.Ext())
}

// Export requests a binary artifact for the given range (unset bounds
// mean all time) and price-visibility flag, then delivers it into
// destDir. The bytes land in a temporary file first and are renamed into
// place; the temporary file is removed on every exit path, so a failed
// export never leaves a partial artifact behind. Returns the final path.
func (e *Engine) Export(ctx context.Context, format api.ExportFormat, includePrice bool, rng model.DateRange, destDir string) (string, error) {
	data, err := e.client.ExportRecords(ctx, format, includePrice, rng)
	if err != nil {
		e.log.Warn("export failed", "format", format, "error", err)
		return "", err
	}

	tmp, err := os.CreateTemp(destDir, ".obed-export-*")
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	tmpPath := tmp.Name()
	// No-op once the rename below has succeeded.
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}

	final := filepath.Join(destDir, ExportFilename(format, rng))
	if err := os.Rename(tmpPath, final); err != nil {
		return "", fmt.Errorf("saving export file: %w", err)
	}
	e.log.Info("export saved", "path", final, "bytes", len(data))
	return final, nil
}
