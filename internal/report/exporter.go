package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/repository"
)

// FileSink пишет текстовый отчет в каталог dir
type FileSink struct {
	dir string
}

// NewFileSink создает FileSink
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Write сохраняет отчет и возвращает путь к файлу
func (s *FileSink) Write(r *domain.SessionReport) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(s.dir, FileName(r.GeneratedAt))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Render(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file %s: %w", path, err)
	}

	return path, nil
}

// Exporter сохраняет отчет в файл и дополнительно во внешние хранилища
type Exporter struct {
	file   *FileSink
	repos  []repository.ReportRepository
	logger logger.Logger
}

// NewExporter создает Exporter. repos могут отсутствовать.
func NewExporter(file *FileSink, logger logger.Logger, repos ...repository.ReportRepository) *Exporter {
	return &Exporter{
		file:   file,
		repos:  repos,
		logger: logger,
	}
}

// Export пишет файл отчета (ошибка фатальна), затем отдает отчет в хранилища
// (ошибки только логируются: файл уже записан)
func (e *Exporter) Export(ctx context.Context, r *domain.SessionReport) (string, error) {
	path, err := e.file.Write(r)
	if err != nil {
		e.logger.Error("Failed to write report file", map[string]interface{}{
			"error": err.Error(),
		})
		return "", err
	}

	e.logger.Info("Report file written", map[string]interface{}{
		"report_id": r.ID,
		"path":      path,
	})

	for _, repo := range e.repos {
		if err := repo.Save(ctx, r); err != nil {
			e.logger.Warn("Failed to save report to repository", map[string]interface{}{
				"report_id":  r.ID,
				"repository": repo.Name(),
				"error":      err.Error(),
			})
			continue
		}
		e.logger.Info("Report saved to repository", map[string]interface{}{
			"report_id":  r.ID,
			"repository": repo.Name(),
		})
	}

	return path, nil
}
