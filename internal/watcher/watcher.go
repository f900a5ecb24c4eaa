package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"astrodash/internal/config"
	"astrodash/internal/dataset"
	"astrodash/internal/pipeline"
	"astrodash/internal/session"
	"astrodash/internal/storage"
)

// Service polls the source table file and re-ingests it when its mtime
// changes, swapping the session table and refreshing the sqlite snapshot.
type Service struct {
	db      *storage.DB
	cfg     config.Config
	session *session.Session

	lastModTime time.Time
}

func NewService(db *storage.DB, cfg config.Config, s *session.Session) *Service {
	return &Service{db: db, cfg: cfg, session: s}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("watch cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	info, err := os.Stat(s.cfg.DataPath)
	if err != nil {
		return err
	}
	if !info.ModTime().After(s.lastModTime) {
		return nil
	}

	records, err := dataset.Load(s.cfg.DataFormat, s.cfg.DataPath)
	if err != nil {
		return err
	}
	if err := s.db.ReplaceRecords(records, s.cfg.DataPath); err != nil {
		return err
	}
	s.session.Replace(records)
	s.lastModTime = info.ModTime()

	if s.cfg.WatchAutoExport {
		if err := s.exportCharts(); err != nil {
			return err
		}
	}

	fmt.Printf("watch cycle done source=%s records=%d\n", s.cfg.DataPath, len(records))
	return nil
}

func (s *Service) exportCharts() error {
	set := s.session.Charts(s.session.DefaultFilters())
	filename := fmt.Sprintf("charts_%s.xlsx", time.Now().UTC().Format("20060102T150405Z"))
	return pipeline.ExportChartsToXLSX(set, filepath.Join(s.cfg.OutputDir, "watch", filename))
}
