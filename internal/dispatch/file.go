package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dcragent/internal/config"
)

// FileSink appends rendered notifications to the report file. The file
// rotates on a day-based schedule: the current file is renamed with a
// timestamp suffix and archives beyond the backup budget are removed.
// The pipeline is single threaded, so there is no locking here.
type FileSink struct {
	cfg        config.FileSinkConfig
	includeRaw bool

	file     *os.File
	rotateAt time.Time
}

func NewFileSink(cfg config.FileSinkConfig, includeRaw bool) (*FileSink, error) {
	s := &FileSink{cfg: cfg, includeRaw: includeRaw}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// open opens the report file for appending and derives the next rotation
// time from the file's age, so restarting the agent does not reset the
// rotation schedule.
func (s *FileSink) open() error {
	f, err := os.OpenFile(s.cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat report file: %w", err)
	}

	base := stat.ModTime()
	if stat.Size() == 0 {
		base = time.Now()
	}

	s.file = f
	s.rotateAt = base.Add(s.cfg.RotateEvery())
	return nil
}

func (s *FileSink) Name() string {
	return "file"
}

func (s *FileSink) Policy() config.ChannelConfig {
	return s.cfg.Channel
}

func (s *FileSink) Deliver(ctx context.Context, n Notification) error {
	if !time.Now().Before(s.rotateAt) {
		if err := s.rotate(); err != nil {
			return fmt.Errorf("rotate report file: %w", err)
		}
	}

	if _, err := s.file.WriteString(renderText(n, s.includeRaw)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// rotate closes the current file, renames it with a timestamp suffix,
// opens a fresh one and trims old archives.
func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}

	archive := fmt.Sprintf("%s.%s", s.cfg.Path, time.Now().Format("20060102_150405"))
	if err := os.Rename(s.cfg.Path, archive); err != nil {
		return fmt.Errorf("archive report file: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	s.pruneArchives()
	return nil
}

// pruneArchives removes the oldest archives beyond MaxBackups. Failures
// are ignored; the next rotation prunes again.
func (s *FileSink) pruneArchives() {
	dir := filepath.Dir(s.cfg.Path)
	base := filepath.Base(s.cfg.Path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var archives []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), base+".") {
			archives = append(archives, e.Name())
		}
	}

	if len(archives) <= s.cfg.MaxBackups {
		return
	}

	// The timestamp suffix sorts lexically, oldest first.
	sort.Strings(archives)
	for _, name := range archives[:len(archives)-s.cfg.MaxBackups] {
		_ = os.Remove(filepath.Join(dir, name))
	}
}

func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
