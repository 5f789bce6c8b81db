package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcragent/internal/config"
	"dcragent/internal/filter"
)

func fileSinkConfig(path string) config.FileSinkConfig {
	return config.FileSinkConfig{
		Use:        true,
		Path:       path,
		RotateDays: 7,
		MaxBackups: 5,
		Channel: config.ChannelConfig{
			ReportIncompleteInfo: true,
			IgnoreFilter:         true,
			ReportTraining:       true,
		},
	}
}

func TestFileSink_Deliver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.log")
	s, err := NewFileSink(fileSinkConfig(path), false)
	require.NoError(t, err)
	defer s.Close()

	n := testNotification(filter.Disposition{})
	require.NoError(t, s.Deliver(context.Background(), n))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---- 2026/08/25 12:00:00 ----\nSeismic Intensity Information\nMiyagi: 5+\n", string(content))
}

func TestFileSink_AppendsAcrossDeliveries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.log")
	s, err := NewFileSink(fileSinkConfig(path), false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Deliver(context.Background(), testNotification(filter.Disposition{})))
	require.NoError(t, s.Deliver(context.Background(), testNotification(filter.Disposition{})))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "---- "))
}

func TestFileSink_IncludesRawWhenAsked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.log")
	s, err := NewFileSink(fileSinkConfig(path), true)
	require.NoError(t, err)
	defer s.Close()

	n := testNotification(filter.Disposition{})
	n.Report.Raw = "b5620213aa0005bb"
	require.NoError(t, s.Deliver(context.Background(), n))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "raw: b5620213aa0005bb\n")

	// Without a captured raw line nothing extra is written.
	require.NoError(t, s.Deliver(context.Background(), testNotification(filter.Disposition{})))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "raw: "))
}

func TestFileSink_RotatesWhenDue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.log")

	// An existing report older than the rotation period must be archived
	// on the first write after startup.
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	cfg := fileSinkConfig(path)
	cfg.RotateDays = 1
	s, err := NewFileSink(cfg, false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Deliver(context.Background(), testNotification(filter.Disposition{})))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "old content")
	assert.Contains(t, string(content), "Seismic Intensity Information")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var archives []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "report.log.") {
			archives = append(archives, e.Name())
		}
	}
	require.Len(t, archives, 1)

	archived, err := os.ReadFile(filepath.Join(dir, archives[0]))
	require.NoError(t, err)
	assert.Equal(t, "old content\n", string(archived))
}

func TestFileSink_FreshFileDoesNotRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.log")

	cfg := fileSinkConfig(path)
	cfg.RotateDays = 1
	s, err := NewFileSink(cfg, false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Deliver(context.Background(), testNotification(filter.Disposition{})))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.log", entries[0].Name())
}

func TestFileSink_PrunesOldArchives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.log")

	// Three pre-existing archives plus the one this rotation creates,
	// against a budget of two.
	stale := []string{
		"report.log.20200101_000000",
		"report.log.20200102_000000",
		"report.log.20200103_000000",
	}
	for _, name := range stale {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	cfg := fileSinkConfig(path)
	cfg.RotateDays = 1
	cfg.MaxBackups = 2
	s, err := NewFileSink(cfg, false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Deliver(context.Background(), testNotification(filter.Disposition{})))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var archives []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "report.log.") {
			archives = append(archives, e.Name())
		}
	}
	require.Len(t, archives, 2)
	assert.NotContains(t, archives, "report.log.20200101_000000")
	assert.NotContains(t, archives, "report.log.20200102_000000")
}
