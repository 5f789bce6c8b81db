package dedup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"dcragent/internal/report"
)

// snapshotVersion is bumped whenever the on-disk layout changes. Load
// refuses other versions instead of guessing.
const snapshotVersion = 1

type snapshotFile struct {
	Version int           `json:"version"`
	SavedAt time.Time     `json:"saved_at"`
	Entries []entryRecord `json:"entries"`
}

// entryRecord is the persisted form of an Entry. It spells the report
// fields out instead of embedding report.Report so a change to the
// in-memory type cannot silently change the file format.
type entryRecord struct {
	ReceivedAt     time.Time  `json:"received_at"`
	Category       string     `json:"category"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	Classification int        `json:"classification"`
	Training       bool       `json:"training"`
	Complete       bool       `json:"complete"`
	Localities     []string   `json:"localities,omitempty"`
	Header         string     `json:"header,omitempty"`
	Body           string     `json:"body,omitempty"`
}

// Save writes the entries to path atomically. The snapshot lands complete
// or not at all: content goes to a temp file in the target directory,
// synced and renamed into place, and a failure leaves neither a partial
// snapshot nor a stray temp file behind.
func Save(path string, entries []Entry, now time.Time) error {
	snap := snapshotFile{
		Version: snapshotVersion,
		SavedAt: now,
		Entries: make([]entryRecord, 0, len(entries)),
	}
	for _, e := range entries {
		snap.Entries = append(snap.Entries, toRecord(e))
	}

	content, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dcragent-cache-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}

	return nil
}

// Load reads a snapshot written by Save. A missing file is a clean first
// start: no entries, no error. A corrupt file or a version mismatch is an
// error; the caller decides whether to continue with an empty cache.
func Load(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache snapshot: %w", err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("parse cache snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported cache snapshot version %d (want %d)", snap.Version, snapshotVersion)
	}

	entries := make([]Entry, 0, len(snap.Entries))
	for _, rec := range snap.Entries {
		entries = append(entries, fromRecord(rec))
	}
	return entries, nil
}

func toRecord(e Entry) entryRecord {
	r := e.Report
	return entryRecord{
		ReceivedAt:     e.ReceivedAt,
		Category:       r.Category.String(),
		IssuedAt:       r.IssuedAt,
		Classification: r.Classification,
		Training:       r.Training,
		Complete:       r.Complete,
		Localities:     r.Localities,
		Header:         r.Header,
		Body:           r.Body,
	}
}

func fromRecord(rec entryRecord) Entry {
	return Entry{
		ReceivedAt: rec.ReceivedAt,
		Report: &report.Report{
			Category:       report.ParseCategory(rec.Category),
			IssuedAt:       rec.IssuedAt,
			Classification: rec.Classification,
			Training:       rec.Training,
			Complete:       rec.Complete,
			Localities:     rec.Localities,
			Header:         rec.Header,
			Body:           rec.Body,
		},
	}
}
