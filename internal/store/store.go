package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soheilrt/play-scraper/internal/model"
)

// Sink writes one JSON detail record per application id.
type Sink struct {
	// dir is the directory holding the per-app artifacts.
	dir string
}

// New creates a Sink rooted at dir, creating the directory if needed.
func New(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create detail directory: %w", err)
	}
	return &Sink{dir: dir}, nil
}

// Path returns the artifact path for an application id.
func (s *Sink) Path(appID string) string {
	return filepath.Join(s.dir, appID+".json")
}

// Exists reports whether a detail record is already persisted for appID.
func (s *Sink) Exists(appID string) bool {
	_, err := os.Stat(s.Path(appID))
	return err == nil
}

// Write persists the detail record for its application id. The write is
// once-only: if an artifact already exists it is left untouched and Write
// returns created=false with no error. Records without an id are rejected
// with model.ErrMissingAppID.
func (s *Sink) Write(detail *model.AppDetail) (created bool, err error) {
	if err := detail.Validate(); err != nil {
		return false, err
	}

	target := s.Path(detail.AppID)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to serialize detail record: %w", err)
	}

	// Temp-file-and-rename keeps a crash from leaving a truncated record.
	tmp, err := os.CreateTemp(s.dir, detail.AppID+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("failed to create detail file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to write detail file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to close detail file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to place detail file: %w", err)
	}

	return true, nil
}

// Read loads a persisted detail record by application id.
func (s *Sink) Read(appID string) (*model.AppDetail, error) {
	data, err := os.ReadFile(s.Path(appID))
	if err != nil {
		return nil, fmt.Errorf("failed to read detail record: %w", err)
	}

	var detail model.AppDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse detail record: %w", err)
	}
	return &detail, nil
}
