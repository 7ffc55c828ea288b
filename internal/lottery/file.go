package lottery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// ResultFile persists a merged collection of draw results as a JSON array.
// It is the only state shared between runs; nothing survives in memory.
type ResultFile struct {
	path string
}

// NewResultFile creates a ResultFile for the given path.
func NewResultFile(path string) *ResultFile {
	return &ResultFile{path: path}
}

// Path returns the output file path.
func (f *ResultFile) Path() string {
	return f.path
}

// Load reads the persisted collection. A missing or corrupt file is treated
// as an empty collection; a fresh file will be created on the next save.
func (f *ResultFile) Load() []DrawResult {
	data, err := os.ReadFile(f.path)
	if err != nil {
		log.WithField("file", f.path).Info("No existing results found. Creating new file.")
		return nil
	}

	var results []DrawResult
	if err := json.Unmarshal(data, &results); err != nil {
		log.WithField("file", f.path).Warnf("Existing results unreadable, starting fresh: %v", err)
		return nil
	}

	log.WithField("file", f.path).Infof("Loaded %d existing draw results", len(results))
	return results
}

// Save writes the full collection, pretty-printed, atomically replacing the
// previous file. A save failure has no safe continuation path, so the error
// is returned for the caller to treat as fatal.
func (f *ResultFile) Save(results []DrawResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, f.path)
}

// Export merges the latest fetched records into the persisted collection
// and rewrites the file.
func (f *ResultFile) Export(latest []DrawResult) (Stats, error) {
	existing := f.Load()
	merged, stats := Merge(existing, latest)
	if err := f.Save(merged); err != nil {
		return stats, err
	}
	log.WithField("file", f.path).Infof("Merged %d draw results (%d new entries)", stats.Total, stats.Added)
	return stats, nil
}

// ExistingDates returns the draw dates already persisted, for incremental runs.
func (f *ResultFile) ExistingDates() map[time.Time]struct{} {
	return DateSet(f.Load())
}
