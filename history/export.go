package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/inglify/inglify"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportFormat represents the JSON structure for history export/import.
type ExportFormat struct {
	Version    string                `json:"version"`
	ExportedAt string                `json:"exported_at"`
	Items      []inglify.HistoryItem `json:"items"`
	Metadata   map[string]string     `json:"metadata,omitempty"`
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int // Items added and still present after the cap
	Skipped  int // Items without an id or whose id was already present
	Dropped  int // Items that fell beyond the cap, imported or existing
	Total    int // History size after the import
}

// Export writes the history to w in JSON format.
func (s *Store) Export(w io.Writer, metadata map[string]string) error {
	items, err := s.Items()
	if err != nil {
		return fmt.Errorf("getting history: %w", err)
	}

	export := ExportFormat{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Items:      items,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the history to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (s *Store) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return s.Export(f, metadata)
}

// Import merges items read from r into the history. Items whose id already
// exists are skipped; the result is sorted newest first and capped.
func (s *Store) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item.ID] = true
	}
	added := make(map[string]bool)
	for _, item := range export.Items {
		if item.ID == "" || seen[item.ID] {
			result.Skipped++
			continue
		}
		seen[item.ID] = true
		added[item.ID] = true
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	if len(items) > s.max {
		result.Dropped = len(items) - s.max
		items = items[:s.max]
	}
	for _, item := range items {
		if added[item.ID] {
			result.Imported++
		}
	}

	if err := s.save(items); err != nil {
		return nil, err
	}
	result.Total = len(items)
	return result, nil
}

// ImportFromFile imports history items from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (s *Store) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return s.Import(f)
}
