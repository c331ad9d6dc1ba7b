package tournament

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arenahq/ai-arena/internal/config"
)

// SaveTournamentResult writes result as indented JSON to path, creating any
// missing parent directories first.
func SaveTournamentResult(result Result, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("tournament: creating %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("tournament: marshaling result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tournament: writing %s: %w", path, err)
	}
	return nil
}

// DefaultResultPath returns the timestamped path a tournament result is
// written to when the caller does not name one explicitly:
// ~/.ai-arena/tournaments/<started_ts_ms>.json.
func DefaultResultPath(startedTsMS int64) (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d.json", startedTsMS)
	return filepath.Join(configDir, "tournaments", name), nil
}
