package sqlite

import (
	"context"

	"github.com/fwojciec/leadscout"
)

// Settings keys as stored in the settings table.
const (
	settingGeminiAPIKey = "gemini-api-key"
	settingGitHubToken  = "github-token"
	settingRelayURL     = "relay-url"
)

// Compile-time interface verification.
var _ leadscout.SettingsService = (*SettingsService)(nil)

// SettingsService implements leadscout.SettingsService using SQLite.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// LoadSettings retrieves the stored settings. Keys that were never saved
// load as empty strings.
func (s *SettingsService) LoadSettings(ctx context.Context) (*leadscout.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings leadscout.Settings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}

		switch key {
		case settingGeminiAPIKey:
			settings.GeminiAPIKey = value
		case settingGitHubToken:
			settings.GitHubToken = value
		case settingRelayURL:
			settings.RelayURL = value
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SaveSettings persists the full settings value. Empty fields delete the
// stored row so secrets do not linger after an unset.
func (s *SettingsService) SaveSettings(ctx context.Context, settings *leadscout.Settings) error {
	values := map[string]string{
		settingGeminiAPIKey: settings.GeminiAPIKey,
		settingGitHubToken:  settings.GitHubToken,
		settingRelayURL:     settings.RelayURL,
	}

	for key, value := range values {
		if value == "" {
			if _, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
				return err
			}
			continue
		}

		if _, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO settings (key, value)
			VALUES (?, ?)
		`, key, value); err != nil {
			return err
		}
	}

	return nil
}
