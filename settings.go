package leadscout

import "context"

// Settings holds the small set of values the tool persists between runs.
// Environment variables take precedence over stored settings; the store is
// the fallback so credentials survive across shells.
type Settings struct {
	// GeminiAPIKey authenticates direct generation requests.
	GeminiAPIKey string `json:"geminiApiKey"`

	// GitHubToken authenticates gist exports.
	GitHubToken string `json:"githubToken"`

	// RelayURL, when set, routes searches through a relay server instead of
	// calling the generation API directly.
	RelayURL string `json:"relayUrl"`
}

// SettingsService loads and saves persisted settings. Both operations
// report failure explicitly; callers never depend on ambient storage state.
type SettingsService interface {
	// LoadSettings retrieves the stored settings. Missing values are empty
	// strings, not errors.
	LoadSettings(ctx context.Context) (*Settings, error)

	// SaveSettings persists the full settings value, overwriting prior
	// values. Empty fields clear the stored value.
	SaveSettings(ctx context.Context, settings *Settings) error
}
