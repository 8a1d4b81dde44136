package mock

import (
	"context"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of leadscout.SettingsService.
type SettingsService struct {
	LoadSettingsFn func(ctx context.Context) (*leadscout.Settings, error)
	SaveSettingsFn func(ctx context.Context, settings *leadscout.Settings) error
}

func (s *SettingsService) LoadSettings(ctx context.Context) (*leadscout.Settings, error) {
	return s.LoadSettingsFn(ctx)
}

func (s *SettingsService) SaveSettings(ctx context.Context, settings *leadscout.Settings) error {
	return s.SaveSettingsFn(ctx, settings)
}
