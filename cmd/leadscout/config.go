package main

import (
	"fmt"

	"github.com/fwojciec/leadscout"
)

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.LoadSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	setSettingValue(settings, c.Key, c.Value)

	if err := deps.Settings.SaveSettings(deps.Ctx, settings); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", c.Key)
	return nil
}

// Run executes the config get command.
func (c *ConfigGetCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.LoadSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	value := settingValue(settings, c.Key)
	if value == "" {
		fmt.Fprintf(deps.Stderr, "error: %s is not set\n", c.Key)
		return leadscout.Errorf(leadscout.ENOTFOUND, "%s is not set", c.Key)
	}

	fmt.Fprintln(deps.Stdout, value)
	return nil
}

// Run executes the config unset command.
func (c *ConfigUnsetCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.LoadSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	setSettingValue(settings, c.Key, "")

	if err := deps.Settings.SaveSettings(deps.Ctx, settings); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %s\n", c.Key)
	return nil
}

// settingValue reads the field behind a settings key.
func settingValue(s *leadscout.Settings, key string) string {
	switch key {
	case "gemini-api-key":
		return s.GeminiAPIKey
	case "github-token":
		return s.GitHubToken
	case "relay-url":
		return s.RelayURL
	}
	return ""
}

// setSettingValue writes the field behind a settings key. Kong's enum
// validation guarantees the key is one of the known three.
func setSettingValue(s *leadscout.Settings, key, value string) {
	switch key {
	case "gemini-api-key":
		s.GeminiAPIKey = value
	case "github-token":
		s.GitHubToken = value
	case "relay-url":
		s.RelayURL = value
	}
}
