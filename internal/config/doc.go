// Package config manages the applywizard settings file.
//
// Settings are stored as YAML in a platform-appropriate location:
//   - Linux: $XDG_CONFIG_HOME/applywizard/config.yaml or $HOME/.config/applywizard/config.yaml
//   - macOS: $HOME/.config/applywizard/config.yaml
//   - Windows: %LOCALAPPDATA%\applywizard\config.yaml
//
// A missing file is not an error: defaults are returned. Command-line flags
// override values read from the file.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := directory.NewClient(settings.API.BaseURL)
//
// Applicant data is never written here; the form lives in memory only.
package config
