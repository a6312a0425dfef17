package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"stormlightlabs.org/textcompare/textdiff"
)

// Configuration keys shared by flags, environment variables and config.yaml.
const (
	KeyMode               = "mode"
	KeyIgnoreCase         = "ignore-case"
	KeyIgnoreWhitespace   = "ignore-whitespace"
	KeyContext            = "context"
	KeyFormat             = "format"
	KeySyntaxHighlighting = "syntax-highlighting"
	KeyWidth              = "width"
	KeyLogComparisons     = "log-comparisons"
	KeyNonInteractive     = "non-interactive"
	KeyVerbose            = "verbose"
	KeyConfigDir          = "config-dir"
)

const envPrefix = "TEXTCOMPARE"

// getConfigDir determines the appropriate configuration directory based on the user's operating system.
// It follows standard conventions for each OS (e.g., XDG directories on Linux, AppData on Windows).
// If the directory doesn't exist, it will be created.
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			configDir = filepath.Join(appData, "textcompare")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".textcompare")
		}
	case "darwin", "linux":
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "textcompare")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config", "textcompare")
		}
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".textcompare")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// setDefaults registers a default for every option key so config files and the environment can override any of them.
func setDefaults() {
	defaults := textdiff.DefaultOptions()
	viper.SetDefault(KeyMode, defaults.Mode.String())
	viper.SetDefault(KeyIgnoreCase, defaults.IgnoreCase)
	viper.SetDefault(KeyIgnoreWhitespace, defaults.IgnoreWhitespace)
	viper.SetDefault(KeyContext, defaults.ContextSize)
	viper.SetDefault(KeyFormat, textdiff.FormatPlain)
	viper.SetDefault(KeySyntaxHighlighting, true)
	viper.SetDefault(KeyWidth, 120)
	viper.SetDefault(KeyLogComparisons, false)
}

// SetupConfig initializes Viper for configuration management.
// It sets up the configuration file name, type, search paths and the TEXTCOMPARE_ environment prefix.
// A missing configuration file is not an error.
func SetupConfig() error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	viper.Set(KeyConfigDir, configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// LoadOptions builds comparison options from the merged configuration. Out-of-range values are clamped.
func LoadOptions() textdiff.Options {
	return textdiff.Options{
		Mode:             textdiff.ParseMode(viper.GetString(KeyMode)),
		IgnoreCase:       viper.GetBool(KeyIgnoreCase),
		IgnoreWhitespace: viper.GetBool(KeyIgnoreWhitespace),
		ContextSize:      viper.GetInt(KeyContext),
	}.Normalized()
}

// SaveDefaults writes opts and format to config.yaml so they become the defaults of the next session.
func SaveDefaults(opts textdiff.Options, format string) error {
	configDir := viper.GetString(KeyConfigDir)
	if configDir == "" {
		var err error
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
	}

	viper.Set(KeyMode, opts.Mode.String())
	viper.Set(KeyIgnoreCase, opts.IgnoreCase)
	viper.Set(KeyIgnoreWhitespace, opts.IgnoreWhitespace)
	viper.Set(KeyContext, opts.ContextSize)
	viper.Set(KeyFormat, format)

	configFile := filepath.Join(configDir, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
