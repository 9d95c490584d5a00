package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"ctxpack/internal/utils"
)

const (
	// globalConfigDirectoryName is the directory under the user home holding the global configuration.
	globalConfigDirectoryName = ".config/ctxpack"
	// globalConfigFileName is the name of the global configuration file.
	globalConfigFileName = "config.yaml"
	// localConfigFileName is the name of the per-project configuration file.
	localConfigFileName = ".ctxpack.yaml"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds packing defaults loaded from configuration files.
type ApplicationConfiguration struct {
	Pack PackConfiguration `mapstructure:"pack"`
}

// PackConfiguration defines defaults applied before command line flags.
type PackConfiguration struct {
	Exclude   []string           `mapstructure:"exclude"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
	Clipboard *bool              `mapstructure:"clipboard"`
	Browser   *bool              `mapstructure:"browser"`
	Reveal    *bool              `mapstructure:"reveal"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global and local
// files, overlaying local values on global ones. Missing files yield the zero
// configuration.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, globalConfigDirectoryName, globalConfigFileName)
		globalConfiguration, globalLoadError := loadConfigurationFromPath(globalPath)
		if globalLoadError != nil {
			return ApplicationConfiguration{}, globalLoadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, localConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfiguration, localLoadError := loadConfigurationFromPath(localPath)
	if localLoadError != nil {
		return ApplicationConfiguration{}, localLoadError
	}
	merged = merged.Merge(localConfiguration)

	merged.Pack.Exclude = utils.DeduplicatePatterns(merged.Pack.Exclude)

	return merged, nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if fileInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	configurationReader := viper.New()
	configurationReader.SetConfigFile(path)
	if readError := configurationReader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var loadedConfiguration ApplicationConfiguration
	if decodeError := configurationReader.Unmarshal(&loadedConfiguration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return loadedConfiguration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Pack = result.Pack.merge(override.Pack)
	return result
}

func (configuration PackConfiguration) merge(override PackConfiguration) PackConfiguration {
	result := configuration
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Browser != nil {
		result.Browser = cloneBool(override.Browser)
	}
	if override.Reveal != nil {
		result.Reveal = cloneBool(override.Reveal)
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
