package releasetag

import (
	"strings"

	"github.com/temirov/forksync/internal/fleet"
)

const (
	defaultRootDirectoryConstant = "."
	defaultManifestPathConstant  = "repos.yaml"

	configurationRootKeyConstant         = "root"
	configurationManifestKeyConstant     = "manifest"
	configurationOriginRemoteKeyConstant = "origin_remote"
	configurationKeySeparatorConstant    = "."
)

// CommandConfiguration captures configuration values for the release command.
type CommandConfiguration struct {
	RootDirectory    string `mapstructure:"root"`
	ManifestPath     string `mapstructure:"manifest"`
	OriginRemoteName string `mapstructure:"origin_remote"`
}

// DefaultCommandConfiguration provides baseline configuration values for tagging.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RootDirectory:    defaultRootDirectoryConstant,
		ManifestPath:     defaultManifestPathConstant,
		OriginRemoteName: fleet.OriginRemoteNameConstant,
	}
}

// DefaultConfigurationValues exposes release defaults keyed beneath the provided root key.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRootKeyConstant:         defaults.RootDirectory,
		rootKey + configurationKeySeparatorConstant + configurationManifestKeyConstant:     defaults.ManifestPath,
		rootKey + configurationKeySeparatorConstant + configurationOriginRemoteKeyConstant: defaults.OriginRemoteName,
	}
}

// Sanitize trims configuration values and restores defaults for empty entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.RootDirectory = strings.TrimSpace(configuration.RootDirectory)
	if len(sanitized.RootDirectory) == 0 {
		sanitized.RootDirectory = defaults.RootDirectory
	}
	sanitized.ManifestPath = strings.TrimSpace(configuration.ManifestPath)
	if len(sanitized.ManifestPath) == 0 {
		sanitized.ManifestPath = defaults.ManifestPath
	}
	sanitized.OriginRemoteName = strings.TrimSpace(configuration.OriginRemoteName)
	if len(sanitized.OriginRemoteName) == 0 {
		sanitized.OriginRemoteName = defaults.OriginRemoteName
	}

	return sanitized
}
