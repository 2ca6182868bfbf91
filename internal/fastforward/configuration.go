package fastforward

import (
	"strings"

	"github.com/temirov/forksync/internal/fleet"
)

const (
	defaultRootDirectoryConstant = "."
	defaultManifestPathConstant  = "repos.yaml"

	configurationRootKeyConstant           = "root"
	configurationManifestKeyConstant       = "manifest"
	configurationUpstreamRemoteKeyConstant = "upstream_remote"
	configurationOriginRemoteKeyConstant   = "origin_remote"
	configurationKeySeparatorConstant      = "."
)

// CommandConfiguration captures configuration values for the sync command.
type CommandConfiguration struct {
	RootDirectory      string `mapstructure:"root"`
	ManifestPath       string `mapstructure:"manifest"`
	UpstreamRemoteName string `mapstructure:"upstream_remote"`
	OriginRemoteName   string `mapstructure:"origin_remote"`
}

// DefaultCommandConfiguration provides baseline configuration values for synchronization.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RootDirectory:      defaultRootDirectoryConstant,
		ManifestPath:       defaultManifestPathConstant,
		UpstreamRemoteName: fleet.UpstreamRemoteNameConstant,
		OriginRemoteName:   fleet.OriginRemoteNameConstant,
	}
}

// DefaultConfigurationValues exposes sync defaults keyed beneath the provided root key.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRootKeyConstant:           defaults.RootDirectory,
		rootKey + configurationKeySeparatorConstant + configurationManifestKeyConstant:       defaults.ManifestPath,
		rootKey + configurationKeySeparatorConstant + configurationUpstreamRemoteKeyConstant: defaults.UpstreamRemoteName,
		rootKey + configurationKeySeparatorConstant + configurationOriginRemoteKeyConstant:   defaults.OriginRemoteName,
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
	sanitized.UpstreamRemoteName = strings.TrimSpace(configuration.UpstreamRemoteName)
	if len(sanitized.UpstreamRemoteName) == 0 {
		sanitized.UpstreamRemoteName = defaults.UpstreamRemoteName
	}
	sanitized.OriginRemoteName = strings.TrimSpace(configuration.OriginRemoteName)
	if len(sanitized.OriginRemoteName) == 0 {
		sanitized.OriginRemoteName = defaults.OriginRemoteName
	}

	return sanitized
}
