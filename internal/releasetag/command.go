package releasetag

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/forksync/internal/fleet"
	"github.com/temirov/forksync/internal/fleet/dependencies"
	flagutils "github.com/temirov/forksync/internal/utils/flags"
)

const (
	commandUseConstant              = "release <tag>"
	commandShortDescriptionConstant = "Create and push a release tag in every fleet repository"
	commandLongDescriptionConstant  = "release creates the given tag in each repository of the fleet manifest and pushes it to the origin remote. Any missing folder or failing git command aborts the whole run."

	rootFlagNameConstant            = "root"
	rootFlagDescriptionConstant     = "Directory containing the repository folders"
	manifestFlagNameConstant        = "manifest"
	manifestFlagDescriptionConstant = "Path to the fleet manifest file"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the release command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  fleet.GitExecutor
	FileSystem                   fleet.FileSystem
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the release command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(rootFlagNameConstant, "", rootFlagDescriptionConstant)
	command.Flags().String(manifestFlagNameConstant, "", manifestFlagDescriptionConstant)
	flagutils.BindExecutionFlags(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	tagName := arguments[0]

	rootDirectory := configuration.RootDirectory
	if flagutils.FlagChanged(command.Flags(), rootFlagNameConstant) {
		flagRoot, rootFlagError := command.Flags().GetString(rootFlagNameConstant)
		if rootFlagError != nil {
			return rootFlagError
		}
		rootDirectory = flagRoot
	}

	manifestPath := configuration.ManifestPath
	if flagutils.FlagChanged(command.Flags(), manifestFlagNameConstant) {
		flagManifest, manifestFlagError := command.Flags().GetString(manifestFlagNameConstant)
		if manifestFlagError != nil {
			return manifestFlagError
		}
		manifestPath = flagManifest
	}

	executionFlags, _ := flagutils.ResolveExecutionFlags(command)
	originRemoteName := configuration.OriginRemoteName
	if executionFlags.RemoteSet && len(executionFlags.Remote) > 0 {
		originRemoteName = executionFlags.Remote
	}

	descriptors, manifestError := fleet.LoadManifest(manifestPath)
	if manifestError != nil {
		return manifestError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	reporter := fleet.NewWriterReporter(command.OutOrStdout())

	service, serviceCreationError := NewService(Dependencies{GitExecutor: gitExecutor, FileSystem: fileSystem, Reporter: reporter})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	return service.Tag(command.Context(), Options{
		RootDirectory:    rootDirectory,
		Descriptors:      descriptors,
		TagName:          tagName,
		DryRun:           executionFlags.DryRun,
		OriginRemoteName: originRemoteName,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
