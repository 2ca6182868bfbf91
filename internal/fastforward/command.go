package fastforward

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/forksync/internal/fleet"
	"github.com/temirov/forksync/internal/fleet/dependencies"
	flagutils "github.com/temirov/forksync/internal/utils/flags"
)

const (
	commandUseConstant              = "sync"
	commandShortDescriptionConstant = "Fast-forward fork repositories from their upstream remotes"
	commandLongDescriptionConstant  = "sync visits every repository in the fleet manifest, compares the current branch with its upstream counterpart, fast-forwards and pushes when local history is an ancestor of upstream, and reports a categorized summary."

	rootFlagNameConstant            = "root"
	rootFlagDescriptionConstant     = "Directory containing the repository folders"
	manifestFlagNameConstant        = "manifest"
	manifestFlagDescriptionConstant = "Path to the fleet manifest file"

	synchronizationFailuresTemplateConstant = "%d of %d repositories failed synchronization"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the sync command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  fleet.GitExecutor
	FileSystem                   fleet.FileSystem
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(rootFlagNameConstant, "", rootFlagDescriptionConstant)
	command.Flags().String(manifestFlagNameConstant, "", manifestFlagDescriptionConstant)
	flagutils.BindExecutionFlags(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

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
	upstreamRemoteName := configuration.UpstreamRemoteName
	if executionFlags.RemoteSet && len(executionFlags.Remote) > 0 {
		upstreamRemoteName = executionFlags.Remote
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

	outcomes, synchronizationError := service.Synchronize(command.Context(), Options{
		RootDirectory:      rootDirectory,
		Descriptors:        descriptors,
		DryRun:             executionFlags.DryRun,
		UpstreamRemoteName: upstreamRemoteName,
		OriginRemoteName:   configuration.OriginRemoteName,
	})
	if synchronizationError != nil {
		return synchronizationError
	}

	statusBuckets := NewStatusBuckets()
	failedRepositories := 0
	for _, outcome := range outcomes {
		statusBuckets.RecordOutcome(outcome)
		if outcome.Verdict == VerdictCommandFailed {
			failedRepositories++
		}
	}
	statusBuckets.Render(reporter)

	if failedRepositories > 0 {
		return fmt.Errorf(synchronizationFailuresTemplateConstant, failedRepositories, len(outcomes))
	}
	return nil
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
