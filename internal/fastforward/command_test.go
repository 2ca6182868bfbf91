package fastforward

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/forksync/internal/fleet"
)

const testCommandManifestConstant = `repositories:
  - id: widget
    name: widget
    git: https://github.com/example/widget
    folder: widget
`

func writeCommandManifest(testInstance *testing.T) string {
	testInstance.Helper()
	manifestPath := filepath.Join(testInstance.TempDir(), "repos.yaml")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(testCommandManifestConstant), 0o600))
	return manifestPath
}

func buildSyncCommandBuilder(executor *scriptedGitExecutor, manifestPath string) *CommandBuilder {
	return &CommandBuilder{
		GitExecutor: executor,
		FileSystem:  stubFileSystem{},
		ConfigurationProvider: func() CommandConfiguration {
			return CommandConfiguration{RootDirectory: testRootDirectoryConstant, ManifestPath: manifestPath}
		},
	}
}

func TestSyncCommandRendersStatusSummary(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: healthyRepositoryResponses()}
	builder := buildSyncCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, output.String(), "=== Status: Fast-forwarded ===")
	require.Contains(testInstance, output.String(), filepath.Join(testRootDirectoryConstant, "widget"))
}

func TestSyncCommandDryRunFlagSuppressesMutations(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: healthyRepositoryResponses()}
	builder := buildSyncCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{"--dry-run"})

	require.NoError(testInstance, command.Execute())
	require.NotContains(testInstance, executor.recordedArguments(), fastForwardMergeKeyConstant)
	require.NotContains(testInstance, executor.recordedArguments(), originPushKeyConstant)
	require.Contains(testInstance, output.String(), "=== Status: Fast-forwarded ===")
}

func TestSyncCommandFailsWhenManifestUnreadable(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: healthyRepositoryResponses()}
	builder := buildSyncCommandBuilder(executor, filepath.Join(testInstance.TempDir(), "absent.yaml"))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{})

	require.ErrorContains(testInstance, command.Execute(), "failed to load fleet manifest")
	require.Empty(testInstance, executor.recordedCommands)
}

func TestSyncCommandReturnsErrorAfterRepositoryFailures(testInstance *testing.T) {
	executor := &scriptedGitExecutor{
		responses: healthyRepositoryResponses(),
		failures:  map[string]error{upstreamFetchKeyConstant: os.ErrPermission},
	}
	builder := buildSyncCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{})

	require.ErrorContains(testInstance, command.Execute(), "failed synchronization")
	require.Contains(testInstance, output.String(), "=== Status: command_failed ===")
}

func TestSyncCommandHonorsConfigurationDefaults(testInstance *testing.T) {
	builder := &CommandBuilder{GitExecutor: &scriptedGitExecutor{}, FileSystem: stubFileSystem{}}
	require.Equal(testInstance, DefaultCommandConfiguration(), builder.resolveConfiguration())

	configured := CommandConfiguration{RootDirectory: " /fleet ", ManifestPath: ""}
	sanitized := configured.Sanitize()
	require.Equal(testInstance, "/fleet", sanitized.RootDirectory)
	require.Equal(testInstance, DefaultCommandConfiguration().ManifestPath, sanitized.ManifestPath)
	require.Equal(testInstance, fleet.UpstreamRemoteNameConstant, sanitized.UpstreamRemoteName)
	require.Equal(testInstance, fleet.OriginRemoteNameConstant, sanitized.OriginRemoteName)
}
