package releasetag

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
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

func buildReleaseCommandBuilder(executor *scriptedGitExecutor, manifestPath string) *CommandBuilder {
	return &CommandBuilder{
		GitExecutor: executor,
		FileSystem:  stubFileSystem{},
		ConfigurationProvider: func() CommandConfiguration {
			return CommandConfiguration{RootDirectory: testRootDirectoryConstant, ManifestPath: manifestPath}
		},
	}
}

func TestReleaseCommandTagsEveryRepository(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: branchResponses()}
	builder := buildReleaseCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{testTagNameConstant})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, executor.recordedArguments(), "tag "+testTagNameConstant)
	require.Contains(testInstance, executor.recordedArguments(), "push origin "+testTagNameConstant)
	require.Contains(testInstance, output.String(), "widget: https://github.com/example/widget @ widget @ main")
}

func TestReleaseCommandRequiresTagArgument(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: branchResponses()}
	builder := buildReleaseCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{})

	require.Error(testInstance, command.Execute())
	require.Empty(testInstance, executor.recordedCommands)
}

func TestReleaseCommandDryRunFlag(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: branchResponses()}
	builder := buildReleaseCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{testTagNameConstant, "--dry-run"})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, []string{branchDetectionKeyConstant}, executor.recordedArguments())
	require.Contains(testInstance, output.String(), "[DRY-RUN] would run: git tag "+testTagNameConstant)
}

func TestReleaseCommandRemoteFlagOverridesPushTarget(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: branchResponses()}
	builder := buildReleaseCommandBuilder(executor, writeCommandManifest(testInstance))

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{testTagNameConstant, "--remote", "mirror"})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, executor.recordedArguments(), "push mirror "+testTagNameConstant)
}
