package flags_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	flagutils "github.com/temirov/forksync/internal/utils/flags"
)

func TestResolveExecutionFlagsWithoutBinding(testInstance *testing.T) {
	command := &cobra.Command{Use: "bare"}

	_, flagsAvailable := flagutils.ResolveExecutionFlags(command)
	require.False(testInstance, flagsAvailable)
}

func TestBindAndResolveExecutionFlags(testInstance *testing.T) {
	testCases := []struct {
		name              string
		arguments         []string
		expectedDryRun    bool
		expectedDryRunSet bool
		expectedRemote    string
		expectedRemoteSet bool
	}{
		{
			name:      "defaults",
			arguments: []string{},
		},
		{
			name:              "dry_run_enabled",
			arguments:         []string{"--dry-run"},
			expectedDryRun:    true,
			expectedDryRunSet: true,
		},
		{
			name:              "remote_override",
			arguments:         []string{"--remote", " mirror "},
			expectedRemote:    "mirror",
			expectedRemoteSet: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := &cobra.Command{Use: "bound", RunE: func(*cobra.Command, []string) error { return nil }}
			flagutils.BindExecutionFlags(command)
			command.SetArgs(testCase.arguments)
			require.NoError(testInstance, command.Execute())

			resolvedFlags, flagsAvailable := flagutils.ResolveExecutionFlags(command)
			require.True(testInstance, flagsAvailable)
			require.Equal(testInstance, testCase.expectedDryRun, resolvedFlags.DryRun)
			require.Equal(testInstance, testCase.expectedDryRunSet, resolvedFlags.DryRunSet)
			require.Equal(testInstance, testCase.expectedRemote, resolvedFlags.Remote)
			require.Equal(testInstance, testCase.expectedRemoteSet, resolvedFlags.RemoteSet)
		})
	}
}
