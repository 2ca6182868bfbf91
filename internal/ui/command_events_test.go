package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/forksync/internal/execshell"
	"github.com/temirov/forksync/internal/ui"
)

const (
	testFetchArgumentConstant     = "fetch"
	testUpstreamArgumentConstant  = "upstream"
	testWorkingDirectoryConstant  = "/tmp/fleet/widget"
	testStandardErrorTextConstant = "fatal: not a git repository"
)

func buildTestCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{testFetchArgumentConstant, testUpstreamArgumentConstant},
			WorkingDirectory: testWorkingDirectoryConstant,
		},
	}
}

func TestCommandEventFormatterMessages(testInstance *testing.T) {
	formatter := ui.CommandEventFormatter{}
	command := buildTestCommand()

	testCases := []struct {
		name            string
		builtMessage    string
		expectedMessage string
	}{
		{
			name:            "started",
			builtMessage:    formatter.BuildStartedMessage(command),
			expectedMessage: "Running git fetch upstream (in /tmp/fleet/widget)",
		},
		{
			name:            "success",
			builtMessage:    formatter.BuildSuccessMessage(command),
			expectedMessage: "Completed git fetch upstream (in /tmp/fleet/widget)",
		},
		{
			name:            "failure",
			builtMessage:    formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorTextConstant}),
			expectedMessage: "git fetch upstream (in /tmp/fleet/widget) failed with exit code 128: " + testStandardErrorTextConstant,
		},
		{
			name:            "execution_failure",
			builtMessage:    formatter.BuildExecutionFailureMessage(command, errors.New("binary not found")),
			expectedMessage: "git fetch upstream (in /tmp/fleet/widget) failed: binary not found",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.builtMessage)
		})
	}
}

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))
	command := buildTestCommand()

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1})
	eventLogger.CommandExecutionFailed(command, errors.New("boom"))

	logEntries := observedLogs.All()
	require.Len(testInstance, logEntries, 4)
	require.Equal(testInstance, zap.InfoLevel, logEntries[0].Level)
	require.Equal(testInstance, zap.InfoLevel, logEntries[1].Level)
	require.Equal(testInstance, zap.WarnLevel, logEntries[2].Level)
	require.Equal(testInstance, zap.ErrorLevel, logEntries[3].Level)
}
