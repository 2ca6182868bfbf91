// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName identifies the shared dry-run flag.
	DryRunFlagName = "dry-run"
	// RemoteFlagName identifies the shared push-remote override flag.
	RemoteFlagName = "remote"

	dryRunFlagUsageConstant = "Log mutating git commands instead of executing them"
	remoteFlagUsageConstant = "Override the remote that receives pushes"
)

// ExecutionFlags captures the resolved values of the shared execution flags.
type ExecutionFlags struct {
	DryRun    bool
	DryRunSet bool
	Remote    string
	RemoteSet bool
}

// BindExecutionFlags attaches the standardized execution flags to the provided command.
func BindExecutionFlags(command *cobra.Command) {
	if command == nil {
		return
	}

	flagSet := command.Flags()
	if flagSet.Lookup(DryRunFlagName) == nil {
		flagSet.Bool(DryRunFlagName, false, dryRunFlagUsageConstant)
	}
	if flagSet.Lookup(RemoteFlagName) == nil {
		flagSet.String(RemoteFlagName, "", remoteFlagUsageConstant)
	}
}

// ResolveExecutionFlags reads the standardized execution flags from the command.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlags, bool) {
	if command == nil {
		return ExecutionFlags{}, false
	}

	flagSet := command.Flags()
	resolvedFlags := ExecutionFlags{}
	flagsAvailable := false

	if dryRunFlag := flagSet.Lookup(DryRunFlagName); dryRunFlag != nil {
		flagsAvailable = true
		resolvedFlags.DryRunSet = dryRunFlag.Changed
		if dryRunValue, dryRunError := flagSet.GetBool(DryRunFlagName); dryRunError == nil {
			resolvedFlags.DryRun = dryRunValue
		}
	}

	if remoteFlag := flagSet.Lookup(RemoteFlagName); remoteFlag != nil {
		flagsAvailable = true
		resolvedFlags.RemoteSet = remoteFlag.Changed
		if remoteValue, remoteError := flagSet.GetString(RemoteFlagName); remoteError == nil {
			resolvedFlags.Remote = strings.TrimSpace(remoteValue)
		}
	}

	return resolvedFlags, flagsAvailable
}

// FlagChanged reports whether the named flag was explicitly provided on the command line.
func FlagChanged(flagSet *pflag.FlagSet, flagName string) bool {
	if flagSet == nil {
		return false
	}
	return flagSet.Changed(flagName)
}
