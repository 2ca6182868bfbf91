// Package dependencies resolves default implementations for fleet service collaborators.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/forksync/internal/execshell"
	"github.com/temirov/forksync/internal/fleet"
	"github.com/temirov/forksync/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
//
// When humanReadableLogging is enabled, command lifecycle events are mirrored
// to a console event logger in addition to structured logging.
func ResolveGitExecutor(existing fleet.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (fleet.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing fleet.FileSystem) fleet.FileSystem {
	if existing != nil {
		return existing
	}
	return fleet.OSFileSystem{}
}
