package releasetag

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/forksync/internal/execshell"
	"github.com/temirov/forksync/internal/fleet"
)

const (
	gitExecutorMissingMessageConstant    = "git executor not configured"
	fileSystemMissingMessageConstant     = "file system not configured"
	reporterMissingMessageConstant       = "reporter not configured"
	rootDirectoryRequiredMessageConstant = "root directory must be provided"
	descriptorsRequiredMessageConstant   = "repository descriptors must be provided"
	tagNameRequiredMessageConstant       = "tag name must be provided"

	gitRevParseSubcommandConstant       = "rev-parse"
	gitAbbreviatedReferenceFlagConstant = "--abbrev-ref"
	gitHeadReferenceConstant            = "HEAD"
	gitTagSubcommandConstant            = "tag"
	gitPushSubcommandConstant           = "push"

	folderNotFoundTemplateConstant         = "repository %s: folder not found %s"
	branchDetectionFailureTemplateConstant = "repository %s: failed to detect current branch: %w"
	tagCreationFailureTemplateConstant     = "repository %s: failed to create tag %q: %w"
	tagPushFailureTemplateConstant         = "repository %s: failed to push tag %q to %s: %w"

	repositorySummaryTemplateConstant = "%s: %s @ %s @ %s\n"
	simulatedCommandTemplateConstant  = "[DRY-RUN] would run: git %s\n"

	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrReporterNotConfigured indicates the reporter dependency was missing.
var ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)

// ErrRootDirectoryRequired indicates the root directory option was empty.
var ErrRootDirectoryRequired = errors.New(rootDirectoryRequiredMessageConstant)

// ErrDescriptorsRequired indicates no repository descriptors were supplied.
var ErrDescriptorsRequired = errors.New(descriptorsRequiredMessageConstant)

// ErrTagNameRequired indicates the tag name option was empty.
var ErrTagNameRequired = errors.New(tagNameRequiredMessageConstant)

// FolderNotFoundError reports a repository folder missing from disk.
//
// Tagging treats a missing folder as a configuration error that aborts the
// entire run, unlike synchronization which records it and continues.
type FolderNotFoundError struct {
	RepositoryName string
	FolderPath     string
}

// Error describes the missing folder.
func (missing FolderNotFoundError) Error() string {
	return fmt.Sprintf(folderNotFoundTemplateConstant, missing.RepositoryName, missing.FolderPath)
}

// Dependencies enumerates external collaborators required for tagging.
type Dependencies struct {
	GitExecutor fleet.GitExecutor
	FileSystem  fleet.FileSystem
	Reporter    fleet.Reporter
}

// Options configures one tagging run across the fleet.
type Options struct {
	RootDirectory    string
	Descriptors      *fleet.DescriptorSet
	TagName          string
	DryRun           bool
	OriginRemoteName string
}

// Service applies one tag name to every repository in descriptor order.
type Service struct {
	executor   fleet.GitExecutor
	fileSystem fleet.FileSystem
	reporter   fleet.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.Reporter == nil {
		return nil, ErrReporterNotConfigured
	}
	return &Service{
		executor:   dependencies.GitExecutor,
		fileSystem: dependencies.FileSystem,
		reporter:   dependencies.Reporter,
	}, nil
}

// Tag creates and pushes the tag in every repository.
//
// Any missing descriptor field, missing folder, or failing git command aborts
// the whole run immediately; repositories later in the manifest are not
// visited.
func (service *Service) Tag(executionContext context.Context, options Options) error {
	trimmedRootDirectory := strings.TrimSpace(options.RootDirectory)
	if len(trimmedRootDirectory) == 0 {
		return ErrRootDirectoryRequired
	}
	if options.Descriptors == nil || options.Descriptors.Len() == 0 {
		return ErrDescriptorsRequired
	}
	trimmedTagName := strings.TrimSpace(options.TagName)
	if len(trimmedTagName) == 0 {
		return ErrTagNameRequired
	}

	originRemoteName := strings.TrimSpace(options.OriginRemoteName)
	if len(originRemoteName) == 0 {
		originRemoteName = fleet.OriginRemoteNameConstant
	}

	for _, descriptor := range options.Descriptors.Descriptors() {
		if validationError := descriptor.Validate(); validationError != nil {
			return validationError
		}

		folderPath := filepath.Join(trimmedRootDirectory, descriptor.FolderName)
		if _, statError := service.fileSystem.Stat(folderPath); statError != nil {
			return FolderNotFoundError{RepositoryName: descriptor.Name, FolderPath: folderPath}
		}

		currentBranch, branchDetectionError := service.executeRead(executionContext, folderPath, gitRevParseSubcommandConstant, gitAbbreviatedReferenceFlagConstant, gitHeadReferenceConstant)
		if branchDetectionError != nil {
			return fmt.Errorf(branchDetectionFailureTemplateConstant, descriptor.Name, branchDetectionError)
		}

		service.reporter.Printf(repositorySummaryTemplateConstant, descriptor.Name, descriptor.RemoteURL, descriptor.FolderName, currentBranch)

		if _, tagError := service.executeMutation(executionContext, folderPath, options.DryRun, gitTagSubcommandConstant, trimmedTagName); tagError != nil {
			return fmt.Errorf(tagCreationFailureTemplateConstant, descriptor.Name, trimmedTagName, tagError)
		}
		if _, pushError := service.executeMutation(executionContext, folderPath, options.DryRun, gitPushSubcommandConstant, originRemoteName, trimmedTagName); pushError != nil {
			return fmt.Errorf(tagPushFailureTemplateConstant, descriptor.Name, trimmedTagName, originRemoteName, pushError)
		}
	}

	return nil
}

// executeRead issues a display-only command; reads always execute, even in dry-run mode.
func (service *Service) executeRead(executionContext context.Context, workingDirectory string, arguments ...string) (string, error) {
	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// executeMutation issues a repository-mutating command; dry-run logs it without executing.
func (service *Service) executeMutation(executionContext context.Context, workingDirectory string, dryRun bool, arguments ...string) (fleet.MutationOutcome, error) {
	if dryRun {
		service.reporter.Printf(simulatedCommandTemplateConstant, strings.Join(arguments, " "))
		return fleet.MutationOutcome{Simulated: true}, nil
	}

	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	})
	if executionError != nil {
		return fleet.MutationOutcome{}, executionError
	}
	return fleet.MutationOutcome{Output: strings.TrimSpace(executionResult.StandardOutput)}, nil
}
