package fastforward

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/forksync/internal/execshell"
	"github.com/temirov/forksync/internal/fleet"
)

// Verdict categorizes the outcome of synchronizing one repository.
type Verdict string

// Synchronization verdicts; exactly one is recorded per repository per run.
const (
	VerdictFastForwarded    Verdict = "Fast-forwarded"
	VerdictAheadOfUpstream  Verdict = "ahead"
	VerdictAlreadyDiverged  Verdict = "diverged"
	VerdictNoUpstreamRemote Verdict = "no_upstream"
	VerdictNoUpstreamBranch Verdict = "no_upstream_branch"
	VerdictFolderMissing    Verdict = "folder_missing"
	VerdictCommandFailed    Verdict = "command_failed"
)

const (
	gitExecutorMissingMessageConstant    = "git executor not configured"
	fileSystemMissingMessageConstant     = "file system not configured"
	reporterMissingMessageConstant       = "reporter not configured"
	rootDirectoryRequiredMessageConstant = "root directory must be provided"
	descriptorsRequiredMessageConstant   = "repository descriptors must be provided"

	gitRemoteSubcommandConstant            = "remote"
	gitRevParseSubcommandConstant          = "rev-parse"
	gitAbbreviatedReferenceFlagConstant    = "--abbrev-ref"
	gitHeadReferenceConstant               = "HEAD"
	gitFetchSubcommandConstant             = "fetch"
	gitBranchSubcommandConstant            = "branch"
	gitRemoteBranchesFlagConstant          = "-r"
	gitMergeBaseSubcommandConstant         = "merge-base"
	gitMergeSubcommandConstant             = "merge"
	gitFastForwardOnlyFlagConstant         = "--ff-only"
	gitPushSubcommandConstant              = "push"
	remoteBranchSeparatorConstant          = "/"
	placeholderBranchLabelConstant         = "<unknown-branch>"
	remoteListingFailureTemplateConstant   = "failed to list remotes: %w"
	branchDetectionFailureTemplateConstant = "failed to detect current branch: %w"
	upstreamFetchFailureTemplateConstant   = "failed to fetch %s: %w"
	branchListingFailureTemplateConstant   = "failed to list remote branches: %w"
	mergeBaseFailureTemplateConstant       = "failed to compute merge base with %s: %w"
	commitLookupFailureTemplateConstant    = "failed to resolve %s: %w"
	fastForwardFailureTemplateConstant     = "failed to fast-forward to %s: %w"
	pushFailureTemplateConstant            = "failed to push %s to %s: %w"

	repositoryHeaderTemplateConstant     = "\n=== %s @ %s ===\n"
	folderMissingMessageTemplateConstant = "[SKIP] %s: folder not found %s\n"
	noUpstreamRemoteMessageConstant      = "no upstream remote, skipping\n"
	noUpstreamBranchTemplateConstant     = "upstream branch %q does not exist\n"
	fastForwardPossibleMessageConstant   = "fast-forward possible, merging upstream into local\n"
	fastForwardedMessageConstant         = "fast-forwarded and pushed to origin\n"
	aheadOfUpstreamMessageConstant       = "local branch is ahead of upstream, cannot fast-forward\n"
	alreadyDivergedMessageConstant       = "local and upstream have diverged, manual merge or rebase required\n"
	commandFailedMessageTemplateConstant = "[ERROR] %s: %v\n"
	simulatedCommandTemplateConstant     = "[DRY-RUN] would run: git %s\n"

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

// Dependencies enumerates external collaborators required for synchronization.
type Dependencies struct {
	GitExecutor fleet.GitExecutor
	FileSystem  fleet.FileSystem
	Reporter    fleet.Reporter
}

// Options configures one synchronization run across the fleet.
type Options struct {
	RootDirectory      string
	Descriptors        *fleet.DescriptorSet
	DryRun             bool
	UpstreamRemoteName string
	OriginRemoteName   string
}

// RepositoryOutcome captures the verdict for a single repository.
type RepositoryOutcome struct {
	Descriptor fleet.RepositoryDescriptor
	FolderPath string
	Verdict    Verdict
	Failure    error
}

// Service walks the fleet and fast-forwards each repository that safely can be.
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

// Synchronize visits every descriptor in order and returns one outcome per repository.
//
// A failing git command marks that repository with VerdictCommandFailed and the
// run continues with the next repository; expected absences (missing folder,
// missing remote or branch) are ordinary verdicts, never errors.
func (service *Service) Synchronize(executionContext context.Context, options Options) ([]RepositoryOutcome, error) {
	trimmedRootDirectory := strings.TrimSpace(options.RootDirectory)
	if len(trimmedRootDirectory) == 0 {
		return nil, ErrRootDirectoryRequired
	}
	if options.Descriptors == nil || options.Descriptors.Len() == 0 {
		return nil, ErrDescriptorsRequired
	}

	upstreamRemoteName := strings.TrimSpace(options.UpstreamRemoteName)
	if len(upstreamRemoteName) == 0 {
		upstreamRemoteName = fleet.UpstreamRemoteNameConstant
	}
	originRemoteName := strings.TrimSpace(options.OriginRemoteName)
	if len(originRemoteName) == 0 {
		originRemoteName = fleet.OriginRemoteNameConstant
	}

	outcomes := make([]RepositoryOutcome, 0, options.Descriptors.Len())
	for _, descriptor := range options.Descriptors.Descriptors() {
		folderPath := filepath.Join(trimmedRootDirectory, descriptor.FolderName)

		if _, statError := service.fileSystem.Stat(folderPath); statError != nil {
			service.reporter.Printf(folderMissingMessageTemplateConstant, descriptor.Name, folderPath)
			outcomes = append(outcomes, RepositoryOutcome{Descriptor: descriptor, FolderPath: folderPath, Verdict: VerdictFolderMissing})
			continue
		}

		service.reporter.Printf(repositoryHeaderTemplateConstant, descriptor.Name, folderPath)

		verdict, synchronizationError := service.synchronizeRepository(executionContext, folderPath, options.DryRun, upstreamRemoteName, originRemoteName)
		if synchronizationError != nil {
			service.reporter.Printf(commandFailedMessageTemplateConstant, descriptor.Name, synchronizationError)
			outcomes = append(outcomes, RepositoryOutcome{Descriptor: descriptor, FolderPath: folderPath, Verdict: VerdictCommandFailed, Failure: synchronizationError})
			continue
		}

		outcomes = append(outcomes, RepositoryOutcome{Descriptor: descriptor, FolderPath: folderPath, Verdict: verdict})
	}

	return outcomes, nil
}

func (service *Service) synchronizeRepository(executionContext context.Context, folderPath string, dryRun bool, upstreamRemoteName string, originRemoteName string) (Verdict, error) {
	remoteListing, remoteListingError := service.executeRead(executionContext, folderPath, gitRemoteSubcommandConstant)
	if remoteListingError != nil {
		return VerdictCommandFailed, fmt.Errorf(remoteListingFailureTemplateConstant, remoteListingError)
	}
	if !containsLine(remoteListing, upstreamRemoteName) {
		service.reporter.Printf(noUpstreamRemoteMessageConstant)
		return VerdictNoUpstreamRemote, nil
	}

	currentBranch, branchDetectionError := service.executeRead(executionContext, folderPath, gitRevParseSubcommandConstant, gitAbbreviatedReferenceFlagConstant, gitHeadReferenceConstant)
	if branchDetectionError != nil {
		return VerdictCommandFailed, fmt.Errorf(branchDetectionFailureTemplateConstant, branchDetectionError)
	}
	if len(currentBranch) == 0 {
		currentBranch = placeholderBranchLabelConstant
	}

	if _, fetchError := service.executeRead(executionContext, folderPath, gitFetchSubcommandConstant, upstreamRemoteName); fetchError != nil {
		return VerdictCommandFailed, fmt.Errorf(upstreamFetchFailureTemplateConstant, upstreamRemoteName, fetchError)
	}

	upstreamBranch := upstreamRemoteName + remoteBranchSeparatorConstant + currentBranch

	remoteBranchListing, branchListingError := service.executeRead(executionContext, folderPath, gitBranchSubcommandConstant, gitRemoteBranchesFlagConstant)
	if branchListingError != nil {
		return VerdictCommandFailed, fmt.Errorf(branchListingFailureTemplateConstant, branchListingError)
	}
	if !containsLine(remoteBranchListing, upstreamBranch) {
		service.reporter.Printf(noUpstreamBranchTemplateConstant, upstreamBranch)
		return VerdictNoUpstreamBranch, nil
	}

	mergeBase, mergeBaseError := service.executeRead(executionContext, folderPath, gitMergeBaseSubcommandConstant, gitHeadReferenceConstant, upstreamBranch)
	if mergeBaseError != nil {
		return VerdictCommandFailed, fmt.Errorf(mergeBaseFailureTemplateConstant, upstreamBranch, mergeBaseError)
	}
	headCommit, headLookupError := service.executeRead(executionContext, folderPath, gitRevParseSubcommandConstant, gitHeadReferenceConstant)
	if headLookupError != nil {
		return VerdictCommandFailed, fmt.Errorf(commitLookupFailureTemplateConstant, gitHeadReferenceConstant, headLookupError)
	}
	upstreamCommit, upstreamLookupError := service.executeRead(executionContext, folderPath, gitRevParseSubcommandConstant, upstreamBranch)
	if upstreamLookupError != nil {
		return VerdictCommandFailed, fmt.Errorf(commitLookupFailureTemplateConstant, upstreamBranch, upstreamLookupError)
	}

	switch {
	case mergeBase == headCommit:
		service.reporter.Printf(fastForwardPossibleMessageConstant)
		if _, mergeError := service.executeMutation(executionContext, folderPath, dryRun, gitMergeSubcommandConstant, gitFastForwardOnlyFlagConstant, upstreamBranch); mergeError != nil {
			return VerdictCommandFailed, fmt.Errorf(fastForwardFailureTemplateConstant, upstreamBranch, mergeError)
		}
		if _, pushError := service.executeMutation(executionContext, folderPath, dryRun, gitPushSubcommandConstant, originRemoteName, currentBranch); pushError != nil {
			return VerdictCommandFailed, fmt.Errorf(pushFailureTemplateConstant, currentBranch, originRemoteName, pushError)
		}
		service.reporter.Printf(fastForwardedMessageConstant)
		return VerdictFastForwarded, nil
	case mergeBase == upstreamCommit:
		service.reporter.Printf(aheadOfUpstreamMessageConstant)
		return VerdictAheadOfUpstream, nil
	default:
		service.reporter.Printf(alreadyDivergedMessageConstant)
		return VerdictAlreadyDiverged, nil
	}
}

// executeRead issues a classification command; reads always execute, even in dry-run mode.
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

func containsLine(listing string, expected string) bool {
	for _, line := range strings.Split(listing, "\n") {
		if strings.TrimSpace(line) == expected {
			return true
		}
	}
	return false
}
