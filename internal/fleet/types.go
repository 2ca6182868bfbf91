package fleet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/temirov/forksync/internal/execshell"
)

const (
	// UpstreamRemoteNameConstant identifies the default remote forks pull updates from.
	UpstreamRemoteNameConstant = "upstream"
	// OriginRemoteNameConstant identifies the default remote forks push to.
	OriginRemoteNameConstant = "origin"

	descriptorNameFieldConstant      = "name"
	descriptorRemoteURLFieldConstant = "git"
	descriptorFolderFieldConstant    = "folder"

	missingFieldTemplateConstant             = "repository %s: missing required field %q"
	duplicateIdentifierTemplateConstant      = "repository %s: duplicate identifier"
	identifierRequiredMessageConstant        = "repository identifier must be provided"
	unknownRepositoryIdentifierLabelConstant = "<unknown>"
)

// ErrIdentifierRequired indicates a descriptor was supplied without an identifier.
var ErrIdentifierRequired = errors.New(identifierRequiredMessageConstant)

// RepositoryDescriptor describes one repository of the fleet.
//
// Descriptors are constructed once at startup and are read-only afterwards.
type RepositoryDescriptor struct {
	Identifier string
	Name       string
	RemoteURL  string
	FolderName string
}

// MissingFieldError reports a descriptor lacking one of its required fields.
type MissingFieldError struct {
	Identifier string
	FieldName  string
}

// Error describes the missing field.
func (missingField MissingFieldError) Error() string {
	identifier := strings.TrimSpace(missingField.Identifier)
	if len(identifier) == 0 {
		identifier = unknownRepositoryIdentifierLabelConstant
	}
	return fmt.Sprintf(missingFieldTemplateConstant, identifier, missingField.FieldName)
}

// DuplicateIdentifierError reports two descriptors sharing an identifier.
type DuplicateIdentifierError struct {
	Identifier string
}

// Error describes the duplicated identifier.
func (duplicate DuplicateIdentifierError) Error() string {
	return fmt.Sprintf(duplicateIdentifierTemplateConstant, duplicate.Identifier)
}

// Validate confirms every required descriptor field is present and non-empty.
func (descriptor RepositoryDescriptor) Validate() error {
	if len(strings.TrimSpace(descriptor.Identifier)) == 0 {
		return ErrIdentifierRequired
	}
	if len(strings.TrimSpace(descriptor.Name)) == 0 {
		return MissingFieldError{Identifier: descriptor.Identifier, FieldName: descriptorNameFieldConstant}
	}
	if len(strings.TrimSpace(descriptor.RemoteURL)) == 0 {
		return MissingFieldError{Identifier: descriptor.Identifier, FieldName: descriptorRemoteURLFieldConstant}
	}
	if len(strings.TrimSpace(descriptor.FolderName)) == 0 {
		return MissingFieldError{Identifier: descriptor.Identifier, FieldName: descriptorFolderFieldConstant}
	}
	return nil
}

// DescriptorSet is an insertion-ordered collection of repository descriptors keyed by identifier.
type DescriptorSet struct {
	orderedDescriptors []RepositoryDescriptor
	identifierIndex    map[string]int
}

// NewDescriptorSet constructs an empty descriptor set.
func NewDescriptorSet() *DescriptorSet {
	return &DescriptorSet{identifierIndex: map[string]int{}}
}

// Append validates the descriptor and adds it to the end of the set.
func (set *DescriptorSet) Append(descriptor RepositoryDescriptor) error {
	if validationError := descriptor.Validate(); validationError != nil {
		return validationError
	}
	if _, identifierExists := set.identifierIndex[descriptor.Identifier]; identifierExists {
		return DuplicateIdentifierError{Identifier: descriptor.Identifier}
	}
	set.identifierIndex[descriptor.Identifier] = len(set.orderedDescriptors)
	set.orderedDescriptors = append(set.orderedDescriptors, descriptor)
	return nil
}

// Descriptors returns the descriptors in insertion order.
func (set *DescriptorSet) Descriptors() []RepositoryDescriptor {
	duplicated := make([]RepositoryDescriptor, len(set.orderedDescriptors))
	copy(duplicated, set.orderedDescriptors)
	return duplicated
}

// Lookup retrieves a descriptor by identifier.
func (set *DescriptorSet) Lookup(identifier string) (RepositoryDescriptor, bool) {
	position, identifierExists := set.identifierIndex[identifier]
	if !identifierExists {
		return RepositoryDescriptor{}, false
	}
	return set.orderedDescriptors[position], true
}

// Len reports the number of descriptors in the set.
func (set *DescriptorSet) Len() int {
	return len(set.orderedDescriptors)
}

// GitExecutor exposes the subset of shell execution used by fleet services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes filesystem operations required by fleet services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}

// MutationOutcome distinguishes a simulated mutating command from an executed one.
type MutationOutcome struct {
	Simulated bool
	Output    string
}
