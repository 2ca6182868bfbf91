package fleet

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestPathRequiredMessageConstant = "manifest path must be provided"
	manifestEmptyMessageConstant        = "manifest must define at least one repository"
	manifestLoadErrorTemplateConstant   = "failed to load fleet manifest: %w"
	manifestParseErrorTemplateConstant  = "failed to parse fleet manifest: %w"
)

// ErrManifestPathRequired indicates LoadManifest received an empty path.
var ErrManifestPathRequired = errors.New(manifestPathRequiredMessageConstant)

// ErrManifestEmpty indicates the manifest declared no repositories.
var ErrManifestEmpty = errors.New(manifestEmptyMessageConstant)

type manifestDocument struct {
	Repositories []manifestEntry `yaml:"repositories"`
}

type manifestEntry struct {
	Identifier string `yaml:"id"`
	Name       string `yaml:"name"`
	RemoteURL  string `yaml:"git"`
	FolderName string `yaml:"folder"`
}

// LoadManifest reads the ordered fleet manifest from disk.
//
// The manifest is a YAML sequence so that document order determines
// processing and reporting order. Any missing required field is a hard
// configuration error, not a skippable warning.
func LoadManifest(filePath string) (*DescriptorSet, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, ErrManifestPathRequired
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(manifestLoadErrorTemplateConstant, readError)
	}

	var document manifestDocument
	if unmarshalError := yaml.Unmarshal(contentBytes, &document); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}

	if len(document.Repositories) == 0 {
		return nil, ErrManifestEmpty
	}

	descriptorSet := NewDescriptorSet()
	for _, entry := range document.Repositories {
		descriptor := RepositoryDescriptor{
			Identifier: strings.TrimSpace(entry.Identifier),
			Name:       strings.TrimSpace(entry.Name),
			RemoteURL:  strings.TrimSpace(entry.RemoteURL),
			FolderName: strings.TrimSpace(entry.FolderName),
		}
		if appendError := descriptorSet.Append(descriptor); appendError != nil {
			return nil, appendError
		}
	}

	return descriptorSet, nil
}
