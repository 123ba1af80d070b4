package authors

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/onlinelabs/website/internal/models"
)

//go:embed authors.yaml
var embeddedDirectory []byte

type directoryFile struct {
	Profiles []models.AuthorProfile `yaml:"profiles"`
	Aliases  map[string]string      `yaml:"aliases"`
	Former   []string               `yaml:"former"`
	Avatars  map[string]string      `yaml:"avatars"`
}

// LoadConfig loads the directory from AUTHORS_CONFIG_PATH when set, falling
// back to the embedded authors.yaml.
func LoadConfig() (*Directory, error) {
	if path := os.Getenv("AUTHORS_CONFIG_PATH"); path != "" {
		dir, err := LoadDirectory(path)
		if err == nil {
			slog.Info("Loaded author directory from external file", "path", path)
			return dir, nil
		}
		slog.Warn("Failed to load external author directory, using embedded", "path", path, "error", err)
	}
	return LoadDirectoryFromBytes(embeddedDirectory)
}

// LoadDirectory loads an author directory from the specified YAML file.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read author directory file: %w", err)
	}
	return LoadDirectoryFromBytes(data)
}

// LoadDirectoryFromBytes parses and validates a YAML author directory.
func LoadDirectoryFromBytes(data []byte) (*Directory, error) {
	var f directoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse author directory YAML: %w", err)
	}
	return newDirectory(f)
}

// DefaultDirectory returns the embedded directory. It panics if the embedded
// file is invalid.
func DefaultDirectory() *Directory {
	dir, err := LoadDirectoryFromBytes(embeddedDirectory)
	if err != nil {
		panic(fmt.Sprintf("authors: embedded directory invalid: %v", err))
	}
	return dir
}
