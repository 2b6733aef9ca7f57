package appdex

import (
	"os"
	"path/filepath"

	"github.com/appdex/appdex/pkg/errors"
)

// DefaultDocument is the catalogue document used when no path is given.
const DefaultDocument = "README.md"

// config holds the resolved settings for an Appdex instance.
type config struct {
	documentPath string
	exportDir    string
	readFile     func(string) ([]byte, error)
}

func defaultConfig() *config {
	return &config{
		documentPath: DefaultDocument,
		exportDir:    ".",
		readFile:     os.ReadFile,
	}
}

// Option configures an Appdex instance.
type Option func(*config) error

// WithDocument sets the path of the catalogue document. Exports default
// to the document's directory unless WithExportDir overrides it.
func WithDocument(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("document", path, "path cannot be empty")
		}
		c.documentPath = path
		c.exportDir = filepath.Dir(path)
		return nil
	}
}

// WithExportDir sets the directory where side artifacts are written.
func WithExportDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("export_dir", dir, "directory cannot be empty")
		}
		c.exportDir = dir
		return nil
	}
}

// WithFileReader replaces the function used to read the document.
// Intended for tests.
func WithFileReader(read func(string) ([]byte, error)) Option {
	return func(c *config) error {
		if read == nil {
			return errors.NewValidationError("file_reader", nil, "reader cannot be nil")
		}
		c.readFile = read
		return nil
	}
}
