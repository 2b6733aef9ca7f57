// Package export writes the catalogue's machine-readable side
// artifacts and loads merge batches supplied by external tooling. The
// artifacts mirror the working set exactly and are rewritten in full on
// every run; nothing here is updated incrementally.
package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/logging"
)

// Format selects the encoding of an export artifact.
type Format string

const (
	// FormatJSON is the default interchange encoding.
	FormatJSON Format = "json"
	// FormatYAML is an alternative encoding for human inspection.
	FormatYAML Format = "yaml"
)

// Base names of the side artifacts; the extension follows the format.
const (
	ApplicationsBase = "applications"
	TagsBase         = "tags"
)

const filePermissions = 0o644

// Marshal encodes data in the given format. JSON output is indented
// with four spaces, keeps non-ASCII text unescaped, and ends with a
// newline, so the artifacts diff cleanly under version control.
func Marshal(data any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.MarshalWithOptions(data,
			yaml.Indent(2),
			yaml.IndentSequence(false),
		)
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(data); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewValidationError("format", string(format), "must be json or yaml")
	}
}

// WriteApplications writes the application export into dir and returns
// the written path.
func WriteApplications(dir string, apps []catalog.Application, format Format) (string, error) {
	path := filepath.Join(dir, ApplicationsBase+"."+extension(format))
	data, err := Marshal(apps, format)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	logging.Info().Str("path", path).Int("applications", len(apps)).Msg("Wrote application export")
	return path, nil
}

// WriteTags writes the tag export into dir and returns the written path.
func WriteTags(dir string, counts []catalog.TagCount, format Format) (string, error) {
	path := filepath.Join(dir, TagsBase+"."+extension(format))
	data, err := Marshal(counts, format)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	logging.Info().Str("path", path).Int("tags", len(counts)).Msg("Wrote tag export")
	return path, nil
}

// WriteDocument writes the rendered catalogue document atomically.
func WriteDocument(path, content string) error {
	return writeFileAtomic(path, []byte(content))
}

// LoadBatch reads a merge-input file: a JSON list of candidate
// applications in the same shape as the application export.
func LoadBatch(path string) ([]catalog.Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var batch []catalog.Application
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, errors.NewParseError("json", path, "input must be a list of applications", err)
	}

	logging.Info().Str("path", path).Int("entries", len(batch)).Msg("Loaded merge batch")
	return batch, nil
}

// extension maps a format to its file extension.
func extension(format Format) string {
	if format == FormatYAML {
		return "yaml"
	}
	return "json"
}

// writeFileAtomic writes to a temp file in the target directory and
// renames it into place, so readers never observe a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
