package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/appdex/appdex/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "application",
			ID:       "jq",
		}
		assert.Equal(t, `application "jq" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("tag", "JSON")
		assert.Equal(t, `tag "JSON" not found`, err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "name",
			Index:   -1,
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field name: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("with batch index", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "name",
			Index:   3,
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for entry 3, field name: cannot be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("name", "", "cannot be empty")
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestMalformedDocumentError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := pkgerrors.NewMalformedDocumentError("README.md", "List of application", "section heading missing")
		assert.Equal(t, "malformed document README.md: section heading missing", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrMalformedDocument))
		assert.True(t, pkgerrors.IsMalformedDocument(err))
	})

	t.Run("without path", func(t *testing.T) {
		err := &pkgerrors.MalformedDocumentError{Message: "empty document"}
		assert.Equal(t, "malformed document: empty document", err.Error())
	})
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected token")

	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "json",
			File:    "batch.json",
			Line:    12,
			Message: "unexpected token",
			Err:     base,
		}
		assert.Equal(t, "parse error in json at batch.json:12: unexpected token", err.Error())
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapParse("json", "batch.json", base)
		assert.ErrorContains(t, err, "batch.json")
		assert.Nil(t, pkgerrors.WrapParse("json", "batch.json", nil))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "README.md", base)
	assert.ErrorContains(t, err, "IO error during write of README.md")
	assert.Equal(t, base, errors.Unwrap(err))
	assert.Nil(t, pkgerrors.WrapIO("write", "README.md", nil))
}

func TestMergeError(t *testing.T) {
	base := errors.New("2 entries invalid")
	err := pkgerrors.NewMergeError("batch.json", 2, base)
	assert.ErrorContains(t, err, "rejected 2 entries")
	assert.Equal(t, base, errors.Unwrap(err))
}
