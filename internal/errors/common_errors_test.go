package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{"missing input error type", ErrTypeMissingInput, "MISSING_INPUT"},
		{"schema error type", ErrTypeSchema, "SCHEMA"},
		{"parsing error type", ErrTypeParsing, "PARSING"},
		{"storage error type", ErrTypeStorage, "STORAGE"},
		{"validation error type", ErrTypeValidation, "VALIDATION"},
		{"not found error type", ErrTypeNotFound, "NOT_FOUND"},
		{"config error type", ErrTypeConfig, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewAppValidationError("bad level")
		assert.Equal(t, "[VALIDATION] bad level", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		err := NewStorageError("write workbook", errors.New("disk full"))
		assert.Equal(t, "[STORAGE] write workbook: disk full", err.Error())
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewParsingError("read csv", cause)

	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewNotFoundError("export file").
		WithContext("path", "/tmp/export.csv").
		WithContext("flow", "export")

	assert.Equal(t, "[NOT_FOUND] export file not found", err.Error())
	assert.Equal(t, "/tmp/export.csv", err.Context["path"])
	assert.Equal(t, "export", err.Context["flow"])
}

func TestNewMissingInputError(t *testing.T) {
	err := NewMissingInputError("import file")

	assert.Equal(t, ErrTypeMissingInput, err.Type)
	assert.True(t, errors.Is(err, ErrMissingInput))
	assert.Equal(t, []string{"import file"}, err.Context["missing"])
	assert.Contains(t, err.Error(), "import file")
}

func TestNewMissingColumnsError(t *testing.T) {
	err := NewMissingColumnsError([]string{"weight", "rial"})

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Equal(t, "[SCHEMA] required columns missing: weight, rial", err.Error())
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{
			name:    "direct match",
			err:     NewSchemaError("bad column", nil),
			errType: ErrTypeSchema,
			want:    true,
		},
		{
			name:    "wrapped with fmt",
			err:     fmt.Errorf("aggregate export data: %w", NewSchemaError("bad column", nil)),
			errType: ErrTypeSchema,
			want:    true,
		},
		{
			name:    "nested app errors",
			err:     NewStorageError("save", NewConfigError("bad path", nil)),
			errType: ErrTypeConfig,
			want:    true,
		},
		{
			name:    "different type",
			err:     NewParsingError("bad csv", nil),
			errType: ErrTypeSchema,
			want:    false,
		},
		{
			name:    "plain error",
			err:     errors.New("plain"),
			errType: ErrTypeSchema,
			want:    false,
		},
		{
			name:    "nil error",
			err:     nil,
			errType: ErrTypeSchema,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}
