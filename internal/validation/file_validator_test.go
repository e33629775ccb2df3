package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdbcli/internal/errors"
	"tmdbcli/internal/shared/testutil"
)

func TestFileValidator_ValidateFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantErr   bool
	}{
		{
			name: "readable file",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, "movies.csv", "id\n1\n")
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr: true,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: true,
		},
		{
			name: "empty file",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, "empty.csv", "")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			err := NewFileValidator(logger).ValidateFile(tt.setupFunc(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrIO)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileValidator_ValidateCSVFile(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	require.NoError(t, v.ValidateCSVFile(testutil.WriteFile(t, "movies.csv", "id\n")))
	assert.False(t, handler.ContainsMessage("Dataset does not have a .csv extension"))

	path := filepath.Join(t.TempDir(), "movies.txt")
	require.NoError(t, os.WriteFile(path, []byte("id\n"), 0644))
	require.NoError(t, v.ValidateCSVFile(path))
	assert.True(t, handler.ContainsMessage("Dataset does not have a .csv extension"))
}
