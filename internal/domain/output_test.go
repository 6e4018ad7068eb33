package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckOutputDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CheckOutputDir(dir))

	require.ErrorIs(t, CheckOutputDir(filepath.Join(dir, "absent")), ErrOutputDir)

	file := filepath.Join(dir, "chart.png")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	require.ErrorIs(t, CheckOutputDir(file), ErrOutputDir)
}
