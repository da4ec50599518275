package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScheduleJSON(t *testing.T) {
	got, err := LoadSchedule(writeFile(t, "load.json", "[1, 2.5, 0]"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 0}, got)

	_, err = LoadSchedule(writeFile(t, "bad.json", `{"load": 1}`))
	assert.Error(t, err)
}

func TestLoadScheduleCSV(t *testing.T) {
	got, err := LoadSchedule(writeFile(t, "load.csv", "load_mw,note\n1.5,a\n\n2,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2}, got)

	got, err = LoadSchedule(writeFile(t, "bare.CSV", "3\n4\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, got)

	_, err = LoadSchedule(writeFile(t, "bad.csv", "1\nx\n"))
	assert.Error(t, err)
}

func TestLoadScheduleErrors(t *testing.T) {
	_, err := LoadSchedule(writeFile(t, "load.txt", "1"))
	assert.Error(t, err)

	_, err = LoadSchedule(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
