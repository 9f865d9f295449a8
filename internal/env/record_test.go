package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFileRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".lenv")
	f := NewRecordFile(dir)

	assert.False(t, f.Exists())
	assert.Equal(t, filepath.Join(dir, "config.json"), f.Path())

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.Save(&Record{InstanceName: "lenv-demo-0123abcd", Distro: "alpine", CreatedAt: created}))
	assert.True(t, f.Exists())

	rec, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "lenv-demo-0123abcd", rec.InstanceName)
	assert.Equal(t, "alpine", rec.Distro)
	assert.True(t, created.Equal(rec.CreatedAt))

	_, err = os.Stat(f.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestRecordFileFormat(t *testing.T) {
	dir := t.TempDir()
	f := NewRecordFile(dir)
	require.NoError(t, f.Save(&Record{
		InstanceName: "lenv-demo-0123abcd",
		Distro:       "ubuntu",
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}))

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"instance_name": "lenv-demo-0123abcd",
		"distro": "ubuntu",
		"created_at": "2024-03-01T12:00:00Z"
	}`, string(data))
	assert.Contains(t, string(data), "\n  \"distro\"", "record should be indented")
}

func TestRecordFileLoadErrors(t *testing.T) {
	dir := t.TempDir()
	f := NewRecordFile(dir)

	_, err := f.Load()
	assert.Error(t, err, "missing record")

	require.NoError(t, os.WriteFile(f.Path(), []byte("{not json"), 0644))
	_, err = f.Load()
	assert.ErrorContains(t, err, "parse record")
}
