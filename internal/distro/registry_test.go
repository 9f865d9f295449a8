package distro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, id := range []ID{Alpine, Ubuntu} {
		p, err := Get(id)
		require.NoError(t, err, "Get(%q)", id)
		assert.Equal(t, id, p.ID())
	}

	for _, id := range []ID{"", "debian", "ALPINE"} {
		_, err := Get(id)
		var unknown *ErrUnknownDistro
		require.True(t, errors.As(err, &unknown), "Get(%q) should fail with ErrUnknownDistro, got %v", id, err)
		assert.Equal(t, id, unknown.ID)
	}
}

func TestDefault(t *testing.T) {
	assert.Equal(t, Alpine, DefaultID())

	p, err := GetDefault()
	require.NoError(t, err)
	assert.Equal(t, Alpine, p.ID())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    ID
		wantErr bool
	}{
		{"alpine", Alpine, false},
		{"Ubuntu", Ubuntu, false},
		{"  ubuntu\n", Ubuntu, false},
		{"", "", true},
		{"arch", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenuOrder(t *testing.T) {
	assert.Equal(t, []ID{Alpine, Ubuntu}, List())

	providers := ListProviders()
	require.Len(t, providers, 2)
	assert.Equal(t, DefaultDistro, providers[0].ID(), "default distro is listed first")
}

func TestIsRegistered(t *testing.T) {
	assert.True(t, IsRegistered(Alpine))
	assert.True(t, IsRegistered(Ubuntu))
	assert.False(t, IsRegistered("rocky"))
}

func TestErrUnknownDistroMessage(t *testing.T) {
	err := &ErrUnknownDistro{ID: "gentoo"}
	assert.Equal(t, `unknown distro "gentoo" (available: alpine, ubuntu)`, err.Error())
}

func TestProvidersAreComplete(t *testing.T) {
	for _, p := range ListProviders() {
		t.Run(string(p.ID()), func(t *testing.T) {
			assert.NotEmpty(t, p.Name())
			assert.NotEmpty(t, p.Version())
			assert.NotEmpty(t, p.Provisioning())

			archs := p.SupportedArchs()
			require.NotEmpty(t, archs)
			for _, arch := range archs {
				assert.True(t, p.SupportsArch(arch), "SupportsArch(%q)", arch)
				rootfs, err := p.Rootfs(arch)
				require.NoError(t, err)
				assert.NotEmpty(t, rootfs.URL)
				assert.NotEmpty(t, rootfs.Filename)
			}
		})
	}
}
