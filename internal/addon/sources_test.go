package addon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLSourceResolver_Resolve(t *testing.T) {
	tests := []struct {
		base    string
		locator string
		want    string
	}{
		{"http://192.168.178.20:8080/media/", "s01e01.mkv", "http://192.168.178.20:8080/media/s01e01.mkv"},
		{"http://192.168.178.20:8080/media", "show/s01e01.mkv", "http://192.168.178.20:8080/media/show/s01e01.mkv"},
		{"https://cdn.example.com", "/film/film.mkv", "https://cdn.example.com/film/film.mkv"},
		{"http://host/media/", "My Show/S01 E01.mkv", "http://host/media/My%20Show/S01%20E01.mkv"},
	}
	for _, tt := range tests {
		r, err := NewURLSourceResolver(tt.base)
		require.NoError(t, err)
		got, err := r.Resolve(tt.locator)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "base %q locator %q", tt.base, tt.locator)
	}
}

func TestNewURLSourceResolver_rejects_relative_base(t *testing.T) {
	for _, base := range []string{"", "/media", "media.local/media", "ftp://host/media", "http://"} {
		_, err := NewURLSourceResolver(base)
		assert.Error(t, err, "base %q", base)
	}
}
