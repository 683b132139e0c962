package release

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Target
	}{
		{
			name: "simple asset",
			url:  "https://github.com/acme/tool/releases/download/v1.2.0/tool-linux.tar.gz",
			want: Target{Owner: "acme", Repo: "tool", Tag: "v1.2.0", Filename: "tool-linux.tar.gz"},
		},
		{
			name: "non-semver tag",
			url:  "https://github.com/owner/repo/releases/download/nightly-2024.01.31/bundle.zip",
			want: Target{Owner: "owner", Repo: "repo", Tag: "nightly-2024.01.31", Filename: "bundle.zip"},
		},
		{
			name: "filename with embedded characters",
			url:  "https://github.com/o/r/releases/download/v1/tool_1.0+build.7~rc1.deb",
			want: Target{Owner: "o", Repo: "r", Tag: "v1", Filename: "tool_1.0+build.7~rc1.deb"},
		},
		{
			name: "dotted owner and repo",
			url:  "https://github.com/my.org/my.repo/releases/download/v0.1/a.bin",
			want: Target{Owner: "my.org", Repo: "my.repo", Tag: "v0.1", Filename: "a.bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := Parse(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, target)
		})
	}
}

func TestParseInvalidURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"wrong scheme", "http://github.com/acme/tool/releases/download/v1.2.0/tool.tar.gz"},
		{"wrong host", "https://gitlab.com/acme/tool/releases/download/v1.2.0/tool.tar.gz"},
		{"missing filename", "https://github.com/acme/tool/releases/download/v1.2.0"},
		{"missing tag", "https://github.com/acme/tool/releases/download/tool.tar.gz"},
		{"archive URL instead of asset", "https://github.com/acme/tool/archive/v1.2.0.tar.gz"},
		{"extra path segment", "https://github.com/acme/tool/releases/download/v1.2.0/sub/tool.tar.gz"},
		{"release page", "https://github.com/acme/tool/releases/tag/v1.2.0"},
		{"empty string", ""},
		{"not a URL", "tool-linux.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.url)
			require.Error(t, err)

			var patternErr *InvalidURLPatternError
			require.True(t, errors.As(err, &patternErr))
			// The offending URL is carried for diagnostics
			assert.Equal(t, tt.url, patternErr.URL)
		})
	}
}
