package unit

import (
	"encoding/json"
	"errors"
	"ghfetch/release"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetReleaseByTagWithMockServer tests the releases client against a mock API
func TestGetReleaseByTagWithMockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request shape
		assert.Equal(t, "/repos/acme/tool/releases/tags/v1.2.0", r.URL.Path)
		assert.Equal(t, "token tok_abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mockRelease{
			TagName: "v1.2.0",
			Assets: []mockAsset{
				{ID: 555, Name: "tool-linux.tar.gz", Size: 1024},
				{ID: 556, Name: "tool-darwin.tar.gz", Size: 2048},
			},
		})
	}))
	defer server.Close()

	client := release.NewClient(server.URL, "tok_abc")
	rel, err := client.GetReleaseByTag("acme", "tool", "v1.2.0")
	require.NoError(t, err)
	require.NotNil(t, rel)

	assert.Len(t, rel.Assets, 2, "Should have 2 assets")
	assert.Equal(t, int64(555), rel.Assets[0].ID)
	assert.Equal(t, "tool-linux.tar.gz", rel.Assets[0].Name)
}

// TestFindAssetExactMatch verifies exact, case-sensitive filename matching
func TestFindAssetExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mockRelease{
			TagName: "v1.2.0",
			Assets: []mockAsset{
				{ID: 554, Name: "Tool-Linux.tar.gz", Size: 1},
				{ID: 555, Name: "tool-linux.tar.gz", Size: 1},
			},
		})
	}))
	defer server.Close()

	client := release.NewClient(server.URL, "tok_abc")

	// Case matters: the lowercase name must match id 555, not 554
	asset, err := client.FindAsset(release.Target{
		Owner: "acme", Repo: "tool", Tag: "v1.2.0", Filename: "tool-linux.tar.gz",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(555), asset.ID)

	// A name differing only in case is a different asset
	asset, err = client.FindAsset(release.Target{
		Owner: "acme", Repo: "tool", Tag: "v1.2.0", Filename: "Tool-Linux.tar.gz",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(554), asset.ID)

	// No match at all
	_, err = client.FindAsset(release.Target{
		Owner: "acme", Repo: "tool", Tag: "v1.2.0", Filename: "TOOL-LINUX.TAR.GZ",
	})
	var notFound *release.AssetNotFoundError
	require.True(t, errors.As(err, &notFound))
}

// TestGetReleaseByTagAuthRejected verifies auth failures surface as lookup errors
func TestGetReleaseByTagAuthRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	client := release.NewClient(server.URL, "tok_bad")
	_, err := client.GetReleaseByTag("acme", "tool", "v1.2.0")
	require.Error(t, err)

	var lookupErr *release.ReleaseLookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Contains(t, err.Error(), "401")
}

// TestGetReleaseByTagBadJSON verifies decode failures surface as lookup errors
func TestGetReleaseByTagBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := release.NewClient(server.URL, "tok_abc")
	_, err := client.GetReleaseByTag("acme", "tool", "v1.2.0")
	require.Error(t, err)

	var lookupErr *release.ReleaseLookupError
	require.True(t, errors.As(err, &lookupErr))
}

// TestAssetURL verifies the authenticated download endpoint construction
func TestAssetURL(t *testing.T) {
	client := release.NewClient("https://api.github.com/", "tok_abc")
	url := client.AssetURL("acme", "tool", 555)
	assert.Equal(t, "https://api.github.com/repos/acme/tool/releases/assets/555", url)
}
