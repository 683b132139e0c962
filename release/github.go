package release

import (
	"encoding/json"
	"fmt"
	"ghfetch/logging"
	"io"
	"net/http"
	"strings"
	"time"
)

// Asset represents a single release asset as returned by the GitHub API
type Asset struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Release models only the fields of the releases-by-tag response needed to
// locate assets by name
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Client queries the GitHub releases API with token authentication.
// Private repository releases require the token on every call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new Client instance.
// The metadata lookup carries its own fixed timeout; only the binary
// transfer is bounded by the caller-supplied timeout.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// GetReleaseByTag fetches release metadata for a specific tag.
// Any failure (network, auth, missing release) is reported as a
// ReleaseLookupError carrying the underlying cause.
func (c *Client) GetReleaseByTag(owner, repo, tag string) (*Release, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, owner, repo, tag)
	logging.LogDebug("🔍 Fetching release metadata from %s", apiURL)

	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &ReleaseLookupError{Owner: owner, Repo: repo, Tag: tag, Err: err}
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ReleaseLookupError{Owner: owner, Repo: repo, Tag: tag, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Truncate the body so an HTML error page cannot flood the logs
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		cause := fmt.Errorf("API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
		if resp.StatusCode == http.StatusNotFound {
			cause = fmt.Errorf("no release found for tag (API returned %s)", resp.Status)
		}
		return nil, &ReleaseLookupError{Owner: owner, Repo: repo, Tag: tag, Err: cause}
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, &ReleaseLookupError{Owner: owner, Repo: repo, Tag: tag,
			Err: fmt.Errorf("failed to decode release JSON: %w", err)}
	}

	logging.LogDebug("📦 Release %s has %d asset(s)", tag, len(rel.Assets))
	return &rel, nil
}

// FindAsset resolves the asset matching the target's filename.
// The match is exact and case-sensitive: the first asset whose name equals
// the filename wins. A release without a matching asset is an
// AssetNotFoundError; no binary request is issued in that case.
func (c *Client) FindAsset(target Target) (Asset, error) {
	rel, err := c.GetReleaseByTag(target.Owner, target.Repo, target.Tag)
	if err != nil {
		return Asset{}, err
	}

	for _, asset := range rel.Assets {
		if asset.Name == target.Filename {
			logging.LogDebug("✅ Matched asset %q (id=%d, %d bytes)", asset.Name, asset.ID, asset.Size)
			return asset, nil
		}
	}

	return Asset{}, &AssetNotFoundError{Filename: target.Filename, Tag: target.Tag}
}

// AssetURL builds the authenticated download endpoint for an asset id
func (c *Client) AssetURL(owner, repo string, id int64) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/assets/%d", c.baseURL, owner, repo, id)
}
