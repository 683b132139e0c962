package network

import (
	"fmt"
	"ghfetch/logging"
	"io"
	"net/http"
	"os"
	"time"
)

// maxRedirects bounds redirect chains during asset transfers
const maxRedirects = 10

// Client handles authenticated binary transfers from the GitHub API.
// Asset downloads redirect from api.github.com to a signed storage URL;
// the Authorization header must be dropped on that hop because the storage
// backend rejects requests carrying both the header and signed query
// parameters.
type Client struct {
	httpClient *http.Client
	token      string
}

// NewClient creates a new Client instance.
// A zero timeout leaves the transfer unbounded.
func NewClient(token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				if req.URL.Host != via[0].URL.Host {
					req.Header.Del("Authorization")
				}
				return nil
			},
		},
		token: token,
	}
}

// DownloadAsset streams the binary content of a release asset endpoint to
// destPath. The request authenticates with the token and asks for the raw
// octet stream rather than the asset's JSON metadata.
func (c *Client) DownloadAsset(assetURL, destPath string) error {
	logging.LogDebug("📡 Initiating asset transfer from %s", assetURL)

	req, err := http.NewRequest(http.MethodGet, assetURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned non-OK status: %s", resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logging.LogDebug("✅ Transfer completed. Wrote %d bytes", written)
	return nil
}
