package release

import "fmt"

// InvalidURLPatternError reports a URL that does not match the
// release-asset download pattern. Non-retryable: the formula URL is wrong.
type InvalidURLPatternError struct {
	URL string
}

func (e *InvalidURLPatternError) Error() string {
	return fmt.Sprintf("URL does not match the release asset pattern "+
		"https://github.com/<owner>/<repo>/releases/download/<tag>/<filename>: %s", e.URL)
}

// MissingCredentialError reports an absent or empty token environment
// variable. The message tells the operator how to fix it; it never contains
// any secret material.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no GitHub API token found in $%s\n"+
		"💡 Create a token with repo scope at https://github.com/settings/tokens and run:\n"+
		"   export %s=<your-token>", e.EnvVar, e.EnvVar)
}

// ReleaseLookupError reports a failed release-by-tag API call: network
// failure, auth rejection, or no release for the tag. The underlying cause
// is wrapped.
type ReleaseLookupError struct {
	Owner string
	Repo  string
	Tag   string
	Err   error
}

func (e *ReleaseLookupError) Error() string {
	return fmt.Sprintf("failed to look up release %s/%s@%s: %v", e.Owner, e.Repo, e.Tag, e.Err)
}

func (e *ReleaseLookupError) Unwrap() error {
	return e.Err
}

// AssetNotFoundError reports a release that exists but carries no asset
// with the requested filename. Indicates a naming mismatch between the
// formula and the actual release contents.
type AssetNotFoundError struct {
	Filename string
	Tag      string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("release %s has no asset named %q\n"+
		"💡 Use 'ghfetch assets' to list the assets attached to this release", e.Tag, e.Filename)
}

// DownloadError reports a transport or finalization failure during the
// binary transfer. The underlying cause is wrapped.
type DownloadError struct {
	Filename string
	Tag      string
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download asset %q from release %s: %v", e.Filename, e.Tag, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
