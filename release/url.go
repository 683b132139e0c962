package release

import (
	"regexp"
)

// assetURLPattern matches the release asset download URL shape:
// https://github.com/{owner}/{repo}/releases/download/{tag}/{filename}
// Owner, repo and tag must not contain a path separator; the filename is the
// single final segment, taken verbatim.
var assetURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/releases/download/([^/]+)/([^/]+)$`)

// Target identifies a single release asset to fetch. It is immutable after
// construction and rebuilt for every download attempt.
type Target struct {
	Owner    string
	Repo     string
	Tag      string
	Filename string
}

// Parse extracts a Target from a release asset download URL.
// It is a pure function: no network access, no side effects.
func Parse(rawURL string) (Target, error) {
	matches := assetURLPattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return Target{}, &InvalidURLPatternError{URL: rawURL}
	}

	return Target{
		Owner:    matches[1],
		Repo:     matches[2],
		Tag:      matches[3],
		Filename: matches[4],
	}, nil
}
