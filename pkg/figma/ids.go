package figma

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	fileURLPattern = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?|#)`)
	fileKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	nodeIDPattern  = regexp.MustCompile(`^I?\d+[:|-]\d+(?:;\d+[:|-]\d+)*$`)

	queryNodeIDPattern = regexp.MustCompile(`[?&]node-id=([^&#]*)`)
	pathNodeIDPattern  = regexp.MustCompile(`/nodes/([^?#/]+)`)
	hashNodeIDPattern  = regexp.MustCompile(`#([^?]+)$`)
)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// Returns an error if the URL format is invalid or if the URL doesn't match the expected Figma domain pattern.
func ExtractFileKey(figmaURL string) (string, error) {
	// Anchored to ensure the entire URL matches the expected pattern and prevent bypass attacks.
	matches := fileURLPattern.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

// ResolveFileKey accepts either a bare file key or a Figma URL and returns the file key.
func ResolveFileKey(keyOrURL string) (string, error) {
	if ValidFileKey(keyOrURL) {
		return keyOrURL, nil
	}
	return ExtractFileKey(keyOrURL)
}

// ValidFileKey reports whether key is a well-formed (alphanumeric) file key.
func ValidFileKey(key string) bool {
	return fileKeyPattern.MatchString(key)
}

// ValidNodeID reports whether id looks like a node id, such as "1234:5678",
// "1234-5678" or the instance path form "I5666:180910;1:10515".
func ValidNodeID(id string) bool {
	return nodeIDPattern.MatchString(id)
}

// NormalizeNodeID converts the URL form of a node id ("1234-5678") into the form
// the API expects ("1234:5678").
func NormalizeNodeID(id string) string {
	return strings.ReplaceAll(id, "-", ":")
}

// ExtractNodeIDs returns the node ids referenced by a Figma URL, normalized to the
// API form and de-duplicated in order of appearance. It understands the node-id
// query parameter, the /nodes/ path segment and a hash fragment.
// A URL without node references yields an empty slice.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string
	switch {
	case queryNodeIDPattern.MatchString(figmaURL):
		raw = queryNodeIDPattern.FindStringSubmatch(figmaURL)[1]
		if unescaped, err := url.QueryUnescape(raw); err == nil {
			raw = unescaped
		}
	case pathNodeIDPattern.MatchString(figmaURL):
		raw = pathNodeIDPattern.FindStringSubmatch(figmaURL)[1]
	case hashNodeIDPattern.MatchString(figmaURL):
		raw = hashNodeIDPattern.FindStringSubmatch(figmaURL)[1]
	}

	ids := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !ValidNodeID(part) {
			return nil, fmt.Errorf("invalid node id %q in URL", part)
		}
		ids = append(ids, NormalizeNodeID(part))
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes repeated ids, keeping the first occurrence of each.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}

	return result
}
