package packagemanager

import (
	"sort"
	"strings"
)

const (
	latestMarker  = "latest"
	unknownMarker = "unknown"
	linkedMarker  = "linked"
)

// installedVersion picks the version to report among several installed
// ones: the lexicographic maximum, ignoring "latest" when a concrete version
// exists. It returns "" when no concrete version is known.
func installedVersion(versions []string) string {
	var candidates []string
	for _, v := range versions {
		if v = strings.TrimSpace(v); v != "" && v != latestMarker {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)
	return candidates[len(candidates)-1]
}

// onlyLatest reports whether the non-empty tokens of versions are all the
// "latest" marker.
func onlyLatest(versions []string) bool {
	found := false
	for _, v := range versions {
		switch strings.TrimSpace(v) {
		case "":
		case latestMarker:
			found = true
		default:
			return false
		}
	}
	return found
}

// knownVersion maps the "unknown" marker to the empty string.
func knownVersion(v string) string {
	if v == unknownMarker {
		return ""
	}
	return v
}
