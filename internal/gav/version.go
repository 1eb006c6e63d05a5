package gav

import (
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// releaseQualifiers name a plain release and are dropped before comparing.
var releaseQualifiers = map[string]struct{}{
	"final":   {},
	"ga":      {},
	"release": {},
}

// postReleasePrefix marks qualifiers that outrank the release they follow (7.4.0.SP1).
const postReleasePrefix = "sp"

// CompareVersions orders two version strings.
// Versions that parse as semantic-style versions are compared with go-version;
// anything else, or anything carrying a release or post-release qualifier
// (1.2.3.Final, 7.4.0-SP1), falls back to a segment comparison.
func CompareVersions(a string, b string) int {
	if !releaseQualified(a) && !releaseQualified(b) {
		va, errA := goversion.NewVersion(a)
		vb, errB := goversion.NewVersion(b)
		if errA == nil && errB == nil {
			return va.Compare(vb)
		}
	}
	return compareSegments(a, b)
}

func releaseQualified(raw string) bool {
	for _, field := range strings.FieldsFunc(raw, isVersionSeparator) {
		if _, ok := releaseQualifiers[strings.ToLower(field)]; ok || isPostRelease(field) {
			return true
		}
	}
	return false
}

func compareSegments(a string, b string) int {
	left := splitVersion(a)
	right := splitVersion(b)
	for i := 0; i < len(left) || i < len(right); i++ {
		switch {
		case i >= len(left):
			return -tailSign(right[i:])
		case i >= len(right):
			return tailSign(left[i:])
		}
		if c := compareToken(left[i], right[i]); c != 0 {
			return c
		}
	}
	return 0
}

// tailSign reports how the remaining tokens of the longer version compare
// against nothing: trailing zeros are neutral, a positive number or a
// post-release qualifier makes it newer and any other qualifier makes it older.
func tailSign(rest []string) int {
	for _, token := range rest {
		if n, ok := numeric(token); ok {
			if n > 0 {
				return 1
			}
			continue
		}
		if isPostRelease(token) {
			return 1
		}
		return -1
	}
	return 0
}

func compareToken(a string, b string) int {
	na, aNum := numeric(a)
	nb, bNum := numeric(b)
	switch {
	case aNum && bNum:
		return compareInt(na, nb)
	case aNum:
		return 1
	case bNum:
		return -1
	}
	aPost, bPost := isPostRelease(a), isPostRelease(b)
	switch {
	case aPost && !bPost:
		return 1
	case bPost && !aPost:
		return -1
	}
	return compareInt(int64(strings.Compare(strings.ToLower(a), strings.ToLower(b))), 0)
}

func isPostRelease(token string) bool {
	return strings.HasPrefix(strings.ToLower(token), postReleasePrefix)
}

func numeric(token string) (int64, bool) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func compareInt(a int64, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func splitVersion(raw string) []string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "v")
	fields := strings.FieldsFunc(raw, isVersionSeparator)
	tokens := fields[:0]
	for _, field := range fields {
		if _, ok := releaseQualifiers[strings.ToLower(field)]; ok {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

func isVersionSeparator(r rune) bool {
	return r == '.' || r == '-' || r == '_' || r == '+'
}
