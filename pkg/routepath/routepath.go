// Package routepath normalizes the visit targets sent by live clients before
// they are routed.
package routepath

import (
	"errors"
	"strings"
)

var (
	// ErrAbsolute is returned for full URLs, protocol-relative targets and
	// paths not starting with a slash.
	ErrAbsolute = errors.New("routepath: target must be a local path")

	// ErrBackslash is returned when the path contains a backslash.
	ErrBackslash = errors.New("routepath: target contains a backslash")

	// ErrNullByte is returned for a literal or percent-encoded NUL.
	ErrNullByte = errors.New("routepath: target contains a null byte")

	// ErrInvalidEscape is returned for a malformed percent escape.
	ErrInvalidEscape = errors.New("routepath: invalid percent escape")

	// ErrEscapesRoot is returned when ".." climbs above the root.
	ErrEscapesRoot = errors.New("routepath: target escapes the root")
)

// Target is a canonical visit target.
type Target struct {
	Path  string
	Query string
}

// String returns the path followed by the query, if any.
func (t Target) String() string {
	if t.Query == "" {
		return t.Path
	}
	return t.Path + "?" + t.Query
}

// Parse canonicalizes a visit target. Slashes are collapsed, dot segments
// resolved and a trailing slash dropped. Fragments are discarded; the query
// is kept as is. Full URLs and protocol-relative targets are rejected.
func Parse(target string) (Target, error) {
	target, _, _ = strings.Cut(target, "#")
	path, query, _ := strings.Cut(target, "?")

	if strings.HasPrefix(path, "//") || strings.Contains(path, "://") {
		return Target{}, ErrAbsolute
	}
	if path != "" && path[0] != '/' {
		return Target{}, ErrAbsolute
	}
	if strings.ContainsRune(path, '\\') {
		return Target{}, ErrBackslash
	}
	if strings.ContainsRune(path, 0) || strings.Contains(strings.ToUpper(path), "%00") {
		return Target{}, ErrNullByte
	}
	if !validEscapes(path) {
		return Target{}, ErrInvalidEscape
	}

	var segs []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) == 0 {
				return Target{}, ErrEscapesRoot
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}
	return Target{Path: "/" + strings.Join(segs, "/"), Query: query}, nil
}

// Clean is Parse returning the target as a string.
func Clean(target string) (string, error) {
	t, err := Parse(target)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func validEscapes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
