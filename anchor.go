package pageindex

import (
	"strconv"
	"strings"
	"unicode"
)

// Anchors generates URL-safe node ids from heading titles, adding numeric
// suffixes to repeats. The zero value is not usable; call NewAnchors.
type Anchors struct {
	counts map[string]int
}

// NewAnchors returns an empty anchor generator.
func NewAnchors() *Anchors {
	return &Anchors{counts: make(map[string]int)}
}

// Reserve marks id as taken so later titles never produce it.
func (a *Anchors) Reserve(id string) {
	if _, ok := a.counts[id]; !ok {
		a.counts[id] = 1
	}
}

// Next returns a unique anchor for title. Titles without letters or digits
// become "section".
func (a *Anchors) Next(title string) string {
	base := GenerateAnchor(title)
	if base == "" {
		base = "section"
	}

	if _, taken := a.counts[base]; !taken {
		a.counts[base] = 1
		return base
	}
	for {
		n := a.counts[base]
		a.counts[base] = n + 1
		anchor := base + "-" + strconv.Itoa(n)
		if _, taken := a.counts[anchor]; !taken {
			a.counts[anchor] = 1
			return anchor
		}
	}
}

// GenerateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func GenerateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
