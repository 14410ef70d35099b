// Package edition builds and strips the {edition-...} folder name tokens
// consumed by media players to label a movie variant.
package edition

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/editionarr/internal/radarr"
)

// Table maps Radarr quality names to a preferred shorthand.
type Table map[string]string

// DefaultTable returns the built-in quality translation table.
func DefaultTable() Table {
	return Table{
		// DVD releases
		"DVD-480p": "480p",
		"DVD-576p": "576p",
		"DVD":      "DVD",
		// Standard definition
		"SDTV":  "SDTV",
		"TVRip": "TVRip",
		// High definition
		"HDTV-480p":    "480p",
		"HDTV-720p":    "720p",
		"HDTV-1080p":   "1080p",
		"Bluray-720p":  "720p",
		"Bluray-1080p": "1080p",
		"WEBRip-480p":  "480p",
		"WEBRip-720p":  "720p",
		"WEBRip-1080p": "1080p",
		"WEBDL-480p":   "480p",
		"WEBDL-720p":   "720p",
		"WEBDL-1080p":  "1080p",
		"DVDRip":       "DVDRip",
		"HDRip":        "HDRip",
		"BDRip":        "BDRip",
		// Ultra HD / 4K
		"Bluray-4K":     "4K",
		"UltraHD-2160p": "4K",
		"WEBRip-4K":     "4K",
		"WEBDL-4K":      "4K",
		"WEBRip-2160p":  "4K",
		"WEBDL-2160p":   "4K",
		// Other formats
		"CAM":      "CAM",
		"HDTS":     "HDTS",
		"TS":       "TS",
		"TC":       "TC",
		"Screener": "Screener",
		"VHSRip":   "VHS",
	}
}

// Translate looks up a quality name in the table.
// Unknown names pass through unchanged.
func (t Table) Translate(name string) string {
	if mapped, ok := t[name]; ok {
		return mapped
	}
	return name
}

// nearestThreshold is the minimum Jaro-Winkler similarity for a
// quality name suggestion.
const nearestThreshold = 0.85

// Nearest returns the table key most similar to name, for logging hints
// when a quality is not in the table. Uses Jaro-Winkler similarity,
// which favors prefix matches (quality names share prefixes like WEBDL-).
func (t Table) Nearest(name string) (string, bool) {
	var best string
	var bestScore float64
	for key := range t {
		score := float64(edlib.JaroWinklerSimilarity(name, key))
		if score > bestScore {
			best = key
			bestScore = score
		}
	}
	if bestScore < nearestThreshold {
		return "", false
	}
	return best, true
}

// Options selects which components go into the token.
type Options struct {
	// RatingSource is the ratings key to read (tmdb, imdb, metacritic,
	// rottenTomatoes).
	RatingSource string

	// IncludeRating adds the rounded rating value as the first component.
	IncludeRating bool
}

// Token builds the edition token for a movie, or "" when no component is
// available. Components are joined with " - " in [rating, quality] order.
// It never fails: unknown qualities pass through, missing or zero ratings
// are omitted.
func Token(m *radarr.Movie, table Table, opts Options) string {
	var parts []string

	if opts.IncludeRating {
		if r, ok := m.Ratings[opts.RatingSource]; ok && r.Value != 0 {
			parts = append(parts, RoundRating(r.Value))
		}
	}

	if q := m.QualityName(); q != "" {
		parts = append(parts, table.Translate(q))
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("{edition-%s}", strings.Join(parts, " - "))
}

// RoundRating formats a rating rounded half-up to one decimal digit.
// Half-up keeps boundary values reproducible: 4.45 -> "4.5".
func RoundRating(v float64) string {
	return fmt.Sprintf("%.1f", math.Floor(v*10+0.5)/10)
}

// tokenPattern matches a brace-delimited edition block, including any
// whitespace before it. Non-greedy within a single block so adjacent
// blocks match separately.
var tokenPattern = regexp.MustCompile(`(?i)\s*\{edition-[^}]*\}`)

// HasToken reports whether the folder name contains an edition block.
func HasToken(name string) bool {
	return tokenPattern.MatchString(name)
}

// Strip removes every edition block from a folder name.
// Multiple pre-existing blocks are all removed so a rebuilt name always
// carries exactly one.
func Strip(name string) string {
	return strings.TrimSpace(tokenPattern.ReplaceAllString(name, ""))
}

// Apply produces the new folder name for a token. With overwrite set,
// existing blocks are stripped first; an empty token yields the bare
// base name.
func Apply(folderName, token string, overwrite bool) string {
	base := strings.TrimSpace(folderName)
	if overwrite {
		base = Strip(base)
	}
	if token == "" {
		return base
	}
	return base + " " + token
}
