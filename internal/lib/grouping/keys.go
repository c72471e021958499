// Package grouping derives carousels and before/after pairs from flat media
// lists. Legacy rows carry no group key or pair role, so both are recovered
// from file name conventions; a stored GroupKey or PairRole always wins.
package grouping

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"portfolio/internal/domain/models"
)

// DefaultCarouselKey is used when no pattern yields a non-empty name.
const DefaultCarouselKey = "Carousel"

var (
	slideRe     = regexp.MustCompile(`(?i)^(.+?)\s*-\s*Slide\s+\d+`)
	partRe      = regexp.MustCompile(`(?i)^(.+?)\s*-\s*(?:Part|Page|Image)\s+\d+`)
	extRe       = regexp.MustCompile(`\.[^/.]+$`)
	pairDashRe  = regexp.MustCompile(`(?i)\s*-\s*(before|after).*$`)
	pairSpaceRe = regexp.MustCompile(`(?i)\s+(before|after).*$`)
	pairBareRe  = regexp.MustCompile(`(?i)^\s*(before|after)\s*$`)
	imageExtRe  = regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|webp)$`)
	carouselSep = " - "
)

// CarouselKey extracts the carousel name from a file name, trying in order
// "name - Slide N", "name - Part/Page/Image N", the text before the first
// " - ", and the file name without its extension.
func CarouselKey(fileName string) string {
	var key string

	switch {
	case slideRe.MatchString(fileName):
		key = slideRe.FindStringSubmatch(fileName)[1]
	case partRe.MatchString(fileName):
		key = partRe.FindStringSubmatch(fileName)[1]
	case strings.Contains(fileName, carouselSep):
		key = strings.SplitN(fileName, carouselSep, 2)[0]
	default:
		key = extRe.ReplaceAllString(fileName, "")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultCarouselKey
	}
	return key
}

// StripPairMarker removes a trailing before/after marker and everything after
// it. A name that is only a marker, such as "before.jpg", strips to "".
func StripPairMarker(name string) string {
	base, _ := splitPairMarker(name)
	return base
}

// splitPairMarker strips a " - marker" suffix, then a " marker" suffix, and
// reports the role of the first marker removed. Leading words are never
// treated as markers, so "After Hours - before" keeps its title.
func splitPairMarker(name string) (string, models.PairRole) {
	if m := pairBareRe.FindStringSubmatch(extRe.ReplaceAllString(name, "")); m != nil {
		return "", roleFromMarker(m[1])
	}

	base := name
	role := models.PairRoleNone
	for _, re := range []*regexp.Regexp{pairDashRe, pairSpaceRe} {
		loc := re.FindStringSubmatchIndex(base)
		if loc == nil {
			continue
		}
		if role == models.PairRoleNone {
			role = roleFromMarker(base[loc[2]:loc[3]])
		}
		base = base[:loc[0]]
	}

	return strings.TrimSpace(base), role
}

func roleFromMarker(marker string) models.PairRole {
	if strings.EqualFold(marker, "before") {
		return models.PairRoleBefore
	}
	return models.PairRoleAfter
}

// PairBaseName returns the pair base of a file name: the marker and any image
// extension removed, whitespace trimmed.
func PairBaseName(fileName string) string {
	base := StripPairMarker(fileName)
	base = imageExtRe.ReplaceAllString(base, "")
	return strings.TrimSpace(base)
}

// URLFileName returns the last path segment of a URL or plain path.
func URLFileName(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	if p == "" {
		return ""
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// PairRoleOf reports which slot an item fills: the stored role, else the
// role of the trailing marker in the file name. Names without a trailing
// marker fall back to a case-insensitive search with "before" checked first.
func PairRoleOf(item models.MediaItem) models.PairRole {
	if item.PairRole != models.PairRoleNone {
		return item.PairRole
	}

	if _, role := splitPairMarker(item.FileName); role != models.PairRoleNone {
		return role
	}

	name := strings.ToLower(item.FileName)
	switch {
	case strings.Contains(name, "before"):
		return models.PairRoleBefore
	case strings.Contains(name, "after"):
		return models.PairRoleAfter
	default:
		return models.PairRoleNone
	}
}

// CapitalizeWords upper-cases the first letter of every whitespace separated word.
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
