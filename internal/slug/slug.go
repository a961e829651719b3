// Package slug encodes and decodes SEO-friendly URL path segments of the
// form "<name>-<id>". Names keep Arabic and Latin alphanumerics only.
package slug

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile("[^a-z0-9؀-ۿ-]")
	dashRunRe    = regexp.MustCompile(`-{2,}`)
	idSuffixRe   = regexp.MustCompile(`-(\d+)$`)
	validRe      = regexp.MustCompile("^[a-z0-9؀-ۿ-]+-\\d+$")
)

// Slugify normalizes text into a lowercase hyphen-delimited token. It is
// total: input with no usable characters yields the empty string.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = invalidRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ForProduct builds the slug for a product. The result always ends in the
// numeric id so it stays parseable even for unusable names.
func ForProduct(id int64, name string) string {
	if s := Slugify(name); s != "" {
		return fmt.Sprintf("%s-%d", s, id)
	}
	return fmt.Sprintf("product-%d", id)
}

// ExtractID pulls the trailing numeric id out of a slug. It returns 0 when
// no id suffix exists; callers treat 0 as "not found", never as a valid id.
func ExtractID(slug string) int64 {
	decoded := decode(slug)
	m := idSuffixRe.FindStringSubmatch(decoded)
	if m == nil {
		return 0
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// IsValid reports whether the whole slug matches the expected
// "<name>-<id>" shape after URL decoding.
func IsValid(slug string) bool {
	return validRe.MatchString(decode(slug))
}

func decode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
