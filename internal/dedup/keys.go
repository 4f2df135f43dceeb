package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// KeySeparator joins the normalized company and title. Normalized text never
// contains '|'.
const KeySeparator = "||"

// fingerprintLen is the number of hex characters kept from the digest.
const fingerprintLen = 12

var (
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	lower   = cases.Lower(language.Und)
)

// Fingerprint derives the informational job_id from company and title. The
// source platform is deliberately not part of the hash.
func Fingerprint(title, company string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(strings.ToLower(company + "_" + title))))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Key returns the dedup key for a posting: normalized company and title joined
// by KeySeparator. Case, punctuation and surrounding whitespace do not affect
// it; inner whitespace is kept as is.
func Key(title, company string) string {
	return normalize(company) + KeySeparator + normalize(title)
}

func normalize(s string) string {
	s = lower.String(norm.NFC.String(s))
	s = nonWord.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
