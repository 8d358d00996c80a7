package strings

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
)

// `TrimPrefixAll` returns string `s` without provided `prefix`es.
// If `prefix`es are repeated, all of them are removed.
//
// example:
//
//	TrimPrefixAll("aaabbbccc", "aaab")  // -> "bbccc"
//	TrimPrefixAll("aaabbbccc", "a")     // -> "bbbccc" : prefix is trimmed repeatedly
func TrimPrefixAll(s, prefix string) string {
	lp := len(prefix)

	for strings.HasPrefix(s, prefix) {
		s = s[lp:]
	}
	return s
}

// supply suffix if text has not.
//
// return: text same as input when that has suffix. otherwise, text + suffix.
func SupplySuffix(text, suffix string) string {
	if strings.HasSuffix(text, suffix) {
		return text
	}
	return text + suffix
}

// return random Hex string (/[0-9a-f]*/)
func RandomHex(l uint) (string, error) {
	if l == 0 {
		return "", nil
	}

	// encoding from []byte to hex string is doubling its length.
	// in case of odd `l`, add extra 1 not to be short.
	buffer := make([]byte, l/2+1)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer)[:l], nil
}

// Slugify converts text to a URL-safe slug: lowercased, with runs of
// non-alphanumeric characters collapsed into single hyphens.
//
// Slugify is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
