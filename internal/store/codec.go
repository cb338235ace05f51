package store

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hanabira/hanachat/internal/domain"
)

// FlagTrue is the literal stored for a set boolean flag. Flags are
// string-typed in storage ("true" or absent); engines only ever see bool.
const FlagTrue = "true"

// EncodeFlag converts a bool to its stored representation.
func EncodeFlag(v bool) string {
	if v {
		return FlagTrue
	}
	return ""
}

// DecodeFlag converts a stored flag back to a bool. Anything other than
// the exact literal "true" decodes false, matching the historical
// serialization.
func DecodeFlag(s string) bool {
	return s == FlagTrue
}

// EncodeInt converts an integer to its stored representation.
func EncodeInt(v int) string {
	return strconv.Itoa(v)
}

// DecodeInt parses a stored integer, returning fallback on absent or
// malformed values.
func DecodeInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

// EncodeTime stores a timestamp as unix seconds. The zero time encodes
// to the empty string.
func EncodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}

// DecodeTime parses a stored unix-seconds timestamp. Absent or
// malformed values decode to the zero time.
func DecodeTime(s string) time.Time {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

// EncodeThemeList serializes an owned-theme set as a sorted
// comma-joined list so the stored form is deterministic.
func EncodeThemeList(owned map[string]bool) string {
	ids := make([]string, 0, len(owned))
	for id, ok := range owned {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// DecodeThemeList parses the stored owned-theme list. The default theme
// sentinel is always present in the result.
func DecodeThemeList(s string) map[string]bool {
	owned := map[string]bool{}
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			owned[id] = true
		}
	}
	owned[domain.DefaultThemeID] = true
	return owned
}
