package profile

import "strings"

// MatchDevicePattern implements the device-identifier glob described in
// §6: `*` matches any substring including empty.
//
//   - No `*`: exact match.
//   - One `*`: prefix, suffix, or bare `*` (matches everything).
//   - Two or more `*`s: anchored split match — the first segment is a
//     prefix of id, the last is a suffix, and the intermediate non-empty
//     segments must occur in order between them.
func MatchDevicePattern(pattern, id string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == id
	}
	segments := strings.Split(pattern, "*")
	if len(segments) == 2 && segments[0] == "" && segments[1] == "" {
		return true // bare "*"
	}

	first, last := segments[0], segments[len(segments)-1]
	if !strings.HasPrefix(id, first) {
		return false
	}
	if !strings.HasSuffix(id, last) {
		return false
	}

	rest := id[len(first):]
	if len(last) > 0 {
		rest = rest[:len(rest)-len(last)]
	}

	middle := segments[1 : len(segments)-1]
	for _, seg := range middle {
		if seg == "" {
			continue
		}
		idx := strings.Index(rest, seg)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(seg):]
	}
	return true
}
