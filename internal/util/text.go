package util

import "strings"

var headerReplacer = strings.NewReplacer(".", "_", " ", "_")

// CanonicalizeHeader turns a raw column header into the stable snake-case
// identifier used by all downstream logic: lowercase, with "." and " "
// rewritten to "_".
func CanonicalizeHeader(raw string) string {
	return headerReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// roleRewrites are applied in order as literal substring replacements on the
// lowercased role. The abbreviation rules fire inside longer tokens too;
// that matches the source data conventions this pipeline was built against.
var roleRewrites = [][2]string{
	{"other (journalist)", "journalist"},
	{"other (space tourist)", "space tourist"},
	{"psp", "payload specialist"},
	{"msp", "mission specialist"},
}

// NormalizeRole collapses free-text mission roles to their canonical labels.
func NormalizeRole(raw string) string {
	s := strings.ToLower(raw)
	for _, r := range roleRewrites {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}
