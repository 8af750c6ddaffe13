package generate

import (
	"regexp"
	"strings"
)

// Leading-line artifact patterns occasionally leaked by generation backends:
// fragments of a structured-query preamble or stray bracket-only lines.
var (
	structuredLeakPattern = regexp.MustCompile(`^[A-Z_]{2,}:\s*\S*$`)
	keyValueLeakPattern   = regexp.MustCompile(`^(query|action|search_query|intent|score)\s*[:=]`)
	bracketOnlyPattern    = regexp.MustCompile("^[\\[\\]{}()`]+$")
)

// Sanitize strips leading artifact lines from raw model output until the
// first well-formed content line, then returns the rest trimmed.
func Sanitize(raw string) string {
	lines := strings.Split(raw, "\n")

	start := 0
	for start < len(lines) {
		if !isArtifactLine(lines[start]) {
			break
		}
		start++
	}

	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}

func isArtifactLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if trimmed == "json" || trimmed == "```json" || trimmed == "```" {
		return true
	}
	if bracketOnlyPattern.MatchString(trimmed) {
		return true
	}
	if structuredLeakPattern.MatchString(trimmed) {
		return true
	}
	if keyValueLeakPattern.MatchString(strings.ToLower(trimmed)) {
		return true
	}
	return false
}
