package apply

import (
	"regexp"
	"strings"
)

// MinSnippetLength is the floor below which a candidate snippet is treated as
// noise rather than code.
const MinSnippetLength = 20

// codeTokens are markers whose presence qualifies text as code-like.
var codeTokens = []string{
	"func ", ":=", "=>", "return ", "import ", "package ", "def ",
	"class ", "const ", "var ", "{", "}", "();", "()", "&&", "||",
}

// kvLinePattern matches "key: value" / "key = value" metadata lines that scrape
// pipelines sometimes index next to real code. Keys may be JSON-quoted.
var kvLinePattern = regexp.MustCompile(`^"?[\w.\-]+"?\s*[:=]\s*\S.*$`)

// ValidSnippet reports whether the candidate is worth rendering as a code
// block. It rejects short fragments, text with no code-like tokens, and chunks
// that are really key/value metadata masquerading as code.
func ValidSnippet(content string) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < MinSnippetLength {
		return false
	}

	hasToken := false
	for _, tok := range codeTokens {
		if strings.Contains(trimmed, tok) {
			hasToken = true
			break
		}
	}
	if !hasToken {
		return false
	}

	return !isKeyValueMetadata(trimmed)
}

// isKeyValueMetadata is true when every non-empty field is a bare key/value
// pair and nothing opens a block. JSON-wrapped metadata is unwrapped first so
// a single enclosing brace pair cannot smuggle index fields past the check.
func isKeyValueMetadata(s string) bool {
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if !strings.ContainsAny(inner, "{}") {
			s = inner
		}
	}
	if strings.ContainsAny(s, "{}") {
		return false
	}
	sawPair := false
	for _, line := range strings.Split(s, "\n") {
		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			sawPair = true
			if !kvLinePattern.MatchString(field) {
				return false
			}
		}
	}
	return sawPair
}
