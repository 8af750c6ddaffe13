package utils

import "strings"

// SplitText chunks a document into pieces of at most chunkSize characters,
// overlapping by overlap to keep context across boundaries. Within each
// window the cut point is pulled back to the nearest paragraph or line
// break when one exists, so chunks tend to end on natural boundaries.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := end
		window := string(runes[start:end])
		if idx := strings.LastIndex(window, "\n\n"); idx > step/2 {
			cut = start + len([]rune(window[:idx]))
		} else if idx := strings.LastIndex(window, "\n"); idx > step/2 {
			cut = start + len([]rune(window[:idx]))
		}
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}
