package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInputSingleChunk(t *testing.T) {
	chunks := SplitText("short document", 100, 10)
	assert.Equal(t, []string{"short document"}, chunks)
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("abcdefghij", 50)
	chunks := SplitText(text, 120, 20)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 120)
	}
	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))
	assert.True(t, strings.HasPrefix(text, chunks[0]))
}

func TestSplitTextPrefersParagraphBoundary(t *testing.T) {
	para := strings.Repeat("x", 80)
	text := para + "\n\n" + para + "\n\n" + para
	chunks := SplitText(text, 100, 10)

	assert.Equal(t, para, chunks[0])
}
