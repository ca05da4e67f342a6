package content

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	stripmd "github.com/writeas/go-strip-markdown"
)

var (
	fencedCode = regexp.MustCompile("(?s)```.*?```")
	inlineCode = regexp.MustCompile("`[^`]+`")
	imageRef   = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRef    = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	markupRune = regexp.MustCompile("[#*`_~\\[\\]()]")
	spaceRun   = regexp.MustCompile(`\s+`)

	hanChar   = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	latinWord = regexp.MustCompile(`[a-zA-Z]+`)
)

// PlainText strips the Markdown syntax that should not count as words: code
// blocks and spans, images, link targets and emphasis markers. Whitespace is
// collapsed to single spaces.
func PlainText(markdown string) string {
	text := fencedCode.ReplaceAllString(markdown, "")
	text = inlineCode.ReplaceAllString(text, "")
	text = imageRef.ReplaceAllString(text, "")
	text = linkRef.ReplaceAllString(text, "$1")
	text = markupRune.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CountHan counts CJK unified ideographs in the basic block.
func CountHan(text string) int {
	return len(hanChar.FindAllStringIndex(text, -1))
}

// CountLatinWords counts runs of ASCII letters.
func CountLatinWords(text string) int {
	return len(latinWord.FindAllStringIndex(text, -1))
}

// WordCount is CountHan plus CountLatinWords over PlainText(markdown).
func WordCount(markdown string) int {
	plain := PlainText(markdown)
	return CountHan(plain) + CountLatinWords(plain)
}

// ReadingTime returns whole minutes, rounded up.
func ReadingTime(words, wordsPerMinute int) int {
	if words <= 0 || wordsPerMinute <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(wordsPerMinute)))
}

// Excerpt returns the first limit characters of the rendered text of
// markdown, with "..." appended when the text was cut.
func Excerpt(markdown string, limit int) string {
	text := stripmd.Strip(fencedCode.ReplaceAllString(markdown, ""))
	text = strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
