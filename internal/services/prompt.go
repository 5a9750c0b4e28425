package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultItemCount = 5
	minItemCount     = 1
	maxItemCount     = 20
)

// ParseCountFromText finds "<keyword> [count] N" or "N <keyword>(s)" in text,
// case-insensitively, and clamps the result to [1, 20]. Without a match it
// returns def.
func ParseCountFromText(text, keyword string, def int) int {
	base := regexp.QuoteMeta(strings.TrimSuffix(strings.ToLower(keyword), "s"))
	plural := `(?:zes|es|s)?`
	re := regexp.MustCompile(`(?i)\b` + base + plural + `\s+(?:count\s+)?(\d+)|(\d+)\s+` + base + plural + `\b`)

	m := re.FindStringSubmatch(text)
	if m == nil {
		return def
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow gets here: the group is all digits.
		n = maxItemCount
	}
	return clampCount(n)
}

func clampCount(n int) int {
	if n < minItemCount {
		return minItemCount
	}
	if n > maxItemCount {
		return maxItemCount
	}
	return n
}

// FlashcardCount reads the requested number of flashcards from the request text.
func FlashcardCount(text string) int {
	return ParseCountFromText(text, "flashcard", DefaultItemCount)
}

// QuizCount accepts either "question" or "quiz" as the keyword.
func QuizCount(text string) int {
	if n := ParseCountFromText(text, "question", 0); n != 0 {
		return n
	}
	return ParseCountFromText(text, "quiz", DefaultItemCount)
}

func contentOrPlaceholder(content string) string {
	if strings.TrimSpace(content) == "" {
		return "(see the attached files)"
	}
	return content
}

func FlashcardPrompt(count int, content string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Read the following content and create %d study flashcards.\n", count))
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString("Return JSON like:\n")
	b.WriteString(`[
  { "question": "string", "answer": "string" }
]
`)
	b.WriteString("\nContent:\n")
	b.WriteString(contentOrPlaceholder(content))

	return b.String()
}

func QuizPrompt(count int, content string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate %d multiple-choice quiz questions based on the following content.\n", count))
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n")
	b.WriteString("Each question has exactly 4 options and the answer is copied verbatim from the options.\n\n")
	b.WriteString("Return JSON like:\n")
	b.WriteString(`[
  { "question": "string", "options": ["A", "B", "C", "D"], "answer": "A" }
]
`)
	b.WriteString("\nContent:\n")
	b.WriteString(contentOrPlaceholder(content))

	return b.String()
}

// SummaryPrompt is only used by the server backend; on-device summarization
// goes through a dedicated summarizer.
func SummaryPrompt(content string) string {
	var b strings.Builder

	b.WriteString("Summarize this content concisely as markdown key points.\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON object. No preamble, no markdown fences, no backticks.\n\n")
	b.WriteString(`Return JSON like:
{ "summary": "markdown string" }
`)
	b.WriteString("\nContent:\n")
	b.WriteString(contentOrPlaceholder(content))

	return b.String()
}
