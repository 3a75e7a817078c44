package services

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ─── Text-to-Structure Normalizer ────────────────────────────────────────────
//
// Model output is adversarial input from a structure standpoint: markdown
// fences, leading prose, trailing commas. Normalize is a best-effort recovery
// parser that never fails — any defect yields the canned default draft so a
// request can never error out purely because the model rambled.

var (
	codeFenceRe     = regexp.MustCompile("```(?:json|JSON)?\\s*")
	trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)
)

// Normalize extracts an ItineraryDraft from a raw model completion.
// It always returns a usable draft; it never returns an error.
func Normalize(raw string) ItineraryDraft {
	candidate, ok := extractJSONObject(raw)
	if !ok {
		log.Println("⚠️  No JSON object found in model response — using default draft")
		return DefaultDraft()
	}

	candidate = stripTrailingCommas(candidate)

	var draft ItineraryDraft
	if err := json.Unmarshal([]byte(candidate), &draft); err != nil {
		log.Printf("⚠️  Failed to parse model JSON: %v — offending text: %s", err, truncate(candidate, 500))
		return DefaultDraft()
	}
	return draft
}

// extractJSONObject strips code-fence markers and returns the greedy span from
// the first '{' through the last '}'.
func extractJSONObject(raw string) (string, bool) {
	text := codeFenceRe.ReplaceAllString(raw, "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// stripTrailingCommas deletes commas that directly precede a closing bracket
// or brace. Already-valid JSON passes through unchanged.
func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
