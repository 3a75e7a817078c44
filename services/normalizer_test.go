package services

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeExtractsFencedJSON(t *testing.T) {
	raw := "Here is your plan: ```json\n" +
		`{"destination": "Tokyo, Japan", "itinerary": "1. Arrive in Tokyo.", "cuisine": "1. Sushi at Tsukiji.", "fun_fact": "Tokyo has 36 Michelin 3-star restaurants.", "estimated_cost": {"Total": "$2000"}, "best_time_to_visit": "March to May", "packing_tips": "1. Comfortable shoes."}` +
		"\n```"

	draft := Normalize(raw)

	if draft.Destination != "Tokyo, Japan" {
		t.Errorf("destination = %q, want %q", draft.Destination, "Tokyo, Japan")
	}
	if draft.Itinerary != "1. Arrive in Tokyo." {
		t.Errorf("itinerary = %q", draft.Itinerary)
	}
	if draft.FunFact != "Tokyo has 36 Michelin 3-star restaurants." {
		t.Errorf("fun_fact = %q", draft.FunFact)
	}
	if got := draft.EstimatedCost["Total"]; got != "$2000" {
		t.Errorf("estimated_cost[Total] = %q", got)
	}
}

func TestNormalizeNoJSONReturnsDefaultDraft(t *testing.T) {
	draft := Normalize("I cannot help with that.")

	if !reflect.DeepEqual(draft, DefaultDraft()) {
		t.Errorf("draft = %+v, want the default draft", draft)
	}
	if draft.Destination != "Paris, France" {
		t.Errorf("default destination = %q, want %q", draft.Destination, "Paris, France")
	}
}

func TestNormalizeRepairsTrailingCommas(t *testing.T) {
	raw := `{"destination": "Lisbon, Portugal", "itinerary": "1. Alfama walk.",}`

	draft := Normalize(raw)

	if draft.Destination != "Lisbon, Portugal" {
		t.Errorf("destination = %q, trailing comma was not repaired", draft.Destination)
	}
}

func TestNormalizeUnparseableJSONReturnsDefaultDraft(t *testing.T) {
	draft := Normalize(`prose before {"destination": "Oslo, Norway", "broken": } prose after`)

	if !reflect.DeepEqual(draft, DefaultDraft()) {
		t.Errorf("draft = %+v, want the default draft", draft)
	}
}

func TestNormalizeNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"}{",
		"{",
		"``````",
		"```json```",
		strings.Repeat("{", 10000),
		"{\"destination\": \"A\x00B\"}",
		`{"estimated_cost": "not a map"}`,
	}
	for _, in := range inputs {
		draft := Normalize(in)
		// None of these parse, so every one must recover to the default
		// draft rather than erroring or panicking.
		if !reflect.DeepEqual(draft, DefaultDraft()) {
			t.Errorf("Normalize(%q) = %+v, want the default draft", in, draft)
		}
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`, true},
		{"surrounded by prose", `sure! {"a": 1} hope this helps`, `{"a": 1}`, true},
		{"fenced with language tag", "```json\n{\"a\": 1}\n```", "{\"a\": 1}", true},
		{"fenced without tag", "```\n{\"a\": 1}\n```", "{\"a\": 1}", true},
		{"greedy span over nested objects", `{"a": {"b": 2}} trailing`, `{"a": {"b": 2}}`, true},
		{"no object", "no json here", "", false},
		{"only open brace", "{", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if strings.TrimSpace(got) != tt.want && tt.ok {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripTrailingCommas(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1,}`, `{"a": 1}`},
		{`[1, 2, 3,]`, `[1, 2, 3]`},
		{`{"a": [1,2,], "b": {"c": 3,},}`, `{"a": [1,2], "b": {"c": 3}}`},
		// The comma's trailing whitespace is consumed along with it.
		{"{\"a\": 1,\n}", `{"a": 1}`},
	}
	for _, tt := range tests {
		if got := stripTrailingCommas(tt.in); got != tt.want {
			t.Errorf("stripTrailingCommas(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripTrailingCommasIdempotentOnValidJSON(t *testing.T) {
	valid := `{"a": [1, 2, 3], "b": {"c": "no trailing commas"}}`
	if got := stripTrailingCommas(valid); got != valid {
		t.Errorf("valid JSON was modified: %q", got)
	}
}

func TestStripTrailingCommasRewritesInsideStrings(t *testing.T) {
	// Known limitation: the repair is context-insensitive, so a ", ]" or ", }"
	// sequence inside a string value is rewritten too.
	in := `{"c": "x, ]"}`
	want := `{"c": "x]"}`
	if got := stripTrailingCommas(in); got != want {
		t.Errorf("stripTrailingCommas(%q) = %q, want %q", in, got, want)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 500, "short"},
		{"abcdef", 3, "abc..."},
		// Multi-byte runes must never be split mid-sequence.
		{"日本語テキスト", 3, "日本語..."},
		{"café au lait", 4, "café..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.n, got)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	// Well-formed JSON with no trailing commas embedded in a completion must
	// come back field-for-field.
	raw := "Of course! Here it is:\n" +
		`{"destination": "Rome, Italy", "itinerary": "1. Colosseum.", "cuisine": "1. Carbonara.", "fun_fact": "Rome has a pyramid.", "estimated_cost": {"Accommodation": "$120/night", "Total": "$900"}, "best_time_to_visit": "April", "packing_tips": "1. Sunscreen."}`

	draft := Normalize(raw)

	want := ItineraryDraft{
		Destination:     "Rome, Italy",
		Itinerary:       "1. Colosseum.",
		Cuisine:         "1. Carbonara.",
		FunFact:         "Rome has a pyramid.",
		EstimatedCost:   map[string]string{"Accommodation": "$120/night", "Total": "$900"},
		BestTimeToVisit: "April",
		PackingTips:     "1. Sunscreen.",
	}
	if !reflect.DeepEqual(draft, want) {
		t.Errorf("draft = %+v, want %+v", draft, want)
	}
}
