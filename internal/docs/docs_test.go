package docs

import (
	"strings"
	"testing"
)

func TestAll_ReturnsTopics(t *testing.T) {
	topics := All()
	if len(topics) == 0 {
		t.Fatal("All() returned no topics")
	}
	if topics[0].Name != "quickstart" {
		t.Errorf("first topic = %q, want %q", topics[0].Name, "quickstart")
	}
}

func TestAll_NoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if seen[topic.Name] {
			t.Errorf("duplicate topic name: %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestAll_AllFieldsPopulated(t *testing.T) {
	for _, topic := range All() {
		if topic.Name == "" {
			t.Error("topic has empty Name")
		}
		if topic.Title == "" {
			t.Errorf("topic %q has empty Title", topic.Name)
		}
		if topic.Summary == "" {
			t.Errorf("topic %q has empty Summary", topic.Name)
		}
		if topic.Content == "" {
			t.Errorf("topic %q has empty Content", topic.Name)
		}
	}
}

func TestGet_Found(t *testing.T) {
	topic, err := Get("quickstart")
	if err != nil {
		t.Fatalf("Get(quickstart) error: %v", err)
	}
	if topic.Name != "quickstart" {
		t.Errorf("Name = %q, want %q", topic.Name, "quickstart")
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Fatal("Get(nonexistent) should return error")
	}
}

func TestGet_ErrorHint(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil || !strings.Contains(err.Error(), "monozip docs") {
		t.Fatalf("expected hint in error, got %v", err)
	}
}

func TestAll_ExpectedTopics(t *testing.T) {
	for _, name := range []string{"quickstart", "input", "presets", "formatters", "config", "server"} {
		if _, err := Get(name); err != nil {
			t.Errorf("missing topic %q", name)
		}
	}
}

func TestGet_AliasesAndCase(t *testing.T) {
	cases := map[string]string{
		"api":        "server",
		"HTTP":       "server",
		" Paste ":    "input",
		"formatting": "formatters",
		"yaml":       "config",
	}
	for in, want := range cases {
		topic, err := Get(in)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", in, err)
		}
		if topic.Name != want {
			t.Errorf("Get(%q) = %q, want %q", in, topic.Name, want)
		}
	}
}

func TestGet_UniquePrefix(t *testing.T) {
	topic, err := Get("form")
	if err != nil || topic.Name != "formatters" {
		t.Fatalf("Get(form) = %q, %v", topic.Name, err)
	}
}

func TestGet_AmbiguousPrefix(t *testing.T) {
	_, err := Get("p")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if !strings.Contains(err.Error(), "input") || !strings.Contains(err.Error(), "presets") {
		t.Fatalf("ambiguity error should name candidates: %v", err)
	}
}

func TestGet_Empty(t *testing.T) {
	if _, err := Get("  "); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestAll_AliasesUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, topic := range All() {
		seen[topic.Name] = topic.Name
	}
	for _, topic := range All() {
		for _, a := range topic.Aliases {
			if prev, ok := seen[a]; ok {
				t.Errorf("alias %q of %q collides with %q", a, topic.Name, prev)
			}
			seen[a] = topic.Name
		}
	}
}
