package review

import (
	"strings"
	"testing"
)

func TestComposeTaskPrompt(t *testing.T) {
	chunk := []Paragraph{
		{Content: "First paragraph.", PageNumber: 1},
		{Content: "Second paragraph.", PageNumber: 2},
	}

	got := composeTaskPrompt("Flag undefined terms.", chunk)

	if !strings.HasPrefix(got, "Flag undefined terms.") {
		t.Errorf("prompt should lead with the guideline, got %q", got[:40])
	}
	for _, key := range []string{`"text"`, `"explanation"`, `"suggested_fix"`, `"source_sentence"`} {
		if !strings.Contains(got, key) {
			t.Errorf("prompt missing %s in response shape instructions", key)
		}
	}
	if !strings.Contains(got, "[1] First paragraph.") || !strings.Contains(got, "[2] Second paragraph.") {
		t.Error("prompt missing numbered paragraphs")
	}
	if strings.Index(got, "[1]") > strings.Index(got, "[2]") {
		t.Error("paragraphs out of order")
	}
}
