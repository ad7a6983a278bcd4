package formatting_test

import (
	"errors"
	"testing"

	"github.com/redlinehq/redline/pkg/formatting"
)

type payload struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func TestParse(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[payload](`{"label":"test","count":42}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Label != "test" || got.Count != 42 {
			t.Errorf("Parse = %+v, want {Label:test Count:42}", got)
		}
	})

	t.Run("direct JSON with whitespace", func(t *testing.T) {
		got, err := formatting.Parse[payload](`  {"label":"padded","count":1}  `)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Label != "padded" {
			t.Errorf("Label = %q, want padded", got.Label)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		input := "```json\n{\"label\":\"fenced\",\"count\":7}\n```"
		got, err := formatting.Parse[payload](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Label != "fenced" || got.Count != 7 {
			t.Errorf("Parse = %+v, want {Label:fenced Count:7}", got)
		}
	})

	t.Run("markdown fenced without language tag", func(t *testing.T) {
		input := "```\n{\"label\":\"bare\",\"count\":3}\n```"
		got, err := formatting.Parse[payload](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Label != "bare" {
			t.Errorf("Label = %q, want bare", got.Label)
		}
	})

	t.Run("markdown fenced with surrounding text", func(t *testing.T) {
		input := "Here is the result:\n```json\n{\"label\":\"wrapped\",\"count\":5}\n```\nDone."
		got, err := formatting.Parse[payload](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Label != "wrapped" || got.Count != 5 {
			t.Errorf("Parse = %+v, want {Label:wrapped Count:5}", got)
		}
	})

	t.Run("invalid content returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[payload]("not json at all")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("empty string returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[payload]("")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("invalid JSON in code fence returns ErrParseFailed", func(t *testing.T) {
		input := "```json\n{broken\n```"
		_, err := formatting.Parse[payload](input)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("parses into slice type", func(t *testing.T) {
		got, err := formatting.Parse[[]int](`[1,2,3]`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Errorf("got = %v, want [1 2 3]", got)
		}
	})
}
