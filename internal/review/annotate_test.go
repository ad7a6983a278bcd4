package review

import "testing"

func TestAnnotate(t *testing.T) {
	chunk := []Paragraph{
		{
			Content:     "The interest rate is fixed at 5% for the first year.",
			PageNumber:  2,
			BoundingBox: []float64{10, 20, 500, 60},
		},
		{
			Content:    "Fees may change without notice.",
			PageNumber: 3,
		},
	}

	t.Run("matched sentence fills location", func(t *testing.T) {
		issue := Issue{SourceSentence: "fixed at 5% for the first year"}
		annotate(&issue, chunk, 0)

		if issue.ParagraphIndex == nil || *issue.ParagraphIndex != 0 {
			t.Fatalf("ParagraphIndex = %v, want 0", issue.ParagraphIndex)
		}
		if issue.PageNumber == nil || *issue.PageNumber != 2 {
			t.Errorf("PageNumber = %v, want 2", issue.PageNumber)
		}
		if len(issue.BoundingBox) != 4 {
			t.Errorf("BoundingBox = %v, want 4 coordinates", issue.BoundingBox)
		}
	})

	t.Run("source sentence preferred over excerpt", func(t *testing.T) {
		issue := Issue{Text: "interest rate", SourceSentence: "fees may change"}
		annotate(&issue, chunk, 0)

		if issue.ParagraphIndex == nil || *issue.ParagraphIndex != 1 {
			t.Fatalf("ParagraphIndex = %v, want 1", issue.ParagraphIndex)
		}
	})

	t.Run("excerpt fallback when sentence missing", func(t *testing.T) {
		issue := Issue{Text: "fixed at 5%"}
		annotate(&issue, chunk, 0)

		if issue.ParagraphIndex == nil || *issue.ParagraphIndex != 0 {
			t.Fatalf("ParagraphIndex = %v, want 0", issue.ParagraphIndex)
		}
	})

	t.Run("offset makes index document-relative", func(t *testing.T) {
		issue := Issue{Text: "fees may change"}
		annotate(&issue, chunk, 64)

		if issue.ParagraphIndex == nil || *issue.ParagraphIndex != 65 {
			t.Fatalf("ParagraphIndex = %v, want 65", issue.ParagraphIndex)
		}
	})

	t.Run("match is case and whitespace insensitive", func(t *testing.T) {
		issue := Issue{Text: "  FEES   may\nCHANGE  "}
		annotate(&issue, chunk, 0)

		if issue.ParagraphIndex == nil || *issue.ParagraphIndex != 1 {
			t.Fatalf("ParagraphIndex = %v, want 1", issue.ParagraphIndex)
		}
	})

	t.Run("missing bounding box leaves field empty", func(t *testing.T) {
		issue := Issue{Text: "fees may change"}
		annotate(&issue, chunk, 0)

		if issue.BoundingBox != nil {
			t.Errorf("BoundingBox = %v, want nil", issue.BoundingBox)
		}
		if issue.PageNumber == nil || *issue.PageNumber != 3 {
			t.Errorf("PageNumber = %v, want 3", issue.PageNumber)
		}
	})

	t.Run("unmatched sentence leaves location empty", func(t *testing.T) {
		issue := Issue{Text: "no such text anywhere"}
		annotate(&issue, chunk, 0)

		if issue.ParagraphIndex != nil || issue.PageNumber != nil || issue.BoundingBox != nil {
			t.Errorf("location should stay empty, got %+v", issue)
		}
	})

	t.Run("empty sentence leaves location empty", func(t *testing.T) {
		issue := Issue{Text: "   "}
		annotate(&issue, chunk, 0)

		if issue.ParagraphIndex != nil {
			t.Errorf("ParagraphIndex = %v, want nil", issue.ParagraphIndex)
		}
	})
}
