package review

import "strings"

// annotate fills in the best-effort document location for an issue by
// matching its quoted source sentence (or, when absent, the flagged
// excerpt) against the chunk's paragraphs. A quote that matches no
// paragraph leaves the location fields empty; annotation failures never
// fail the task.
//
// offset is the index of the chunk's first paragraph within the full
// document, so ParagraphIndex is document-relative.
func annotate(issue *Issue, paragraphs []Paragraph, offset int) {
	excerpt := normalize(issue.SourceSentence)
	if excerpt == "" {
		excerpt = normalize(issue.Text)
	}
	if excerpt == "" {
		return
	}

	for i, p := range paragraphs {
		if !strings.Contains(normalize(p.Content), excerpt) {
			continue
		}

		idx := offset + i
		page := p.PageNumber

		issue.ParagraphIndex = &idx
		issue.PageNumber = &page
		if len(p.BoundingBox) == 4 {
			issue.BoundingBox = p.BoundingBox
		}
		return
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
