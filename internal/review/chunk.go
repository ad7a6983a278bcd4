package review

// chunkParagraphs splits paragraphs into consecutive chunks of at most
// size elements. The final chunk holds the remainder.
func chunkParagraphs(paragraphs []Paragraph, size int) [][]Paragraph {
	if len(paragraphs) == 0 {
		return nil
	}

	chunks := make([][]Paragraph, 0, (len(paragraphs)+size-1)/size)
	for start := 0; start < len(paragraphs); start += size {
		end := min(start+size, len(paragraphs))
		chunks = append(chunks, paragraphs[start:end])
	}

	return chunks
}
