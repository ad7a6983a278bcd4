package review

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pipeline runs guideline review tasks over a document's paragraphs.
// Paragraphs are split into fixed-size chunks; within each chunk one task
// runs per agent type under bounded concurrency. Task failures are
// isolated: a failed task logs its error and drops its contribution
// without cancelling sibling tasks or later chunks.
type Pipeline struct {
	Analyzer    Analyzer
	Prompts     PromptSource
	Logger      *slog.Logger
	ChunkSize   int
	WorkerCount int
	TaskTimeout time.Duration
}

// Run streams one Batch per chunk, in chunk order, on the returned
// channel. Within a batch, issues appear in agent type discovery order
// and carry their type stamp. The channel closes after the final chunk,
// or early when ctx is cancelled. Run fails when no type resolves a
// guideline prompt; a run with zero runnable tasks must not record a
// clean review.
func (p *Pipeline) Run(ctx context.Context, paragraphs []Paragraph, types []string) (<-chan Batch, error) {
	prompts := p.loadPrompts(ctx, types)
	if !anyPrompt(prompts) {
		return nil, ErrNoPrompts
	}

	out := make(chan Batch)

	go func() {
		defer close(out)

		chunks := chunkParagraphs(paragraphs, p.ChunkSize)

		for ci, chunk := range chunks {
			batch := p.reviewChunk(ctx, ci, ci*p.ChunkSize, chunk, types, prompts)

			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// loadPrompts resolves the guideline prompt per type once for the run.
// A type with no prompt stays in the map as empty; its tasks fail
// individually so the remaining types still run.
func (p *Pipeline) loadPrompts(ctx context.Context, types []string) map[string]string {
	prompts := make(map[string]string, len(types))
	for _, t := range types {
		prompts[t] = p.Prompts.LatestPromptByType(ctx, t)
	}
	return prompts
}

func anyPrompt(prompts map[string]string) bool {
	for _, prompt := range prompts {
		if prompt != "" {
			return true
		}
	}
	return false
}

func (p *Pipeline) reviewChunk(
	ctx context.Context,
	chunkIdx, offset int,
	chunk []Paragraph,
	types []string,
	prompts map[string]string,
) Batch {
	results := make([][]Issue, len(types))

	g := &errgroup.Group{}
	g.SetLimit(p.workers(len(types)))

	for ti, agentType := range types {
		g.Go(func() error {
			prompt := prompts[agentType]
			if prompt == "" {
				p.Logger.Error(
					"review task failed",
					"chunk", chunkIdx,
					"type", agentType,
					"error", ErrPromptNotFound,
				)
				return nil
			}

			findings, err := p.analyze(ctx, prompt, chunk)
			if err != nil {
				p.Logger.Error(
					"review task failed",
					"chunk", chunkIdx,
					"type", agentType,
					"error", err,
				)
				return nil
			}

			issues := make([]Issue, 0, len(findings))
			for _, f := range findings {
				issue := Issue{
					Type:           agentType,
					Text:           f.Text,
					Explanation:    f.Explanation,
					SuggestedFix:   f.SuggestedFix,
					SourceSentence: f.SourceSentence,
					Chunk:          chunkIdx,
				}
				annotate(&issue, chunk, offset)
				issues = append(issues, issue)
			}

			results[ti] = issues
			return nil
		})
	}

	g.Wait()

	batch := Batch{Chunk: chunkIdx, Issues: []Issue{}}
	for _, issues := range results {
		batch.Issues = append(batch.Issues, issues...)
	}

	return batch
}

func (p *Pipeline) analyze(ctx context.Context, prompt string, chunk []Paragraph) ([]Finding, error) {
	if p.TaskTimeout > 0 {
		taskCtx, cancel := context.WithTimeout(ctx, p.TaskTimeout)
		defer cancel()
		return p.Analyzer.Analyze(taskCtx, prompt, chunk)
	}
	return p.Analyzer.Analyze(ctx, prompt, chunk)
}

func (p *Pipeline) workers(taskCount int) int {
	if p.WorkerCount > 0 {
		return p.WorkerCount
	}
	return max(min(runtime.NumCPU(), taskCount), 1)
}
