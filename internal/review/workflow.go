package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/redlinehq/redline/internal/documents"
	"github.com/redlinehq/redline/internal/issues"
)

// Execute runs the review workflow for a single document. It builds the
// state graph (init → review → persist), executes it, and extracts the
// Result from the final state. On failure the document is marked
// review_failed before the error is returned.
func Execute(ctx context.Context, rt *Runtime, documentID uuid.UUID, initiatedBy string) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocumentID, documentID)
	initialState = initialState.Set(KeyInitiatedBy, initiatedBy)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		markFailed(ctx, rt, documentID)
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("redline-review")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("init", InitNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("review", ReviewNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("persist", PersistNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("init", "review", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("review", "persist", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("persist"); err != nil {
		return nil, err
	}

	return graph, nil
}

// InitNode returns a state node that marks the document as reviewing,
// loads its extracted paragraph artifact, and resolves the agent types
// to run against it.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		documentID, err := extractDocumentID(s)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		if _, err := rt.Documents.Find(ctx, documentID); err != nil {
			return s, fmt.Errorf("init: %w: %w", ErrDocumentNotFound, err)
		}

		types := rt.Prompts.DistinctTypes(ctx)
		if len(types) == 0 {
			return s, fmt.Errorf("init: %w", ErrNoAgentTypes)
		}

		analysis, err := loadParagraphs(ctx, rt, documentID)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		if _, err := rt.Documents.SetStatus(ctx, documentID, documents.StatusReviewing); err != nil {
			return s, fmt.Errorf("init: set status: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"document_id", documentID,
			"paragraph_count", len(analysis.Paragraphs),
			"types", types,
		)

		s = s.Set(KeyParagraphs, analysis.Paragraphs)
		s = s.Set(KeyTypes, types)

		return s, nil
	})
}

// ReviewNode returns a state node that runs the review pipeline and
// drains its batch stream into the state bag.
func ReviewNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		paragraphs, err := extractSlice[Paragraph](s, KeyParagraphs)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		types, err := extractSlice[string](s, KeyTypes)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		pipeline := &Pipeline{
			Analyzer:    rt.Analyzer,
			Prompts:     rt.Prompts,
			Logger:      rt.Logger,
			ChunkSize:   rt.Config.ChunkSize,
			WorkerCount: rt.Config.WorkerCount,
			TaskTimeout: rt.Config.TaskTimeoutDuration(),
		}

		stream, err := pipeline.Run(ctx, paragraphs, types)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		batches := make([]Batch, 0)
		for batch := range stream {
			batches = append(batches, batch)
		}

		if err := ctx.Err(); err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "review node complete",
			"chunk_count", len(batches),
		)

		s = s.Set(KeyBatches, batches)
		return s, nil
	})
}

// PersistNode returns a state node that stores flagged issues per batch
// and marks the document as reviewed.
func PersistNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		documentID, err := extractDocumentID(s)
		if err != nil {
			return s, fmt.Errorf("persist: %w", err)
		}

		initiatedBy := extractInitiatedBy(s)

		batches, err := extractSlice[Batch](s, KeyBatches)
		if err != nil {
			return s, fmt.Errorf("persist: %w", err)
		}

		types, err := extractSlice[string](s, KeyTypes)
		if err != nil {
			return s, fmt.Errorf("persist: %w", err)
		}

		total := 0
		for _, batch := range batches {
			cmds := make([]issues.CreateCommand, 0, len(batch.Issues))
			for _, issue := range batch.Issues {
				cmds = append(cmds, issues.CreateCommand{
					DocumentID:        documentID,
					Type:              issue.Type,
					Text:              issue.Text,
					Explanation:       issue.Explanation,
					SuggestedFix:      issue.SuggestedFix,
					SourceSentence:    issue.SourceSentence,
					PageNumber:        issue.PageNumber,
					BoundingBox:       issue.BoundingBox,
					ParagraphIndex:    issue.ParagraphIndex,
					Chunk:             issue.Chunk,
					ReviewInitiatedBy: initiatedBy,
				})
			}

			if _, err := rt.Issues.CreateBatch(ctx, cmds); err != nil {
				return s, fmt.Errorf("persist: chunk %d: %w", batch.Chunk, err)
			}
			total += len(cmds)
		}

		if _, err := rt.Documents.SetStatus(ctx, documentID, documents.StatusReviewed); err != nil {
			return s, fmt.Errorf("persist: set status: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "persist node complete",
			"document_id", documentID,
			"issue_count", total,
		)

		s = s.Set(KeyResult, Result{
			DocumentID:  documentID,
			ChunkCount:  len(batches),
			IssueCount:  total,
			Types:       types,
			CompletedAt: time.Now(),
		})

		return s, nil
	})
}

func loadParagraphs(ctx context.Context, rt *Runtime, documentID uuid.UUID) (*AnalysisResult, error) {
	data, err := rt.Documents.LoadAnalysis(ctx, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, ErrAnalysisMissing
		}
		return nil, fmt.Errorf("load analysis: %w", err)
	}

	var analysis AnalysisResult
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}

	if len(analysis.Paragraphs) == 0 {
		return nil, ErrAnalysisMissing
	}

	return &analysis, nil
}

func markFailed(ctx context.Context, rt *Runtime, documentID uuid.UUID) {
	if _, err := rt.Documents.SetStatus(ctx, documentID, documents.StatusReviewFailed); err != nil {
		rt.Logger.Error("mark review failed", "document_id", documentID, "error", err)
	}
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(Result)
	if !ok {
		return nil, fmt.Errorf("%s is not Result", KeyResult)
	}

	return &result, nil
}

func extractDocumentID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyDocumentID)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing %s in state", KeyDocumentID)
	}

	documentID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%s is not uuid.UUID", KeyDocumentID)
	}

	return documentID, nil
}

func extractInitiatedBy(s state.State) string {
	if val, ok := s.Get(KeyInitiatedBy); ok {
		if initiatedBy, ok := val.(string); ok {
			return initiatedBy
		}
	}
	return "unknown"
}

func extractSlice[T any](s state.State, key string) ([]T, error) {
	val, ok := s.Get(key)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", key)
	}

	slice, ok := val.([]T)
	if !ok {
		return nil, fmt.Errorf("%s has unexpected type", key)
	}

	return slice, nil
}
