package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/redlinehq/redline/pkg/formatting"
)

// Analyzer runs a single review task: one guideline prompt applied to one
// paragraph chunk.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string, paragraphs []Paragraph) ([]Finding, error)
}

type findingsResponse struct {
	Issues []Finding `json:"issues"`
}

type agentAnalyzer struct {
	cfg gaconfig.AgentConfig
}

// NewAnalyzer creates an Analyzer backed by a go-agents chat model.
// Each task creates its own agent so concurrent tasks never share
// conversation state.
func NewAnalyzer(cfg gaconfig.AgentConfig) Analyzer {
	return &agentAnalyzer{cfg: cfg}
}

func (a *agentAnalyzer) Analyze(ctx context.Context, prompt string, paragraphs []Paragraph) ([]Finding, error) {
	ag, err := agent.New(&a.cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	resp, err := ag.Chat(ctx, composeTaskPrompt(prompt, paragraphs))
	if err != nil {
		return nil, fmt.Errorf("chat call: %w", err)
	}

	parsed, err := formatting.Parse[findingsResponse](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return parsed.Issues, nil
}

// composeTaskPrompt builds the task message: the guideline prompt, the
// required response shape, and the numbered paragraph text under review.
func composeTaskPrompt(prompt string, paragraphs []Paragraph) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nRespond with a JSON object of the form ")
	sb.WriteString(`{"issues": [{"text": "...", "explanation": "...", "suggested_fix": "...", "source_sentence": "..."}]}`)
	sb.WriteString(". The text must be the flagged excerpt quoted verbatim from the document ")
	sb.WriteString("and source_sentence the full sentence containing it; ")
	sb.WriteString("explanation states why it violates the guideline and suggested_fix proposes replacement wording. ")
	sb.WriteString("Respond with an empty issues array when the text complies with the guideline.")
	sb.WriteString("\n\nText under review:\n")

	for i, p := range paragraphs {
		fmt.Fprintf(&sb, "\n[%d] %s", i+1, p.Content)
	}

	return sb.String()
}
