package langchaingo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/tools"

	"github.com/hashgraph-online/bhash-go/pkg/fluree"
)

type generateFunc func(ctx context.Context, ownerHandle string, request fluree.PromptRequest) (any, error)

// knowledgeGraphTool runs a prompt through one of the Fluree generate
// endpoints.
type knowledgeGraphTool struct {
	owner     string
	datasets  []string
	generate  generateFunc
	Callbacks callbacks.Handler
}

func (t *knowledgeGraphTool) call(ctx context.Context, input string) (string, error) {
	if t.Callbacks != nil {
		t.Callbacks.HandleToolStart(ctx, input)
	}

	prompt := strings.TrimSpace(input)
	if prompt == "" {
		return "The input must be a non-empty question.", nil
	}

	result, err := t.generate(ctx, t.owner, fluree.PromptRequest{
		Datasets: t.datasets,
		Prompt:   prompt,
	})
	if err != nil {
		if t.Callbacks != nil {
			t.Callbacks.HandleToolError(ctx, err)
		}
		return fmt.Sprintf("Knowledge graph request failed: %v", err), nil
	}

	var output string
	if text, ok := result.(fluree.RawText); ok {
		output = string(text)
	} else {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode knowledge graph response: %w", err)
		}
		output = string(encoded)
	}

	if t.Callbacks != nil {
		t.Callbacks.HandleToolEnd(ctx, output)
	}
	return output, nil
}

// AnswerTool answers natural-language questions from Fluree datasets.
type AnswerTool struct {
	knowledgeGraphTool
}

var _ tools.Tool = &AnswerTool{}

// NewAnswerTool creates a new AnswerTool.
func NewAnswerTool(client *fluree.Client, ownerHandle string, datasets []string) *AnswerTool {
	return &AnswerTool{knowledgeGraphTool{
		owner:    ownerHandle,
		datasets: append([]string(nil), datasets...),
		generate: client.GenerateAnswer,
	}}
}

// Name returns the tool name shown to the agent.
func (t *AnswerTool) Name() string {
	return "Fluree_Knowledge_Graph_Answer"
}

// Description tells the agent when to use the tool.
func (t *AnswerTool) Description() string {
	return `Answers a natural-language question using the Fluree knowledge graph that records Hedera consensus topics, accounts and tokens.
Input should be a single question, for example "Which topics were created on testnet last week?".`
}

// Call asks generate-answer and returns the answer as JSON text.
func (t *AnswerTool) Call(ctx context.Context, input string) (string, error) {
	return t.call(ctx, input)
}

// SPARQLTool turns a question into a SPARQL query over Fluree datasets.
type SPARQLTool struct {
	knowledgeGraphTool
}

var _ tools.Tool = &SPARQLTool{}

// NewSPARQLTool creates a new SPARQLTool.
func NewSPARQLTool(client *fluree.Client, ownerHandle string, datasets []string) *SPARQLTool {
	return &SPARQLTool{knowledgeGraphTool{
		owner:    ownerHandle,
		datasets: append([]string(nil), datasets...),
		generate: client.GenerateSPARQL,
	}}
}

// Name returns the tool name shown to the agent.
func (t *SPARQLTool) Name() string {
	return "Fluree_Knowledge_Graph_SPARQL"
}

// Description tells the agent when to use the tool.
func (t *SPARQLTool) Description() string {
	return `Generates a SPARQL query for a natural-language question over the Fluree knowledge graph of Hedera artefacts.
Use it when you need the query itself rather than an answer.`
}

// Call asks generate-sparql and returns the generated query.
func (t *SPARQLTool) Call(ctx context.Context, input string) (string, error) {
	return t.call(ctx, input)
}
