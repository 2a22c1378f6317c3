package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/learnpad/internal/llm"
)

// TestSetFormat is the structured output requested when generating a timed
// test.
var TestSetFormat = &llm.Format{
	Name:        "timed-test",
	Description: "A set of multiple-choice questions for a timed test",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner, plain text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 distinct answer options",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied exactly from options",
						},
					},
					"required":             []any{"prompt", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

const testGenSystemPrompt = `You write multiple-choice questions for short timed tests.
Every question has exactly 4 distinct options and exactly one correct option.
The answer field must repeat the correct option character for character.
Questions must be answerable in under a minute using only the lesson text.
Use plain ASCII text. No markdown.`

// ErrNoQuestions is returned when generation produced nothing usable.
var ErrNoQuestions = errors.New("content: no valid questions generated")

// TestGenerator writes timed-test question sets with an LLM.
type TestGenerator struct {
	provider  llm.Provider
	maxTokens int
}

// NewTestGenerator returns a generator backed by provider.
func NewTestGenerator(provider llm.Provider) *TestGenerator {
	return &TestGenerator{provider: provider, maxTokens: 2048}
}

// Generate asks for count questions for an entry. Questions that break the
// content rules are dropped; if none survive ErrNoQuestions is returned.
func (g *TestGenerator) Generate(ctx context.Context, topic *Topic, entry *Entry, count int) ([]QuestionData, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "test-gen"), llm.Request{
		System:      testGenSystemPrompt,
		Prompt:      testGenPrompt(topic, entry, count),
		Format:      TestSetFormat,
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate test for %s/%s: %w", topic.ID, entry.ID, err)
	}

	var out struct {
		Questions []QuestionData `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode generated test: %w", err)
	}

	var kept []QuestionData
	for _, q := range out.Questions {
		q.Prompt = strings.TrimSpace(q.Prompt)
		if Check(q) != nil {
			continue
		}
		kept = append(kept, q)
		if len(kept) == count {
			break
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoQuestions
	}
	return kept, nil
}

func testGenPrompt(topic *Topic, entry *Entry, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic.Title)
	fmt.Fprintf(&b, "Entry: %s\n", entry.Title)
	if entry.HasLesson() {
		fmt.Fprintf(&b, "\nLesson:\n%s\n", entry.Lesson.Body)
	}
	if entry.TimedTest != nil && len(entry.TimedTest.Questions) > 0 {
		b.WriteString("\nDo not repeat these existing questions:\n")
		for _, q := range entry.TimedTest.Questions {
			fmt.Fprintf(&b, "- %s\n", q.Prompt)
		}
	}
	fmt.Fprintf(&b, "\nWrite %d questions.", count)
	return b.String()
}
