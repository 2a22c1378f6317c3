package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/learnpad/internal/llm"
)

// LessonFormat is the structured output requested when writing a lesson.
var LessonFormat = &llm.Format{
	Name:        "lesson",
	Description: "A short lesson with an explanation, a worked example and one practice question",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the lesson (3-8 words)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Plain explanation of the idea (3-6 sentences)",
			},
			"worked_example": map[string]any{
				"type":        "string",
				"description": "A fully worked example with numbered steps",
			},
			"practice": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt":  map[string]any{"type": "string"},
					"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"answer":  map[string]any{"type": "string"},
				},
				"required":             []any{"prompt", "options", "answer"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"title", "explanation", "worked_example", "practice"},
		"additionalProperties": false,
	},
}

const lessonGenSystemPrompt = `You are a patient tutor writing a short lesson for one entry of a course.
Explain the idea clearly, then show one worked example with every step.
Finish with one easy multiple-choice practice question with 3 or 4 distinct options;
its answer must repeat the correct option character for character.
Use plain ASCII text. No markdown, no LaTeX.`

// LessonGenerator writes lessons for entries that have none.
type LessonGenerator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewLessonGenerator returns a generator backed by provider.
func NewLessonGenerator(provider llm.Provider) *LessonGenerator {
	return &LessonGenerator{provider: provider, maxTokens: 1536, temperature: 0.5}
}

type lessonOutput struct {
	Title         string       `json:"title"`
	Explanation   string       `json:"explanation"`
	WorkedExample string       `json:"worked_example"`
	Practice      QuestionData `json:"practice"`
}

// Generate writes a lesson for entry. The practice question comes back as a
// one-question quiz, or nil when it breaks the content rules.
func (g *LessonGenerator) Generate(ctx context.Context, topic *Topic, entry *Entry) (*Lesson, *Quiz, error) {
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "lesson-gen"), llm.Request{
		System:      lessonGenSystemPrompt,
		Prompt:      lessonGenPrompt(topic, entry),
		Format:      LessonFormat,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("generate lesson for %s/%s: %w", topic.ID, entry.ID, err)
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, nil, fmt.Errorf("decode generated lesson: %w", err)
	}

	lesson := &Lesson{
		Title: strings.TrimSpace(out.Title),
		Body:  strings.TrimSpace(out.Explanation),
	}
	if ex := strings.TrimSpace(out.WorkedExample); ex != "" {
		lesson.Body += "\n\nWorked example:\n" + ex
	}
	if err := Check(lesson); err != nil {
		return nil, nil, fmt.Errorf("generated lesson: %w", err)
	}

	var quiz *Quiz
	if Check(out.Practice) == nil {
		quiz = &Quiz{Questions: []QuestionData{out.Practice}}
	}
	return lesson, quiz, nil
}

func lessonGenPrompt(topic *Topic, entry *Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course topic: %s\n", topic.Title)
	if topic.Description != "" {
		fmt.Fprintf(&b, "Topic summary: %s\n", topic.Description)
	}
	fmt.Fprintf(&b, "Entry: %s\n", entry.Title)

	var siblings []string
	for _, su := range topic.SubUnits {
		for _, e := range su.Entries {
			if e.ID != entry.ID {
				siblings = append(siblings, e.Title)
			}
		}
	}
	if len(siblings) > 0 {
		b.WriteString("\nOther entries in this topic (do not cover them):\n")
		for _, s := range siblings {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if entry.TimedTest != nil && len(entry.TimedTest.Questions) > 0 {
		b.WriteString("\nThe lesson must prepare the learner for questions like:\n")
		for _, q := range entry.TimedTest.Questions {
			fmt.Fprintf(&b, "- %s\n", q.Prompt)
		}
	}
	return b.String()
}
