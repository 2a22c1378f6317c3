package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/llm"
	"github.com/abhisek/learnpad/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate timed-test questions or a lesson for an entry with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetString("topic")
		entryID, _ := cmd.Flags().GetString("entry")
		count, _ := cmd.Flags().GetInt("count")
		write, _ := cmd.Flags().GetBool("write")
		kind, _ := cmd.Flags().GetString("kind")
		if kind != "test" && kind != "lesson" {
			return fmt.Errorf("unknown --kind %q (want test or lesson)", kind)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cfg)
		if err != nil {
			return err
		}
		topic, ok := lib.Topic(topicID)
		if !ok {
			return fmt.Errorf("unknown topic %q", topicID)
		}
		entry, ok := topic.Entry(entryID)
		if !ok {
			return fmt.Errorf("unknown entry %q in topic %s", entryID, topicID)
		}

		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if cfg.LLMDiscovered {
			fmt.Fprintf(os.Stderr, "Using %s (found %s API key).\n", cfg.LLM.Provider, cfg.LLM.Provider)
		}
		provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, s.LLMCallRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLMTimeout())
		defer cancel()

		var (
			generated any
			summary   string
		)
		switch kind {
		case "test":
			questions, err := content.NewTestGenerator(provider).Generate(ctx, topic, entry, count)
			if err != nil {
				return err
			}
			if len(questions) < count {
				fmt.Fprintf(os.Stderr, "Only %d of %d questions passed validation.\n", len(questions), count)
			}
			entry.TimedTest = &content.TimedTest{Questions: questions}
			generated = entry.TimedTest
			summary = fmt.Sprintf("%d questions", len(questions))
		case "lesson":
			lesson, quiz, err := content.NewLessonGenerator(provider).Generate(ctx, topic, entry)
			if err != nil {
				return err
			}
			entry.Lesson = lesson
			if quiz != nil && entry.Quiz == nil {
				entry.Quiz = quiz
			}
			generated = struct {
				Lesson *content.Lesson `json:"lesson"`
				Quiz   *content.Quiz   `json:"quiz,omitempty"`
			}{lesson, quiz}
			summary = "a lesson"
		}

		if !write {
			out, err := json.MarshalIndent(generated, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		path := filepath.Join(cfg.ContentDir, topic.ID+".json")
		if err := writeTopic(path, topic); err != nil {
			return err
		}
		fmt.Printf("Wrote %s to %s\n", summary, path)
		return nil
	},
}

func writeTopic(path string, topic *content.Topic) error {
	if err := content.Check(topic); err != nil {
		return fmt.Errorf("generated topic is invalid: %w", err)
	}
	data, err := json.MarshalIndent(topic, "", "  ")
	if err != nil {
		return fmt.Errorf("encode topic: %w", err)
	}
	if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	generateCmd.Flags().String("topic", "", "Topic ID")
	generateCmd.Flags().String("entry", "", "Entry ID within the topic")
	generateCmd.Flags().String("kind", "test", "What to generate: test or lesson")
	generateCmd.Flags().Int("count", 5, "Number of questions (test only)")
	generateCmd.Flags().Bool("write", false, "Save the questions into the topic file in the content directory")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("entry")
}
