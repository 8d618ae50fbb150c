package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/teenquiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz question and attempt statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		an, err := s.Analytics(context.Background(), topic)
		if err != nil {
			return fmt.Errorf("query analytics: %w", err)
		}

		if len(an.QuestionsByTopic) == 0 {
			fmt.Println("No questions stored yet.")
			return nil
		}

		fmt.Println("Questions by Topic")
		fmt.Println(strings.Repeat("─", 52))
		fmt.Printf("%-24s  %-10s  %8s\n", "Topic", "Difficulty", "Count")
		fmt.Println(strings.Repeat("─", 52))
		var totalQuestions int64
		for _, q := range an.QuestionsByTopic {
			fmt.Printf("%-24s  %-10s  %8d\n", q.Topic, q.Difficulty, q.Count)
			totalQuestions += q.Count
		}
		fmt.Println(strings.Repeat("─", 52))
		fmt.Printf("%-24s  %-10s  %8d\n", "TOTAL", "", totalQuestions)

		if len(an.AttemptStats) == 0 {
			fmt.Println("\nNo attempts recorded yet.")
			return nil
		}

		// Fold correct/incorrect rows into one line per topic.
		type tally struct{ correct, total int64 }
		byTopic := map[string]*tally{}
		var order []string
		for _, a := range an.AttemptStats {
			t, ok := byTopic[a.Topic]
			if !ok {
				t = &tally{}
				byTopic[a.Topic] = t
				order = append(order, a.Topic)
			}
			t.total += a.Count
			if a.Correct {
				t.correct += a.Count
			}
		}

		fmt.Println("\nAttempts by Topic")
		fmt.Println(strings.Repeat("─", 52))
		fmt.Printf("%-24s  %8s  %8s  %6s\n", "Topic", "Attempts", "Correct", "Rate")
		fmt.Println(strings.Repeat("─", 52))
		for _, topic := range order {
			t := byTopic[topic]
			rate := float64(t.correct) / float64(t.total) * 100
			fmt.Printf("%-24s  %8d  %8d  %5.1f%%\n", topic, t.total, t.correct, rate)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("topic", "t", "", "Limit statistics to one topic")
}
