package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/quiz"
)

var flagShowAnswers bool

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Validate and list the question bank",
	Long: `Load the question bank the game would use, validate it and list its
questions in play order. Fails when the bank is invalid or holds fewer
reward questions than the configured reward target.

Examples:
  flaptrivia questions
  flaptrivia questions --answers
  flaptrivia questions --questions ./my-questions.yaml`,
	Args: cobra.NoArgs,
	RunE: runQuestions,
}

func init() {
	questionsCmd.Flags().BoolVar(&flagShowAnswers, "answers", false, "Mark the correct option of each question")
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(flagConfig, config.DefaultMode)
	if err != nil {
		return err
	}
	bank, err := quiz.LoadBank(flagQuestions)
	if err != nil {
		return err
	}
	if err := bank.CheckRewardTarget(cfg.Trivia.RewardTarget); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d questions, %d with rewards (target %d)\n\n",
		bank.Len(), bank.RewardCount(), cfg.Trivia.RewardTarget)

	for i := 0; i < bank.Len(); i++ {
		q := bank.At(i)
		marker := " "
		if q.HasReward() {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %2d. %s\n", marker, q.ID, q.Title)
		fmt.Fprintf(out, "      %s\n", q.Prompt)
		for j, o := range q.Options {
			check := ""
			if flagShowAnswers && o.Correct {
				check = "  <- correct"
			}
			fmt.Fprintf(out, "      %c) %s%s\n", 'A'+j, o.Text, check)
		}
		if q.HasReward() {
			fmt.Fprintf(out, "      reward: %s\n", q.Reward)
		}
	}

	rev := bank.Revival()
	fmt.Fprintf(out, "\nRevival challenge: %s\n", rev.Prompt)
	for j, o := range rev.Options {
		check := ""
		if flagShowAnswers && o.Accepted {
			check = "  <- accepted"
		}
		fmt.Fprintf(out, "      %c) %s%s\n", 'A'+j, o.Text, check)
	}
	return nil
}
