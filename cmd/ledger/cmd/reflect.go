package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/reflection"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Daily reflection prompts",
	Long: `Answer rotating reflection prompts. Each answer advances the prompt
within its group and moves on to the next group; skip moves to the next
group without recording anything.

Subcommands:
  prompt  - Show the current prompt
  skip    - Move to the next group
  answer  - Answer the current prompt
  list    - List saved reflections, newest first

Examples:
  ledger reflect prompt
  ledger reflect answer "Stuck to the plan after the first loss."`,
}

var reflectPromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Show the current prompt",
	Args:  cobra.NoArgs,
	RunE:  runReflectPrompt,
}

var reflectSkipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip to the next prompt group",
	Args:  cobra.NoArgs,
	RunE:  runReflectSkip,
}

var reflectAnswerCmd = &cobra.Command{
	Use:   "answer <text>...",
	Short: "Answer the current prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReflectAnswer,
}

var reflectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reflections",
	Args:  cobra.NoArgs,
	RunE:  runReflectList,
}

func init() {
	rootCmd.AddCommand(reflectCmd)
	reflectCmd.AddCommand(reflectPromptCmd)
	reflectCmd.AddCommand(reflectSkipCmd)
	reflectCmd.AddCommand(reflectAnswerCmd)
	reflectCmd.AddCommand(reflectListCmd)
}

func printPrompt(cmd *cobra.Command, p reflection.Prompt) {
	fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n%s\n", p.Group, p.Text)
}

func runReflectPrompt(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := l.CurrentPrompt(cmd.Context())
	if err != nil {
		return err
	}
	printPrompt(cmd, p)
	return nil
}

func runReflectSkip(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := l.SkipPrompt(cmd.Context())
	if err != nil {
		return err
	}
	printPrompt(cmd, p)
	return nil
}

func runReflectAnswer(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	r, next, err := l.SaveReflection(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("save reflection: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Saved reflection %s\n\nNext:\n", r.ID)
	printPrompt(cmd, next)
	return nil
}

func runReflectList(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	rs, err := l.Reflections(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rs) == 0 {
		fmt.Fprintln(out, "No reflections yet.")
		return nil
	}
	for _, r := range rs {
		fmt.Fprintf(out, "* %s  %s\n  %s\n  %s\n\n", r.Date.Format("2006-01-02 15:04"), r.Group, r.Prompt, r.Answer)
	}
	return nil
}
