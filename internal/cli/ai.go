package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"VideoVault/internal/util"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest-password",
	Short: "Suggest a strong password",
	Long: `Ask the engine's assistant for a strong password and print it.

With --offline the password is generated locally instead.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

var peekCmd = &cobra.Command{
	Use:   "peek VIDEO",
	Short: "Ask the assistant what a video appears to contain",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeek,
}

var (
	suggestOffline bool
	suggestLength  int
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(peekCmd)

	suggestCmd.Flags().BoolVar(&suggestOffline, "offline", false, "Generate the password locally")
	suggestCmd.Flags().IntVar(&suggestLength, "length", 32, "Length of an offline password")
}

// assistContext cancels the buffered engine run on SIGINT/SIGTERM.
func assistContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if suggestOffline {
		pw, err := util.GenPassword(util.PassgenOptions{
			Length:  suggestLength,
			Upper:   true,
			Lower:   true,
			Numbers: true,
			Symbols: true,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pw)
		return nil
	}

	ctx, cancel := assistContext(cmd)
	defer cancel()

	rt := newRuntime(activeConfig)
	w := newWorkflow(rt, fixedDialogs{}, NewReporter(os.Stderr, true))
	pw, err := w.SuggestPassword(ctx)
	if err != nil {
		NewReporter(cmd.ErrOrStderr(), false).PrintError("%v", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pw)
	return nil
}

func runPeek(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("input %s: %w", args[0], err)
	}

	ctx, cancel := assistContext(cmd)
	defer cancel()

	rt := newRuntime(activeConfig)
	w := newWorkflow(rt, fixedDialogs{}, NewReporter(os.Stderr, true))
	if err := w.SelectDecode(rt.cfg.Methods[0].Name); err != nil {
		return err
	}
	w.SetCarrier(args[0])
	text, err := w.Peek(ctx)
	if err != nil {
		NewReporter(cmd.ErrOrStderr(), false).PrintError("%v", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
