package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"VideoVault/internal/app"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] VIDEO",
	Short: "Extract hidden files from a video",
	Example: `  videovault decode -m steganography -o ./out secret.avi
  videovault decode -m datareel -o ./out -p hunter2 reel.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

var (
	decMethod        string
	decOutput        string
	decPassword      string
	decPasswordStdin bool
	decQuiet         bool
)

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decMethod, "method", "m", "steganography", "Method the video was encoded with")
	decodeCmd.Flags().StringVarP(&decOutput, "output", "o", ".", "Folder to write extracted files to")
	decodeCmd.Flags().StringVarP(&decPassword, "password", "p", "", "Password (insecure, visible in process list)")
	decodeCmd.Flags().BoolVarP(&decPasswordStdin, "password-stdin", "P", false, "Read password from stdin")
	decodeCmd.Flags().BoolVarP(&decQuiet, "quiet", "q", false, "Suppress progress output")
}

func runDecode(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	stderr := cmd.ErrOrStderr()

	cfg := activeConfig
	if _, ok := cfg.Methods.Lookup(decMethod); !ok {
		return fmt.Errorf("unknown method %q (available: %v)", decMethod, cfg.Methods.Names())
	}

	carrier := args[0]
	if _, err := os.Stat(carrier); err != nil {
		return fmt.Errorf("input %s: %w", carrier, err)
	}
	info, err := os.Stat(decOutput)
	if err != nil {
		return fmt.Errorf("output folder %s: %w", decOutput, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output %s is not a folder", decOutput)
	}

	password, err := resolvePassword(decPassword, decPasswordStdin, false)
	if err != nil {
		return err
	}

	rt := newRuntime(cfg)
	res, err := runJob(cmd.Context(), rt, job{
		page:   app.PageDecode,
		method: decMethod,
		output: decOutput,
		quiet:  decQuiet,
		prepare: func(w *app.Workflow) {
			w.SetCarrier(carrier)
			w.SetPassword(password)
		},
	}, stderr)
	return reportJob(stderr, decQuiet, res, err)
}
