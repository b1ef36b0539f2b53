package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"VideoVault/internal/app"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] [CARRIER] PAYLOAD...",
	Short: "Hide files inside a video",
	Long: `Hide one or more files inside a video.

Methods that need a carrier take the carrier video as the first argument.
The datareel method builds a new video from the payloads alone.`,
	Example: `  videovault encode -m steganography -o secret.avi holiday.mp4 notes.txt
  videovault encode -m datareel -o reel.mp4 -p hunter2 archive.zip
  echo "pw" | videovault encode -m append -P -o out.mp4 clip.mp4 plan.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

var (
	encMethod        string
	encOutput        string
	encPassword      string
	encPasswordStdin bool
	encForce         bool
	encQuiet         bool
)

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encMethod, "method", "m", "steganography", "Embedding method")
	encodeCmd.Flags().StringVarP(&encOutput, "output", "o", "", "Output video (default: the method's default name)")
	encodeCmd.Flags().StringVarP(&encPassword, "password", "p", "", "Password (insecure, visible in process list)")
	encodeCmd.Flags().BoolVarP(&encPasswordStdin, "password-stdin", "P", false, "Read password from stdin")
	encodeCmd.Flags().BoolVarP(&encForce, "force", "f", false, "Overwrite an existing output file")
	encodeCmd.Flags().BoolVarP(&encQuiet, "quiet", "q", false, "Suppress progress output")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	stderr := cmd.ErrOrStderr()

	cfg := activeConfig
	m, ok := cfg.Methods.Lookup(encMethod)
	if !ok {
		return fmt.Errorf("unknown method %q (available: %v)", encMethod, cfg.Methods.Names())
	}

	carrier, payloads := "", args
	if m.Carrier {
		if len(args) < 2 {
			return fmt.Errorf("method %s needs a carrier video and at least one file to hide", m.Name)
		}
		carrier, payloads = args[0], args[1:]
	}
	for _, p := range append([]string{carrier}, payloads...) {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("input %s: %w", p, err)
		}
	}

	output := encOutput
	if output == "" {
		output = m.OutputName
	}
	if _, err := os.Stat(output); err == nil && !encForce {
		return fmt.Errorf("output %s already exists (use --force to overwrite)", output)
	}

	password, err := resolvePassword(encPassword, encPasswordStdin, true)
	if err != nil {
		return err
	}
	if warn := weakPasswordWarning(password); warn != "" && !encQuiet {
		fmt.Fprintln(stderr, warn)
	}

	rt := newRuntime(cfg)
	res, err := runJob(cmd.Context(), rt, job{
		page:   app.PageEncode,
		method: m.Name,
		output: output,
		quiet:  encQuiet,
		prepare: func(w *app.Workflow) {
			if carrier != "" {
				w.SetCarrier(carrier)
			}
			w.AddPayloads(payloads...)
			w.SetPassword(password)
		},
	}, stderr)
	if err == nil && !encQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", output)
	}
	return reportJob(stderr, encQuiet, res, err)
}
