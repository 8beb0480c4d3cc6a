// Package cli implements the passgen command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
)

type options struct {
	length       int
	digits       bool
	special      bool
	specialChars string
	verbose      bool
}

// NewRootCommand returns the passgen command. The password is written to the
// command's output stream.
func NewRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "passgen --length LENGTH [flags]",
		Short: "Generate a pronounceable password",
		Long: `passgen prints one password built from alternating consonants and vowels,
optionally with a two-digit number and a special character spliced in at
random positions.

  # 10 characters including two digits and one special character
  $ passgen -l 10 -d -s`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			if !cmd.Flags().Changed("chars") {
				cfg, err := config.ParseCLI()
				if err != nil {
					return err
				}
				opts.specialChars = cfg.SpecialChars
			}

			r, err := crypto.NewRand()
			if err != nil {
				return err
			}

			slog.Debug("generating password", "length", opts.length, "digits", opts.digits, "special", opts.special)
			password, err := crypto.GeneratePronounceable(r, crypto.PronounceableOptions{
				Length:       opts.length,
				Digits:       opts.digits,
				Special:      opts.special,
				SpecialChars: opts.specialChars,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.length, "length", "l", 0, "Total password length")
	flags.BoolVarP(&opts.digits, "digits", "d", false, "Include numbers (adds 2 digits)")
	flags.BoolVarP(&opts.special, "special", "s", false, "Include a special character")
	flags.StringVarP(&opts.specialChars, "chars", "c", crypto.DefaultSpecialChars, "Custom special characters")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	_ = cmd.MarkFlagRequired("length")

	return cmd
}

// Execute runs passgen with args and returns the process exit code. Failures
// are reported on stderr followed by the usage text.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(normalizeArgs(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return 1
	}
	return 0
}

// singleDashFlags are the long flags also accepted with one dash, as in
// "passgen -length 10 -digits".
var singleDashFlags = map[string]bool{
	"length":  true,
	"digits":  true,
	"special": true,
	"chars":   true,
}

// normalizeArgs rewrites single-dash long flags to their double-dash form.
// Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[1:], "=")
			if singleDashFlags[name] {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}
