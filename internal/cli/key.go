package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bundlecore/internal/key"
)

// NewKeyCommand creates the key command.
func NewKeyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key <reference>",
		Short: "Parse a resource reference",
		Long: `Parse a relative or absolute resource reference and print its parts.

Examples:
  bundlecore key Patient/42/_history/3
  bundlecore key https://example.org/fhir/Patient/42 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKey(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runKey(opts *RootOptions, ref string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	k, err := key.Parse(ref)
	if err != nil {
		if outErr := formatter.Error(ErrCodeInvalidKey, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "invalid reference", err)
	}

	if opts.Format == "json" {
		return formatter.Success(k)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "type:    %s\n", k.TypeName)
	fmt.Fprintf(w, "id:      %s\n", orDash(k.ResourceID))
	fmt.Fprintf(w, "version: %s\n", orDash(k.VersionID))
	fmt.Fprintf(w, "base:    %s\n", orDash(k.Base))
	formatter.VerboseLog("canonical: %s", k)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
