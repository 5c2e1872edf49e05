package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/bundlecore/internal/fixture"
	"github.com/roach88/bundlecore/internal/interaction"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	AssignIDs bool
}

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Fixture      string                `json:"fixture"`
	Interactions []interaction.Summary `json:"interactions"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <fixture.yaml>",
		Short: "Build the interactions in a fixture and print them",
		Long: `Build every interaction described in a YAML fixture and print
one line per interaction: verb, key, pipeline state and timestamp.

Interactions without an explicit time are stamped when they are built.

Examples:
  bundlecore inspect admit.yaml
  bundlecore inspect admit.yaml --assign-ids
  bundlecore inspect admit.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.AssignIDs, "assign-ids", false, "give POST resources without an id a new UUIDv7 id")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(opts.RootOptions, formatter.GetErrWriter())

	fx, err := fixture.Load(path)
	if err != nil {
		if outErr := formatter.Error(ErrCodeLoadFailed, err.Error(), map[string]string{"path": path}); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}
	logger.Debug("fixture loaded", "name", fx.Name, "entries", len(fx.Interactions))

	builder := &fixture.Builder{Factory: interaction.NewFactory(opts.clock)}
	if opts.AssignIDs {
		builder.IDs = opts.ids
	}

	ixs, err := builder.Build(fx)
	if err != nil {
		if outErr := formatter.Error(ErrCodeBuildFailed, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "failed to build interactions", err)
	}

	result := InspectResult{
		Fixture:      fx.Name,
		Interactions: make([]interaction.Summary, 0, len(ixs)),
	}
	for _, ix := range ixs {
		logger.Debug("built interaction", "interaction", ix)
		result.Interactions = append(result.Interactions, ix.Summarize())
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputInspectText(formatter.Writer, result)
}

func outputInspectText(w io.Writer, result InspectResult) error {
	fmt.Fprintf(w, "Fixture: %s (%d interactions)\n", result.Fixture, len(result.Interactions))
	for i, s := range result.Interactions {
		when := "-"
		if s.When != nil {
			when = s.When.Format(time.RFC3339)
		}
		resource := ""
		if s.HasResource {
			resource = " +resource"
		}
		if _, err := fmt.Fprintf(w, "%3d. %-6s %s [%s] %s%s\n", i+1, s.Method, s.Key, s.State, when, resource); err != nil {
			return err
		}
	}
	return nil
}
