package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/montage/internal/probe"
)

// ProbeResult is the probe command's output payload.
type ProbeResult struct {
	Src      string  `json:"src"`
	Duration float64 `json:"duration"`
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	var ffprobeBinary string

	cmd := &cobra.Command{
		Use:   "probe <media-file>",
		Short: "Probe a media file's duration",
		Long: `Probe a media file with ffprobe and print its container duration in
seconds. This is the same probe "auto" length resolution performs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			dur, err := probe.New(ffprobeBinary).ProbeDuration(cmd.Context(), args[0])
			if err != nil {
				_ = formatter.Error("PROBE_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, fmt.Sprintf("probe %s", args[0]), err)
			}

			if formatter.Format == "json" {
				return formatter.Success(ProbeResult{Src: args[0], Duration: float64(dur)})
			}
			fmt.Fprintf(formatter.Writer, "%s: %.3fs\n", args[0], float64(dur))
			return nil
		},
	}

	cmd.Flags().StringVar(&ffprobeBinary, "ffprobe", "ffprobe", "ffprobe binary")
	return cmd
}
