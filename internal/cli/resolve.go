package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/montage/internal/document"
	"github.com/roach88/montage/internal/engine"
	"github.com/roach88/montage/internal/probe"
	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/resolve"
	"github.com/roach88/montage/internal/timing"
)

// ResolvedClip is one clip of the resolved timeline report, in seconds.
type ResolvedClip struct {
	Alias  string  `json:"alias,omitempty"`
	Type   string  `json:"type"`
	Src    string  `json:"src,omitempty"`
	Start  float64 `json:"start"`
	Length float64 `json:"length"`
	End    float64 `json:"end"`
}

// ResolvedTrack is one track of the resolved timeline report.
type ResolvedTrack struct {
	Clips []ResolvedClip `json:"clips"`
}

// ResolvedTimeline is the resolve command's output payload.
type ResolvedTimeline struct {
	Duration float64         `json:"duration"`
	Tracks   []ResolvedTrack `json:"tracks"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		ffprobeBinary string
		defaultLength float64
		probeTimeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "resolve <project-file>",
		Short: "Resolve a project's timing and print the timeline",
		Long: `Load a project document, resolve every alias, auto, and end timing
value to concrete milliseconds, and print the resulting timeline.

"auto" lengths of video and audio clips are probed with ffprobe; clips
whose probe fails fall back to the default length.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prober := probe.New(ffprobeBinary)
			return runResolve(rootOpts, args[0], cmd, prober,
				resolve.WithDefaultLength(timing.Seconds(defaultLength)),
				resolve.WithProbeTimeout(probeTimeout),
			)
		},
	}

	cmd.Flags().StringVar(&ffprobeBinary, "ffprobe", "ffprobe", "ffprobe binary used for duration probes")
	cmd.Flags().Float64Var(&defaultLength, "default-length", float64(timing.DefaultAutoLength), "fallback clip length in seconds when a probe is not possible")
	cmd.Flags().DurationVar(&probeTimeout, "probe-timeout", time.Duration(timing.DefaultProbeTimeout)*time.Millisecond, "per-clip duration probe timeout")

	return cmd
}

func runResolve(opts *RootOptions, path string, cmd *cobra.Command, prober resolve.DurationProber, ropts ...resolve.Option) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := document.Load(path)
	if err != nil {
		return outputDocumentError(formatter, path, err)
	}

	timeline, err := ResolveDocument(cmd.Context(), doc, prober, ropts...)
	if err != nil {
		_ = formatter.Error("RESOLVE_FAILED", err.Error(), nil)
		return WrapExitError(ExitFailure, fmt.Sprintf("resolve %s", path), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(timeline)
	}
	renderTimeline(formatter.Writer, timeline)
	return nil
}

// ResolveDocument materializes a document and runs the full resolution
// pipeline over it, returning the timeline in seconds.
func ResolveDocument(ctx context.Context, doc *document.Document, prober resolve.DurationProber, opts ...resolve.Option) (*ResolvedTimeline, error) {
	p, err := doc.ToProject()
	if err != nil {
		return nil, err
	}
	eng := engine.New(p, resolve.New(prober, opts...))
	if err := eng.ResolveAll(ctx); err != nil {
		return nil, err
	}
	return buildTimeline(p), nil
}

func buildTimeline(p *project.Project) *ResolvedTimeline {
	tl := &ResolvedTimeline{Duration: float64(timing.ToSeconds(p.Duration))}
	for _, t := range p.Tracks {
		track := ResolvedTrack{}
		for _, c := range t.Clips {
			track.Clips = append(track.Clips, ResolvedClip{
				Alias:  c.Alias,
				Type:   string(c.Asset.Type),
				Src:    c.Asset.Src,
				Start:  float64(timing.ToSeconds(c.Resolved.Start)),
				Length: float64(timing.ToSeconds(c.Resolved.Length)),
				End:    float64(timing.ToSeconds(c.Resolved.End())),
			})
		}
		tl.Tracks = append(tl.Tracks, track)
	}
	return tl
}

// renderTimeline prints the human-readable timeline table.
func renderTimeline(w io.Writer, tl *ResolvedTimeline) {
	for ti, track := range tl.Tracks {
		fmt.Fprintf(w, "track %d\n", ti)
		for _, c := range track.Clips {
			name := c.Src
			if name == "" {
				name = "-"
			}
			label := ""
			if c.Alias != "" {
				label = " [" + c.Alias + "]"
			}
			fmt.Fprintf(w, "  %-8s %-24s %8.3fs .. %8.3fs (%.3fs)%s\n",
				c.Type, name, c.Start, c.End, c.Length, label)
		}
	}
	fmt.Fprintf(w, "duration %.3fs\n", tl.Duration)
}
