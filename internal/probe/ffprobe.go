// Package probe implements the duration-probing capability with
// ffprobe. It is the production DurationProber behind "auto" length
// resolution; the timing core itself never executes processes.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/roach88/montage/internal/timing"
)

// FFProbe probes media durations by executing the ffprobe binary.
type FFProbe struct {
	binary string
}

// New creates a prober using the given ffprobe binary. An empty binary
// falls back to "ffprobe" on PATH.
func New(binary string) *FFProbe {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbe{binary: binary}
}

// format mirrors the container-level fields of ffprobe's JSON output.
type format struct {
	Duration string `json:"duration"`
}

type probeOutput struct {
	Format format `json:"format"`
}

// ProbeDuration executes ffprobe against src and returns the container
// duration in seconds. The caller is expected to treat any error as
// "duration unknown" and fall back to a default length.
func (f *FFProbe) ProbeDuration(ctx context.Context, src string) (timing.Seconds, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return 0, errors.New("probe duration: empty source")
	}

	cmd := exec.CommandContext(ctx, f.binary,
		"-v", "error", "-hide_banner",
		"-show_format", "-of", "json",
		"--", src)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("probe duration %q: %w", src, err)
	}
	return parseDuration(output)
}

// parseDuration extracts the container duration from ffprobe JSON.
func parseDuration(output []byte) (timing.Seconds, error) {
	var parsed probeOutput
	if err := json.Unmarshal(output, &parsed); err != nil {
		return 0, fmt.Errorf("probe parse: %w", err)
	}
	if parsed.Format.Duration == "" {
		return 0, errors.New("probe parse: no duration in output")
	}
	sec, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe parse: bad duration %q: %w", parsed.Format.Duration, err)
	}
	if sec <= 0 {
		return 0, fmt.Errorf("probe parse: non-positive duration %g", sec)
	}
	return timing.Seconds(sec), nil
}
