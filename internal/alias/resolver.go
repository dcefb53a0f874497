// Package alias resolves cross-clip timing references.
//
// A clip may declare its start or length as "alias:<name>.<field>",
// meaning "copy the resolved value of the clip named <name>". The
// resolver builds the dependency graph over those references, rejects
// cycles and unknown names, computes a dependency-safe evaluation
// order, and copies resolved numeric values across the graph.
//
// Failure contract: all validation (existence, numeric targets,
// acyclicity) completes before any clip is mutated. A failed resolution
// leaves the project exactly as it was.
package alias

import (
	"log/slog"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

// Resolve copies resolved timing values across all alias references in
// the project. Clips without alias references are untouched; re-running
// on an already-resolved project is a no-op.
//
// The resolver is the single writer of clip timing fields while it
// runs. It never restructures tracks.
func Resolve(p *project.Project) error {
	g, err := buildGraph(p)
	if err != nil {
		return err
	}
	if !g.hasEdges() {
		return nil
	}

	// Validate everything up front; mutation only starts on a clean graph.
	if err := g.checkTargets(); err != nil {
		return err
	}
	if err := g.checkAcyclic(); err != nil {
		return err
	}

	// Copy in dependency-safe order. Evaluation order guarantees every
	// target is numeric by the time a dependent reads it.
	for _, n := range g.evaluationOrder() {
		if ref, ok := n.clip.Intent.Start.Ref(); ok {
			target := g.byAlias[project.NormalizeAlias(ref.Name)]
			n.clip.Resolved.Start = valueOf(target, ref.Field)
			slog.Debug("alias resolved", "clip", n.id, "field", "start", "ref", ref.String())
		}
		if ref, ok := n.clip.Intent.Length.Ref(); ok {
			target := g.byAlias[project.NormalizeAlias(ref.Name)]
			n.clip.Resolved.Length = timing.ClampLength(valueOf(target, ref.Field))
			slog.Debug("alias resolved", "clip", n.id, "field", "length", "ref", ref.String())
		}
	}
	return nil
}

// valueOf reads the referenced resolved field.
func valueOf(target *project.Clip, field timing.Field) timing.Millis {
	if field == timing.FieldLength {
		return target.Resolved.Length
	}
	return target.Resolved.Start
}
