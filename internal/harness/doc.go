// Package harness is the scenario-driven conformance harness for the
// editing engine.
//
// A scenario is a YAML file: a project document, canned probe
// durations, a flow of editing steps (commands, undo, redo), and
// assertions over the resolved timeline that results. Scenarios run
// against the real engine and resolvers; only the duration prober is
// canned, so runs are deterministic and suitable for golden-file
// comparison.
package harness
