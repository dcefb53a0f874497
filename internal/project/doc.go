// Package project holds the mutable composition aggregate: tracks of
// clips, each clip pairing a declared timing intent with its resolved
// millisecond timing.
//
// Ownership rules:
//
//   - The project exclusively owns its tracks and clips. Structure
//     (adding/removing tracks or clips) changes only through the command
//     engine.
//   - Resolvers read and write clip timing fields but never restructure.
//
// The end-length set is derived, not registered: a clip is end-length iff
// its current length intent is "end". Callers recompute it from the
// aggregate after every mutation instead of maintaining a side registry.
package project
