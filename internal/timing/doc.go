// Package timing defines the timing model for the composition core.
//
// Two layers exist side by side on every clip:
//
//   - Intent: what the user declared. Start and length may be literal
//     seconds, the symbolic values "auto" and "end", or a reference to
//     another clip's timing by alias name ("alias:hero.start").
//   - Resolved: the concrete millisecond start/length every downstream
//     consumer (renderer, player, export) reads. Always non-negative,
//     length never below MinClipLength.
//
// Conversions between seconds and milliseconds are total functions and
// round to millisecond granularity. Classification of an intent value is
// exhaustive over the four forms.
package timing
