// Package document reads and writes montage project files.
//
// A document is the serialized form of a project: an ordered list of
// tracks, each an ordered list of clip configurations carrying timing
// intent. JSON and YAML encodings are supported; both are validated
// against an embedded CUE schema before decoding, so structural errors
// surface with positions instead of as half-loaded projects.
package document
