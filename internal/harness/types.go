package harness

// ClipSnapshot is one clip's resolved state in the final timeline.
// Timing is in whole milliseconds for exact golden comparison.
type ClipSnapshot struct {
	Alias  string `json:"alias,omitempty"`
	Type   string `json:"type"`
	Src    string `json:"src,omitempty"`
	Start  int64  `json:"start"`
	Length int64  `json:"length"`
	End    int64  `json:"end"`
}

// TrackSnapshot is one track of the final timeline.
type TrackSnapshot struct {
	Clips []ClipSnapshot `json:"clips"`
}

// Snapshot captures the final resolved timeline of a scenario run.
type Snapshot struct {
	Duration int64           `json:"duration"`
	Tracks   []TrackSnapshot `json:"tracks"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates all assertions held.
	Pass bool `json:"pass"`

	// Errors lists assertion failures. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Snapshot is the final resolved timeline, used for golden
	// comparison.
	Snapshot *Snapshot `json:"snapshot"`
}
