package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/montage/internal/timing"
)

func TestParseDuration(t *testing.T) {
	out := []byte(`{"format":{"filename":"hero.mp4","duration":"10.500000"}}`)
	sec, err := parseDuration(out)
	require.NoError(t, err)
	assert.Equal(t, timing.Seconds(10.5), sec)
}

func TestParseDuration_Errors(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"not json", `ffprobe: command not found`},
		{"missing format", `{}`},
		{"missing duration", `{"format":{"filename":"a.mp4"}}`},
		{"bad duration", `{"format":{"duration":"N/A"}}`},
		{"zero duration", `{"format":{"duration":"0.000000"}}`},
		{"negative duration", `{"format":{"duration":"-1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDuration([]byte(tt.out))
			assert.Error(t, err)
		})
	}
}

func TestProbeDuration_EmptySource(t *testing.T) {
	_, err := New("").ProbeDuration(context.Background(), "  ")
	assert.Error(t, err)
}

func TestNew_DefaultsBinary(t *testing.T) {
	assert.Equal(t, "ffprobe", New("").binary)
	assert.Equal(t, "ffprobe", New("  ").binary)
	assert.Equal(t, "/usr/bin/ffprobe", New("/usr/bin/ffprobe").binary)
}
