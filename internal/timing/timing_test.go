package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMillis_RoundsToMillisecond(t *testing.T) {
	assert.Equal(t, Millis(0), ToMillis(0))
	assert.Equal(t, Millis(3000), ToMillis(3))
	assert.Equal(t, Millis(1500), ToMillis(1.5))
	assert.Equal(t, Millis(33), ToMillis(0.0334))
	assert.Equal(t, Millis(34), ToMillis(0.0335))
}

func TestToMillis_TotalOverNonFiniteInputs(t *testing.T) {
	// Conversions never panic; garbage probe results collapse to zero.
	assert.Equal(t, Millis(0), ToMillis(Seconds(math.NaN())))
	assert.Equal(t, Millis(0), ToMillis(Seconds(math.Inf(1))))
	assert.Equal(t, Millis(0), ToMillis(Seconds(math.Inf(-1))))
}

func TestToSeconds_RoundTrip(t *testing.T) {
	assert.Equal(t, Seconds(1.5), ToSeconds(1500))
	assert.Equal(t, Seconds(0.001), ToSeconds(1))
	assert.Equal(t, Millis(1500), ToMillis(ToSeconds(1500)))
}

func TestClampLength(t *testing.T) {
	assert.Equal(t, MinClipLength, ClampLength(0))
	assert.Equal(t, MinClipLength, ClampLength(-50))
	assert.Equal(t, MinClipLength, ClampLength(99))
	assert.Equal(t, Millis(100), ClampLength(100))
	assert.Equal(t, Millis(3000), ClampLength(3000))
}

func TestResolved_End(t *testing.T) {
	r := Resolved{Start: 10000, Length: 20000}
	assert.Equal(t, Millis(30000), r.End())
}
