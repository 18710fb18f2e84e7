package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromUnixSecondsKST(t *testing.T) {
	assert.True(t, FromUnixSecondsKST(0).IsZero())
	assert.True(t, FromUnixSecondsKST(-5).IsZero())

	got := FromUnixSecondsKST(1661299200)
	assert.Equal(t, 2022, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 24, got.Day())
	_, offset := got.Zone()
	assert.Equal(t, 9*3600, offset)
}

func TestFormatRFC3339KST(t *testing.T) {
	assert.Equal(t, "", FormatRFC3339KST(time.Time{}))
	assert.Equal(t, "2022-08-24T09:00:00+09:00", FormatRFC3339KST(FromUnixSecondsKST(1661299200)))
}
