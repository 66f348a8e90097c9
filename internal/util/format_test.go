package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRWF(t *testing.T) {
	assert.Equal(t, "RWF 0", FormatRWF(0))
	assert.Equal(t, "RWF 500", FormatRWF(500))
	assert.Equal(t, "RWF 15,000", FormatRWF(15000))
	assert.Equal(t, "RWF 1,234,567", FormatRWF(1234567))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.June, 3, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "03 Jun, 2024", FormatDate(ts))
	assert.Equal(t, "03 Jun, 02:30 PM", FormatDateTime(ts))
}
