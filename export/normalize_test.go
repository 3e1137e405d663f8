package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Placeholder, Normalize(Null(), nil))
	assert.Equal(t, Placeholder, Normalize(Value{}, EsCL))
	assert.Equal(t, "false", Normalize(Bool(false), nil))
	assert.Equal(t, "-3.25", Normalize(Number(-3.25), nil))
	assert.Equal(t, "0", Normalize(Number(0), nil))
	assert.Equal(t, "<b>", Normalize(Text("<b>"), nil))
}

func TestLocaleDates(t *testing.T) {
	ts := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "17-10-2026", EsCL.Date(ts))
	assert.Equal(t, "17 de octubre de 2026", EsCL.LongDate(ts))
	assert.Equal(t, "1 de enero de 2027", EsCL.LongDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))

	santiago := time.FixedZone("CLT", -3*3600)
	loc := *EsCL
	loc.Location = santiago
	assert.Equal(t, "17-10-2026", loc.Date(ts))
	assert.Equal(t, "18-10-2026", loc.Date(ts.Add(3*time.Hour)))
	assert.Equal(t, "17 de octubre de 2026", loc.LongDate(ts.Add(3*time.Hour)))
}
