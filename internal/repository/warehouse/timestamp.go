package warehouse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Unix seconds of 0001-01-01 and 9999-12-31T23:59:59.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// DecodeTimestamp converts a created_at value as returned by the driver.
//
// Native times are returned unchanged, text is parsed as a date first and as
// decimal Unix seconds second. Anything else, including NULL, decodes to the
// current time.
func DecodeTimestamp(value any) time.Time {
	return decodeTimestamp(value, time.Now)
}

func decodeTimestamp(value any, now func() time.Time) time.Time {
	switch v := value.(type) {
	case nil:
		return now()
	case time.Time:
		return v
	case *time.Time:
		if v == nil {
			return now()
		}
		return *v
	case []byte:
		value = string(v)
	}

	if s, ok := value.(string); ok {
		if t, err := cast.StringToDate(s); err == nil {
			return t
		}
	}

	if t, ok := epochSeconds(fmt.Sprint(value)); ok {
		return t
	}
	return now()
}

func epochSeconds(text string) (time.Time, bool) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return time.Time{}, false
	}
	seconds = math.Trunc(seconds)
	if seconds < minEpochSeconds || seconds > maxEpochSeconds {
		return time.Time{}, false
	}
	return time.Unix(int64(seconds), 0).UTC(), true
}
