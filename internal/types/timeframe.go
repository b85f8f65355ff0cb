package types

import (
	"strings"
	"time"
)

// Timeframe is a bar bucket size token.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

// ParseTimeframe normalizes a caller-supplied timeframe token. Matching is
// case-insensitive and accepts the common "Min"/"H"/"D" spellings. Unknown
// tokens map to the daily bucket.
func ParseTimeframe(token string) Timeframe {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "1m", "1min":
		return Timeframe1m
	case "5m", "5min":
		return Timeframe5m
	case "15m", "15min":
		return Timeframe15m
	case "1h", "60m":
		return Timeframe1h
	case "4h":
		return Timeframe4h
	case "1d", "d", "day":
		return Timeframe1d
	default:
		return Timeframe1d
	}
}

// Duration returns the wall-clock span of one bar.
func (t Timeframe) Duration() time.Duration {
	switch t {
	case Timeframe1m:
		return time.Minute
	case Timeframe5m:
		return 5 * time.Minute
	case Timeframe15m:
		return 15 * time.Minute
	case Timeframe1h:
		return time.Hour
	case Timeframe4h:
		return 4 * time.Hour
	case Timeframe1d:
		return 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
