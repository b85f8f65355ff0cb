package types

// IndicatorType identifies a technical indicator.
type IndicatorType string

const (
	IndicatorTypeEMA        IndicatorType = "ema"
	IndicatorTypeATR        IndicatorType = "atr"
	IndicatorTypeRSI        IndicatorType = "rsi"
	IndicatorTypeMACD       IndicatorType = "macd"
	IndicatorTypeSupertrend IndicatorType = "supertrend"
)

// IndicatorResult holds one or more derived series aligned index-for-index
// with the BarSeries they were computed from. Values at indices without
// enough history are NaN; the value at index i depends only on bars at
// index <= i.
type IndicatorResult struct {
	// Type is the indicator that produced this result.
	Type IndicatorType
	// Lines maps a line name (e.g. "macd", "signal", "histogram") to its
	// values, each the same length as the input series.
	Lines map[string][]float64
}

// Line returns the named output series, or nil if absent.
func (r IndicatorResult) Line(name string) []float64 {
	return r.Lines[name]
}
