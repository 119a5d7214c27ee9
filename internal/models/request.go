package models

// AnalyzeOptions carries the optional analysis parameters understood by the
// backend. Zero values are not sent, so the server defaults apply.
type AnalyzeOptions struct {
	Interval       string // kline interval, e.g. "1m", "1h"
	LookbackPeriod int    // number of klines to analyze
}

// AnalyzeRequest is the body of POST /analyze/
type AnalyzeRequest struct {
	Symbol string
	AnalyzeOptions
}

// NewAnalyzeRequest builds a request for an already normalized symbol
func NewAnalyzeRequest(symbol string, opts AnalyzeOptions) *AnalyzeRequest {
	return &AnalyzeRequest{Symbol: symbol, AnalyzeOptions: opts}
}

// Prediction is a successful analysis result
type Prediction struct {
	Symbol string // symbol echoed by the server, may be empty
	Value  string // prediction rendered as text
	Raw    string // raw JSON response body
}
