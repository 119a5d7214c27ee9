// Package api provides the market analysis service client.
package api

// GJSON/SJSON paths of the analyze request and response bodies
const (
	PathSymbol         = "symbol"
	PathInterval       = "interval"
	PathLookbackPeriod = "lookback_period"

	PathPrediction = "prediction"
	PathDetail     = "detail"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 1 << 20
