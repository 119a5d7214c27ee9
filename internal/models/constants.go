// Package models contains data types and constants for the coinchat client.
package models

// Endpoints of the market analysis service
const (
	DefaultServerURL = "http://127.0.0.1:8000"
	EndpointAnalyze  = "/analyze/"
)

// DefaultHeaders returns the headers sent with every analyze request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "coinchat",
	}
}

// Bubble text templates
const (
	UserTextFormat        = "Analyze %s"
	PendingTextFormat     = "Analyzing market data for %s..."
	PredictionTextFormat  = "Prediction for %s: %s"
	ServerErrorTextFormat = "Error: %s"

	FallbackDetail     = "Failed to analyze the data."
	TransportErrorText = "Error: Unable to connect to the server."
	MalformedErrorText = "Error: Received a malformed response from the server."

	EmptySymbolAlert = "Please enter a valid coin pair to analyze."
)
