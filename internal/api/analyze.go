package api

import (
	"context"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	apierrors "github.com/diogo/coinchat/internal/errors"
	"github.com/diogo/coinchat/internal/models"
)

// Analyze posts req to the analysis service. It makes exactly one attempt.
//
// The body is decoded as JSON whatever the status. A 2xx answer yields the
// prediction; any other status yields an *errors.APIError carrying the
// server's detail. Transport failures are *errors.NetworkError and bodies
// that are not JSON are *errors.ParseError.
func (c *AnalyzeClient) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Prediction, error) {
	if req == nil || req.Symbol == "" {
		return nil, apierrors.ErrEmptySymbol
	}

	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	payload, err := buildPayload(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("analyze", models.EndpointAnalyze, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read analyze response", models.EndpointAnalyze, err)
	}

	return parseResponse(resp.StatusCode, body)
}

// buildPayload encodes the request body. Optional fields are only set when
// non-zero so the server keeps its own defaults.
func buildPayload(req *models.AnalyzeRequest) (string, error) {
	payload, err := sjson.Set("", PathSymbol, req.Symbol)
	if err != nil {
		return "", err
	}

	if req.Interval != "" {
		if payload, err = sjson.Set(payload, PathInterval, req.Interval); err != nil {
			return "", err
		}
	}

	if req.LookbackPeriod > 0 {
		if payload, err = sjson.Set(payload, PathLookbackPeriod, req.LookbackPeriod); err != nil {
			return "", err
		}
	}

	return payload, nil
}

// parseResponse turns a status and body into a prediction or a typed error
func parseResponse(status int, body []byte) (*models.Prediction, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response body is not valid JSON", status, string(body))
	}

	parsed := gjson.ParseBytes(body)

	if status < 200 || status > 299 {
		return nil, apierrors.NewAPIErrorWithBody(status, models.EndpointAnalyze, detailText(parsed.Get(PathDetail)), string(body))
	}

	prediction := parsed.Get(PathPrediction)
	if !prediction.Exists() {
		return nil, apierrors.NewParseError("response has no prediction field", status, string(body))
	}

	return &models.Prediction{
		Symbol: parsed.Get(PathSymbol).String(),
		Value:  valueText(prediction),
		Raw:    string(body),
	}, nil
}

// valueText renders a JSON value for display: strings unquoted, anything
// else as its JSON text.
func valueText(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return v.Raw
}

// detailText returns the detail to show, or "" when the field is missing or
// falsy (null, false, 0, "").
func detailText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if v.Num == 0 {
			return ""
		}
		return v.Raw
	case gjson.True:
		return "true"
	case gjson.JSON:
		return v.Raw
	default:
		return ""
	}
}
