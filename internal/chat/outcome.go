package chat

import (
	"errors"
	"fmt"

	apierrors "github.com/diogo/coinchat/internal/errors"
	"github.com/diogo/coinchat/internal/models"
)

// OutcomeKind tags how an exchange settled
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeServerError
	OutcomeTransportError
	OutcomeMalformed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeServerError:
		return "server_error"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one analyze call
type Outcome struct {
	Kind       OutcomeKind
	Prediction string // set on success
	Detail     string // server detail, may be empty
	StatusCode int
	Err        error
}

// Classify maps the analyzer's return values to an Outcome.
// Errors that are neither server-reported nor malformed bodies are treated
// as transport failures.
func Classify(pred *models.Prediction, err error) Outcome {
	if err == nil {
		if pred == nil {
			return Outcome{Kind: OutcomeMalformed, Err: apierrors.ErrInvalidResponse}
		}
		return Outcome{Kind: OutcomeSuccess, Prediction: pred.Value}
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return Outcome{
			Kind:       OutcomeServerError,
			Detail:     apiErr.Detail,
			StatusCode: apiErr.StatusCode,
			Err:        err,
		}
	}

	if apierrors.IsParseError(err) {
		return Outcome{
			Kind:       OutcomeMalformed,
			StatusCode: apierrors.GetHTTPStatus(err),
			Err:        err,
		}
	}

	return Outcome{Kind: OutcomeTransportError, Err: err}
}

// OK reports whether the exchange produced a prediction
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Text renders the final bot bubble text for symbol
func (o Outcome) Text(symbol string) string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf(models.PredictionTextFormat, symbol, o.Prediction)
	case OutcomeServerError:
		detail := o.Detail
		if detail == "" {
			detail = models.FallbackDetail
		}
		return fmt.Sprintf(models.ServerErrorTextFormat, detail)
	case OutcomeMalformed:
		return models.MalformedErrorText
	default:
		return models.TransportErrorText
	}
}
