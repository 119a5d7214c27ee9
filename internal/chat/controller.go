// Package chat implements the chat panel controller: it turns one trigger
// into a user bubble, a bot placeholder, a single analyze request and the
// final bot text.
package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/diogo/coinchat/internal/api"
	apierrors "github.com/diogo/coinchat/internal/errors"
	"github.com/diogo/coinchat/internal/logger"
	"github.com/diogo/coinchat/internal/models"
)

// Input is the symbol field
type Input interface {
	Value() string
	SetValue(value string)
}

// Window is the scrolling chat container. It only ever grows.
type Window interface {
	Append(b *models.Bubble)
	ScrollToBottom()
}

// Alerter shows a message the user has to acknowledge
type Alerter interface {
	Alert(message string)
}

// Exchange is one validated submission and its bubbles
type Exchange struct {
	ID      string // correlates log records of concurrent exchanges
	Symbol  string
	User    *models.Bubble
	Bot     *models.Bubble
	Outcome *Outcome // nil while pending
}

// Settled reports whether the exchange has received its outcome
func (e *Exchange) Settled() bool {
	return e.Outcome != nil
}

// Controller drives the chat panel. Begin and Settle touch the UI
// collaborators and must run on the UI loop; Analyze does not.
type Controller struct {
	analyzer api.AnalyzerInterface
	input    Input
	window   Window
	alerter  Alerter
	opts     models.AnalyzeOptions
}

// Option configures a Controller
type Option func(*Controller)

// WithAnalyzeOptions sets the optional analysis parameters sent with every request
func WithAnalyzeOptions(opts models.AnalyzeOptions) Option {
	return func(c *Controller) {
		c.opts = opts
	}
}

// NewController creates a controller over its collaborators
func NewController(analyzer api.AnalyzerInterface, input Input, window Window, alerter Alerter, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		input:    input,
		window:   window,
		alerter:  alerter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin validates the input and renders the bubble pair.
// An empty symbol raises an alert and returns ErrEmptySymbol without
// touching the window or the input.
func (c *Controller) Begin() (*Exchange, error) {
	symbol := models.NormalizeSymbol(c.input.Value())
	if symbol == "" {
		c.alerter.Alert(models.EmptySymbolAlert)
		return nil, apierrors.ErrEmptySymbol
	}

	ex := &Exchange{
		ID:     uuid.New().String(),
		Symbol: symbol,
		User:   models.NewUserBubble(symbol),
		Bot:    models.NewBotBubble(symbol),
	}

	c.window.Append(ex.User)
	c.window.Append(ex.Bot)
	c.window.ScrollToBottom()

	logger.Debug("analyze started", "exchange", ex.ID, "symbol", symbol)
	return ex, nil
}

// Analyze performs the exchange's single request
func (c *Controller) Analyze(ctx context.Context, ex *Exchange) Outcome {
	pred, err := c.analyzer.Analyze(ctx, models.NewAnalyzeRequest(ex.Symbol, c.opts))
	return Classify(pred, err)
}

// Settle writes the final bot text and clears the input
func (c *Controller) Settle(ex *Exchange, o Outcome) {
	switch o.Kind {
	case OutcomeTransportError:
		logger.Error("analyze request failed", "exchange", ex.ID, "symbol", ex.Symbol, "err", o.Err)
	case OutcomeMalformed:
		logger.Warn("malformed analyze response", "exchange", ex.ID, "symbol", ex.Symbol, "status", o.StatusCode, "err", o.Err)
	case OutcomeServerError:
		logger.Info("analyze rejected", "exchange", ex.ID, "symbol", ex.Symbol, "status", o.StatusCode, "detail", o.Detail)
	default:
		logger.Debug("analyze finished", "exchange", ex.ID, "symbol", ex.Symbol, "prediction", o.Prediction)
	}

	ex.Bot.Settle(o.Text(ex.Symbol))
	ex.Outcome = &o
	c.input.SetValue("")
}

// Submit runs a whole interaction on the caller's goroutine
func (c *Controller) Submit(ctx context.Context) (*Exchange, error) {
	ex, err := c.Begin()
	if err != nil {
		return nil, err
	}
	c.Settle(ex, c.Analyze(ctx, ex))
	return ex, nil
}
