package advice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
)

var ErrEmptyAdvice = errors.New("advice provider returned empty text")

// Request is the context handed to an advice backend.
type Request struct {
	Diagnosis string
	Severity  models.Severity
	Symptoms  []models.SymptomTag
	Medicines []string
	Age       int
	Gender    string
	Language  string
	// Narrative is the patient's own text. Wrap providers with Redacting before
	// it leaves the process.
	Narrative string
}

// Provider generates free-text advice for a consultation.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (string, error)

func (f ProviderFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Resolve calls p within timeout. A nil provider, an error, a timeout or blank
// text all yield Fallback(req); the boolean reports whether p's text was used.
func Resolve(ctx context.Context, p Provider, timeout time.Duration, req Request) (string, bool) {
	if p == nil {
		return Fallback(req), false
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := p.Generate(ctx, req)
		done <- result{text: text, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}

	if res.err == nil && strings.TrimSpace(res.text) == "" {
		res.err = ErrEmptyAdvice
	}
	if res.err != nil {
		logger.Component("advice").WithError(res.err).WithField("diagnosis", req.Diagnosis).
			Warn("Advice provider failed, using fallback")
		return Fallback(req), false
	}
	return strings.TrimSpace(res.text), true
}
