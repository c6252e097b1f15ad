package narrative

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"
)

// ErrInsightUnavailable reports that no explanation could be obtained.
var ErrInsightUnavailable = errors.New("insight unavailable")

// DefaultTimeout bounds a single call to the narrative service.
const DefaultTimeout = 30 * time.Second

// Insight is the outcome of a narrative request: a text, or the reason why
// there is none.
type Insight struct {
	Text  string
	Err   error // wraps ErrInsightUnavailable and Cause.
	Cause error // the failure of the narrative service itself.
}

// errNotConfigured is the cause of insights requested without a generator.
var errNotConfigured = errors.New("narrative service is not configured")

// unavailable returns the Insight of a request that failed because of cause.
func unavailable(cause error) Insight {
	return Insight{Err: fmt.Errorf("%w: %w", ErrInsightUnavailable, cause), Cause: cause}
}

// Available reports whether the insight has a text.
func (i Insight) Available() bool { return i.Err == nil && i.Text != "" }

// Narrator asks a Generator for explanations with a bounded latency.
//
// Each attempt has its own Timeout. A transient failure (network error,
// server error, attempt timeout) is retried once.
type Narrator struct {
	Generator Generator
	Timeout   time.Duration
	Logger    *log.Logger
}

// NewNarrator returns a Narrator with the default timeout. A nil generator
// makes every insight unavailable.
func NewNarrator(g Generator) *Narrator {
	return &Narrator{Generator: g, Timeout: DefaultTimeout, Logger: log.Default()}
}

// Explain sends prompt to the generator. It never fails, failures are
// reported in the Insight as ErrInsightUnavailable.
func (n *Narrator) Explain(ctx context.Context, prompt string) Insight {
	if n == nil || n.Generator == nil {
		return unavailable(errNotConfigured)
	}
	logger := n.Logger
	if logger == nil {
		logger = log.Default()
	}

	const attempts = 2
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var text string
		text, err = n.attempt(ctx, prompt)
		if err == nil {
			return Insight{Text: text}
		}
		logger.Warn("narrative request failed", "attempt", attempt, "err", err)
		if ctx.Err() != nil || !transient(err) {
			break
		}
	}
	return unavailable(err)
}

func (n *Narrator) attempt(ctx context.Context, prompt string) (string, error) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := n.Generator.Generate(actx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

var errEmptyResponse = errors.New("empty response")

// transient reports whether err is worth a second attempt.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 408 || apiErr.Code >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
