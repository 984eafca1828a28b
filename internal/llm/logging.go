package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/store"
)

// LoggingProvider records every request as an event and a metric sample.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	metrics  *monitor.Metrics
	log      zerolog.Logger
}

// WithLogging wraps p. events and metrics may be nil.
func WithLogging(p Provider, provider string, events store.EventRepo, metrics *monitor.Metrics, log zerolog.Logger) Provider {
	return &LoggingProvider{inner: p, provider: provider, events: events, metrics: metrics, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.metrics.ObserveLLM(purpose, err == nil)
	l.log.Debug().
		Str("purpose", purpose).
		Str("model", data.Model).
		Int64("latency_ms", data.LatencyMs).
		Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).
		Err(err).
		Msg("llm request")

	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn().Err(logErr).Msg("record llm request event")
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
