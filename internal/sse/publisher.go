package sse

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/report"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// Broadcaster accepts events for delivery. *Hub implements it.
type Broadcaster interface {
	Broadcast(eventType string, payload any)
}

// Publisher turns search service activity into stream events. It
// implements search.Observer.
type Publisher struct {
	out Broadcaster
}

var _ search.Observer = (*Publisher)(nil)

// NewPublisher sends events to out
func NewPublisher(out Broadcaster) *Publisher {
	return &Publisher{out: out}
}

// SearchStarted broadcasts EventTypeSearchStarted
func (p *Publisher) SearchStarted(ctx context.Context, f *search.Filter) {
	p.out.Broadcast(EventTypeSearchStarted, SearchStartedPayload{
		RequestID:    logger.GetRequestID(ctx),
		Filter:       f.Fingerprint(),
		BaseItems:    len(f.BaseItems),
		Modifiers:    len(f.Modifiers),
		MaxModifiers: f.MaxModifiers,
		Ranking:      f.Ranking.Names(),
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeSearchStarted)
}

// SearchFinished broadcasts EventTypeSearchFinished with the result or error
func (p *Publisher) SearchFinished(ctx context.Context, f *search.Filter, res *search.Result, err error) {
	payload := SearchFinishedPayload{
		RequestID: logger.GetRequestID(ctx),
		Filter:    f.Fingerprint(),
	}
	if err != nil {
		payload.Error = err.Error()
	} else {
		view := report.NewView(res)
		payload.Result = &view
	}
	p.out.Broadcast(EventTypeSearchFinished, payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeSearchFinished)
}

// Progress returns a progress callback broadcasting at most one
// EventTypeSearchProgress per interval, plus the final one of each run.
func (p *Publisher) Progress(interval time.Duration) search.ProgressFunc {
	every := &rate.Sometimes{Interval: interval}
	return func(done, total uint64) {
		payload := SearchProgressPayload{Evaluated: done, Candidates: total}
		if total > 0 {
			payload.Percent = float64(done) / float64(total) * 100
		}
		if done == total {
			p.out.Broadcast(EventTypeSearchProgress, payload)
			return
		}
		every.Do(func() {
			p.out.Broadcast(EventTypeSearchProgress, payload)
		})
	}
}
