// Package watch implements the experimental clipboard polling mode: sanitize
// on change, never overwrite content that moved underneath us.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/clipscrub/clipscrub/internal/clipboard"
	"github.com/clipscrub/clipscrub/internal/logger"
	"github.com/clipscrub/clipscrub/internal/redact"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures a watcher
type Options struct {
	Interval time.Duration
	Redact   redact.Options
}

// Watcher polls the clipboard and sanitizes new content
type Watcher struct {
	board    clipboard.Board
	opts     Options
	logger   *logger.Logger
	onResult func(redact.Result)

	mu     sync.Mutex
	engine *redact.Engine
	rules  redact.Options
}

// New creates a watcher. onResult is invoked after every successful write and
// may be nil.
func New(board clipboard.Board, engine *redact.Engine, opts Options, log *logger.Logger, onResult func(redact.Result)) *Watcher {
	return &Watcher{
		board:    board,
		opts:     opts,
		logger:   log,
		onResult: onResult,
		engine:   engine,
		rules:    opts.Redact,
	}
}

// SetEngine swaps the redaction engine and options. Safe to call while Run is
// polling; the next iteration picks up the new rules.
func (w *Watcher) SetEngine(engine *redact.Engine, rules redact.Options) {
	w.mu.Lock()
	w.engine = engine
	w.rules = rules
	w.mu.Unlock()
}

func (w *Watcher) scrub(text string) redact.Result {
	w.mu.Lock()
	engine, rules := w.engine, w.rules
	w.mu.Unlock()
	return engine.Scrub(text, rules)
}

// Run polls until the context is cancelled. Each iteration is self-contained:
// no resource is held across iterations and cancellation between iterations
// leaves no partial side effects. Returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(w.opts.Interval), 1)

	var lastSeen, lastWritten string
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}

		text, err := w.board.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Warn("Clipboard read failed", zap.Error(err))
			continue
		}

		if text == lastSeen {
			continue
		}
		lastSeen = text

		result := w.scrub(text)
		if result.Replaced == 0 || result.Text == lastWritten {
			continue
		}

		// Re-check before writing: if the clipboard changed since we read it,
		// discard this stale result instead of clobbering newer content.
		current, err := w.board.Read(ctx)
		if err != nil || current != text {
			w.logger.Debug("Clipboard changed during sanitization, discarding write")
			continue
		}

		if err := w.board.Write(ctx, result.Text); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Warn("Clipboard write failed", zap.Error(err))
			continue
		}

		// Remember our own write so the next poll doesn't reprocess it.
		lastWritten = result.Text
		lastSeen = result.Text

		w.logger.Info("Clipboard sanitized",
			zap.Int("replaced", result.Replaced),
		)

		if w.onResult != nil {
			w.onResult(result)
		}
	}
}
