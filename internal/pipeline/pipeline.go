// Package pipeline runs one decoded report through the processing
// chain: screen, deduplicate, evaluate, dispatch. All of it happens on
// the single goroutine that feeds reports from the source; the stages
// share state freely because nothing else touches it.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dcragent/internal/dedup"
	"dcragent/internal/dispatch"
	"dcragent/internal/filter"
	"dcragent/internal/logger"
	"dcragent/internal/report"
	pkgerrors "dcragent/pkg/errors"
	"dcragent/pkg/logging"
	"dcragent/pkg/metrics"
)

// FatalError marks a pipeline failure the agent cannot continue past.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal pipeline error: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

type Pipeline struct {
	log        logger.Logger
	engine     *filter.Engine
	cache      *dedup.Cache
	dispatcher *dispatch.Dispatcher
}

func New(log logger.Logger, engine *filter.Engine, cache *dedup.Cache, dispatcher *dispatch.Dispatcher) *Pipeline {
	return &Pipeline{
		log:        log,
		engine:     engine,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

// Handle processes one report end to end. It satisfies decode.ReportFunc;
// a non-nil return is fatal to the whole agent, so dropped reports and
// failed deliveries all come back as nil.
func (p *Pipeline) Handle(ctx context.Context, r *report.Report) (err error) {
	start := time.Now()
	status := "processed"
	defer func() {
		if rec := pkgerrors.RecoverPanic(recover()); rec != nil {
			err = &FatalError{Err: rec}
			status = "panic"
		}
		metrics.ObserveProcessingDuration(time.Since(start), status)
	}()

	id := uuid.New().String()
	ctx = logging.WithMessageID(ctx, id)
	ctx = logging.WithCategory(ctx, r.Category.String())
	metrics.IncMessageReceived(r.Category.String())

	if reason, drop := p.engine.Screen(r); drop {
		if reason == filter.ReasonNull {
			p.log.DebugwCtx(ctx, "null report dropped")
		} else {
			p.log.WarnwCtx(ctx, "report in unknown category dropped", "raw", r.Raw)
		}
		metrics.IncMessageScreened(reason.String())
		status = "screened"
		return nil
	}

	now := time.Now()
	duplicate := p.cache.LookupOrInsert(r, now)
	if evicted := p.cache.EvictExpired(now); evicted > 0 {
		metrics.AddCacheEvictions(evicted)
	}
	metrics.SetCacheSize(p.cache.Len())

	if duplicate {
		p.log.InfowCtx(ctx, "duplicate report dropped", "header", r.Header)
		metrics.IncMessageDuplicate(r.Category.String())
		status = "duplicate"
		return nil
	}

	disposition, reason := p.engine.Evaluate(r)
	p.log.InfowCtx(ctx, "report accepted",
		"header", r.Header,
		"filtered", disposition.Filtered,
		"filter_reason", reason.String(),
		"training", disposition.Training,
		"incomplete", disposition.Incomplete,
	)

	p.dispatcher.Dispatch(ctx, dispatch.Notification{
		ID:          id,
		Report:      r,
		Disposition: disposition,
		ReceivedAt:  now,
	})
	return nil
}
