package pipeline

import (
	"context"
	"time"

	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/apply"
	"persona-chat-be/pkg/convo/classify"
	"persona-chat-be/pkg/convo/execute"
	"persona-chat-be/pkg/convo/generate"
	"persona-chat-be/pkg/convo/plan"
	"persona-chat-be/pkg/convo/retrieve"
	"persona-chat-be/pkg/convo/signal"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/store"
)

// Result is what one completed turn hands back to the service layer.
type Result struct {
	Answer string

	QueryType        string
	FallbackUsed     bool
	GenerationFailed bool

	// Actions is the planner output as planned, captured before execution
	// clears side-effects off the state.
	Actions []state.Action

	Execution execute.Summary
	LatencyMs int64
}

// Pipeline wires the seven turn stages in their fixed order:
// classify, detect signals, retrieve, generate, plan, apply, execute.
// One Run call processes exactly one turn against one session.
type Pipeline struct {
	retriever *retrieve.Adapter
	generator *generate.Generator
	detector  *signal.Detector
	applier   *apply.Applier
	executor  *execute.Executor
	log       logger.ILogger
}

func NewPipeline(
	retriever *retrieve.Adapter,
	generator *generate.Generator,
	detector *signal.Detector,
	applier *apply.Applier,
	executor *execute.Executor,
	log logger.ILogger,
) *Pipeline {
	return &Pipeline{
		retriever: retriever,
		generator: generator,
		detector:  detector,
		applier:   applier,
		executor:  executor,
		log:       log,
	}
}

// Run processes one turn. The session accumulates cross-turn facts (signal
// counts, the one-per-session offer flag); the turn state carries everything
// turn-local and is discarded afterwards.
func (p *Pipeline) Run(ctx context.Context, session *store.Session, st *state.TurnState) *Result {
	started := time.Now()

	classify.Run(st)
	p.detector.Run(session, st)
	p.retriever.Run(ctx, st)

	p.generator.Run(ctx, st)
	st.Answer = generate.Sanitize(st.Answer)

	outcome := plan.Plan(plan.Input{
		Role:                     st.Role,
		QueryType:                st.Stash.QueryType,
		WantsCode:                st.Stash.WantsCode,
		WantsDependencyRationale: st.Stash.WantsDependencyRationale,
		WantsData:                st.Stash.WantsData,
		WantsResource:            st.Stash.WantsResource,
		ContactEmail:             st.Stash.ContactEmail,
		HasSufficientSignal:      p.detector.HasSufficientSignal(session),
		ResourceOfferMade:        session.ResourceOfferMade,
	})
	st.Pending = outcome.Actions
	if outcome.OfferMarked {
		session.ResourceOfferMade = true
	}

	p.applier.Run(ctx, st)

	planned := make([]state.Action, len(st.Pending))
	copy(planned, st.Pending)
	execSum := p.executor.Run(ctx, session.ID, st)

	session.LastQuery = st.Query
	session.UpdatedAt = time.Now()

	latency := time.Since(started).Milliseconds()
	p.log.Info("Pipeline", "Turn completed", map[string]interface{}{
		"session_id":    session.ID,
		"role":          st.Role,
		"query_type":    st.Stash.QueryType,
		"fallback_used": st.Stash.FallbackUsed,
		"actions":       len(planned),
		"latency_ms":    latency,
	})

	return &Result{
		Answer:           st.Answer,
		QueryType:        st.Stash.QueryType,
		FallbackUsed:     st.Stash.FallbackUsed,
		GenerationFailed: st.Stash.GenerationFailed,
		Actions:          planned,
		Execution:        execSum,
		LatencyMs:        latency,
	}
}
