package execute

import (
	"context"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/state"
)

// ResourceSender delivers a shareable resource to an address the visitor left.
type ResourceSender interface {
	SendResource(ctx context.Context, to, resource, link string) error
}

// OwnerNotifier pushes an alert to the site owner over one channel. The
// executor fans a notify_owner action out to every registered notifier.
type OwnerNotifier interface {
	NotifyOwner(ctx context.Context, reason, detail string) error
}

// MessageCollector persists a message a visitor left for the owner.
type MessageCollector interface {
	Collect(ctx context.Context, sessionID, contact, body string) error
}

// Linker mints the signed download link embedded in resource emails.
type Linker interface {
	ResourceLink(name string) (string, error)
}

// EventSink mirrors notable visitor moments to the external event stream.
// Mirroring is best-effort and never affects dispatch outcomes; nil disables
// it.
type EventSink interface {
	ResourceRequested(ctx context.Context, sessionID, role, contact string) error
	VisitorMessageLeft(ctx context.Context, sessionID, contact string) error
}

// Summary counts what one execution pass did, for per-turn analytics.
type Summary struct {
	Executed int
	Failed   int
	Skipped  int
}

// Executor runs the effect actions left on Pending after the applier has
// consumed the content ones. Failures are isolated per action: one broken
// side-effect never blocks the rest and never fails the turn. A nil
// collaborator means that channel is disabled and its actions are skipped.
type Executor struct {
	sender    ResourceSender
	notifiers []OwnerNotifier
	collector MessageCollector
	links     Linker
	events    EventSink
	log       logger.ILogger
}

func NewExecutor(sender ResourceSender, notifiers []OwnerNotifier, collector MessageCollector, links Linker, events EventSink, log logger.ILogger) *Executor {
	return &Executor{
		sender:    sender,
		notifiers: notifiers,
		collector: collector,
		links:     links,
		events:    events,
		log:       log,
	}
}

// Run dispatches every planned effect action and clears Pending so a
// checkpointed state cannot replay side-effects.
func (e *Executor) Run(ctx context.Context, sessionID string, st *state.TurnState) Summary {
	var sum Summary
	for _, action := range st.Pending {
		switch action.Type {
		case constant.ActionSendResource:
			e.tally(&sum, e.sendResource(ctx, sessionID, st, action))
		case constant.ActionNotifyOwner:
			e.tally(&sum, e.notifyOwner(ctx, st, action))
		case constant.ActionCollectMessage:
			e.tally(&sum, e.collectMessage(ctx, sessionID, st, action))
		}
	}
	st.Pending = nil
	return sum
}

type dispatchResult int

const (
	dispatched dispatchResult = iota
	dispatchFailed
	dispatchSkipped
)

func (e *Executor) tally(sum *Summary, res dispatchResult) {
	switch res {
	case dispatched:
		sum.Executed++
	case dispatchFailed:
		sum.Failed++
	case dispatchSkipped:
		sum.Skipped++
	}
}

func (e *Executor) sendResource(ctx context.Context, sessionID string, st *state.TurnState, action state.Action) dispatchResult {
	to := action.Params["to"]
	if e.events != nil {
		// The request happened whether or not mail is configured.
		if err := e.events.ResourceRequested(ctx, sessionID, st.Role, to); err != nil {
			e.log.Warn("Execute", "Resource request event mirror failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if e.sender == nil || to == "" {
		// No mail channel or no address; the applier has already put the
		// download link in the answer body.
		return dispatchSkipped
	}
	resource := action.Params["resource"]
	link := ""
	if e.links != nil {
		minted, err := e.links.ResourceLink(resource)
		if err != nil {
			e.log.Warn("Execute", "Link minting failed for resource email", map[string]interface{}{"error": err.Error()})
		} else {
			link = minted
		}
	}
	if err := e.sender.SendResource(ctx, to, resource, link); err != nil {
		e.log.Error("Execute", "Resource delivery failed", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
		return dispatchFailed
	}
	e.log.Info("Execute", "Resource sent", map[string]interface{}{"to": to, "resource": resource})
	return dispatched
}

func (e *Executor) notifyOwner(ctx context.Context, st *state.TurnState, action state.Action) dispatchResult {
	if len(e.notifiers) == 0 {
		return dispatchSkipped
	}
	reason := action.Params["reason"]
	failed := false
	for _, n := range e.notifiers {
		if n == nil {
			continue
		}
		if err := n.NotifyOwner(ctx, reason, st.Query); err != nil {
			failed = true
			e.log.Warn("Execute", "Owner notification channel failed", map[string]interface{}{
				"reason": reason,
				"error":  err.Error(),
			})
		}
	}
	if failed {
		return dispatchFailed
	}
	return dispatched
}

func (e *Executor) collectMessage(ctx context.Context, sessionID string, st *state.TurnState, action state.Action) dispatchResult {
	if e.collector == nil {
		return dispatchSkipped
	}
	contact := action.Params["contact"]
	if err := e.collector.Collect(ctx, sessionID, contact, st.Query); err != nil {
		e.log.Error("Execute", "Visitor message persistence failed", map[string]interface{}{
			"contact": contact,
			"error":   err.Error(),
		})
		return dispatchFailed
	}
	if e.events != nil {
		if err := e.events.VisitorMessageLeft(ctx, sessionID, contact); err != nil {
			e.log.Warn("Execute", "Visitor message event mirror failed", map[string]interface{}{"error": err.Error()})
		}
	}
	e.log.Info("Execute", "Visitor message collected", map[string]interface{}{"contact": contact})
	return dispatched
}
