package plan

import (
	"persona-chat-be/internal/constant"
	"persona-chat-be/pkg/convo/state"
)

// Input is everything the planner is allowed to see. The generated answer is
// deliberately absent: planning must never depend on model output.
type Input struct {
	Role      string
	QueryType string

	WantsCode                bool
	WantsDependencyRationale bool
	WantsData                bool
	WantsResource            bool

	// Contact details extracted from the query, if any (e.g. an email address
	// a recruiter left inline).
	ContactEmail string

	HasSufficientSignal bool
	ResourceOfferMade   bool
}

// Outcome is the planner's decision: an ordered action list plus whether the
// one-per-session subtle offer was consumed. The caller flips the session
// flag; the planner stays pure.
type Outcome struct {
	Actions     []state.Action
	OfferMarked bool
}

// Plan maps (role, query type, flags, signal state) to an ordered action
// list. Pure and deterministic: identical input always yields the identical
// list. Content actions come first in presentation order; effect actions
// follow in execution order.
func Plan(in Input) Outcome {
	var out Outcome

	switch in.Role {
	case constant.RoleRecruiter:
		out.Actions = planRecruiter(in)
	case constant.RoleEngineer:
		out.Actions = planEngineer(in)
	default:
		out.Actions = planVisitor(in)
	}

	out.Actions, out.OfferMarked = applyOfferPolicy(in, out.Actions)

	if in.ContactEmail != "" {
		out.Actions = append(out.Actions, state.Action{
			Type:   constant.ActionCollectMessage,
			Params: map[string]string{"contact": in.ContactEmail},
		})
	}

	return out
}

func planRecruiter(in Input) []state.Action {
	var actions []state.Action

	switch in.QueryType {
	case constant.QueryTypeCareer, constant.QueryTypeGeneral:
		actions = append(actions, state.Action{
			Type:   constant.ActionRenderReport,
			Params: map[string]string{"kind": "career_summary"},
		})
	case constant.QueryTypeDataRequest:
		actions = append(actions, state.Action{
			Type:   constant.ActionRenderReport,
			Params: map[string]string{"kind": "engagement_stats"},
		})
	case constant.QueryTypeTechnical:
		// Code-level depth belongs to the engineer persona
		actions = append(actions, state.Action{
			Type:   constant.ActionSuggestPersonaSwitch,
			Params: map[string]string{"target": constant.RoleEngineer},
		})
	case constant.QueryTypeCasualTopic:
		actions = append(actions, state.Action{Type: constant.ActionShareFunFact})
	}

	if in.QueryType == constant.QueryTypeCareer {
		actions = append(actions, state.Action{Type: constant.ActionPromptContact})
	}

	return actions
}

func planEngineer(in Input) []state.Action {
	var actions []state.Action

	switch in.QueryType {
	case constant.QueryTypeTechnical:
		if in.WantsCode {
			actions = append(actions, state.Action{Type: constant.ActionIncludeCodeSnippet})
		}
		if in.WantsDependencyRationale {
			actions = append(actions, state.Action{Type: constant.ActionIncludeDepRationale})
		}
	case constant.QueryTypeDataRequest:
		actions = append(actions, state.Action{
			Type:   constant.ActionRenderReport,
			Params: map[string]string{"kind": "stack_overview"},
		})
	case constant.QueryTypeCareer:
		actions = append(actions, state.Action{
			Type:   constant.ActionSuggestPersonaSwitch,
			Params: map[string]string{"target": constant.RoleRecruiter},
		})
	case constant.QueryTypeCasualTopic:
		actions = append(actions, state.Action{Type: constant.ActionShareFunFact})
	}

	return actions
}

func planVisitor(in Input) []state.Action {
	var actions []state.Action

	switch in.QueryType {
	case constant.QueryTypeCasualTopic:
		actions = append(actions, state.Action{Type: constant.ActionShareFunFact})
	case constant.QueryTypeTechnical:
		actions = append(actions, state.Action{
			Type:   constant.ActionSuggestPersonaSwitch,
			Params: map[string]string{"target": constant.RoleEngineer},
		})
	case constant.QueryTypeCareer:
		actions = append(actions, state.Action{
			Type:   constant.ActionSuggestPersonaSwitch,
			Params: map[string]string{"target": constant.RoleRecruiter},
		})
	case constant.QueryTypeDataRequest:
		actions = append(actions, state.Action{
			Type:   constant.ActionRenderReport,
			Params: map[string]string{"kind": "site_stats"},
		})
	}

	return actions
}

// applyOfferPolicy runs the 3-mode resource-offer state machine shared across
// roles:
//
//	Mode A (education-first): no offer while the hiring signal is weak.
//	Mode B (subtle mention):  exactly one low-key mention per session, once
//	                          the signal is sufficient.
//	Mode C (explicit request): always honored, independent of signal state,
//	                          without consuming Mode B's one-time budget.
//
// When C fires, B's subtle mention is suppressed for the turn so the visitor
// never sees two offers at once.
func applyOfferPolicy(in Input, actions []state.Action) ([]state.Action, bool) {
	if in.WantsResource {
		// Mode C
		actions = append(actions, state.Action{
			Type:   constant.ActionOfferResource,
			Params: map[string]string{"mode": constant.OfferModeExplicit},
		})
		sendParams := map[string]string{"resource": "resume"}
		if in.ContactEmail != "" {
			sendParams["to"] = in.ContactEmail
		}
		actions = append(actions,
			state.Action{Type: constant.ActionSendResource, Params: sendParams},
			state.Action{Type: constant.ActionNotifyOwner, Params: map[string]string{"reason": "resource_requested"}},
		)
		return actions, false
	}

	if in.HasSufficientSignal && !in.ResourceOfferMade {
		// Mode B
		actions = append(actions,
			state.Action{
				Type:   constant.ActionOfferResource,
				Params: map[string]string{"mode": constant.OfferModeSubtle},
			},
			state.Action{Type: constant.ActionNotifyOwner, Params: map[string]string{"reason": "hiring_signal_detected"}},
		)
		return actions, true
	}

	// Mode A
	return actions, false
}
