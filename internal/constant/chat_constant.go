package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"
)

// Personas (fixed, closed set - immutable for a session)
const (
	RoleRecruiter = "recruiter"
	RoleEngineer  = "engineer"
	RoleVisitor   = "visitor"
)

// AllRoles lists every valid persona for validation and the /personas endpoint.
var AllRoles = []string{RoleRecruiter, RoleEngineer, RoleVisitor}

// Query types produced by the classifier. First-match-wins priority is
// documented in pkg/convo/classify.
const (
	QueryTypeTechnical   = "technical"
	QueryTypeCareer      = "career"
	QueryTypeCasualTopic = "casual_topic"
	QueryTypeDataRequest = "data_request"
	QueryTypeGeneral     = "general"
)

// Hiring signal kinds accumulated across a session.
const (
	SignalHiringIntent    = "hiring_intent"
	SignalRoleDescription = "role_description"
	SignalTeamReference   = "team_reference"
)

// Action types. Content actions are expanded into answer blocks by the role
// context applier; effect actions are dispatched by the action executor.
const (
	ActionRenderReport         = "render_report"
	ActionOfferResource        = "offer_resource"
	ActionSuggestPersonaSwitch = "suggest_persona_switch"
	ActionIncludeCodeSnippet   = "include_code_snippet"
	ActionIncludeDepRationale  = "include_dependency_rationale"
	ActionShareFunFact         = "share_fun_fact"
	ActionPromptContact        = "prompt_contact"

	ActionSendResource   = "send_resource"
	ActionNotifyOwner    = "notify_owner"
	ActionCollectMessage = "collect_message"
)

// Resource offer modes for the one-per-session offer state machine.
const (
	OfferModeSubtle   = "subtle"
	OfferModeExplicit = "explicit"
)
