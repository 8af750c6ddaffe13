package apply

import (
	"context"
	"fmt"
	"strings"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/retrieve"
	"persona-chat-be/pkg/convo/state"
)

// ReportSource renders the data report bodies behind render_report actions.
type ReportSource interface {
	Render(ctx context.Context, kind string) (string, error)
}

// ResourceLinker mints time-limited download links for shareable resources.
type ResourceLinker interface {
	ResourceLink(name string) (string, error)
}

// Applier is the role-context stage: it turns the planned content actions into
// answer blocks, in plan order, leaving effect actions on Pending for the
// executor. A failed block is logged and skipped, never fatal to the turn.
type Applier struct {
	codeRetriever retrieve.CodeRetriever
	reports       ReportSource
	links         ResourceLinker
	log           logger.ILogger
}

func NewApplier(codeRetriever retrieve.CodeRetriever, reports ReportSource, links ResourceLinker, log logger.ILogger) *Applier {
	return &Applier{
		codeRetriever: codeRetriever,
		reports:       reports,
		links:         links,
		log:           log,
	}
}

// Run appends content blocks for each planned content action. Blocks that ask
// the visitor something are held back and at most ONE is appended, at the very
// end, so the answer never closes with stacked questions. Extra question
// blocks are dropped in plan order.
func (a *Applier) Run(ctx context.Context, st *state.TurnState) {
	degraded := st.Stash.FallbackUsed || st.Stash.GenerationFailed

	var question string
	for _, action := range st.Pending {
		switch action.Type {
		case constant.ActionRenderReport:
			if degraded {
				continue
			}
			a.appendReport(ctx, st, action.Params["kind"])
		case constant.ActionIncludeCodeSnippet:
			if degraded {
				continue
			}
			a.appendSnippet(ctx, st)
		case constant.ActionIncludeDepRationale:
			if degraded {
				continue
			}
			st.AppendAnswer(rationaleFor(st.Query))
		case constant.ActionShareFunFact:
			if degraded {
				continue
			}
			st.AppendAnswer(funFactFor(st.Query))
		case constant.ActionOfferResource:
			a.appendOffer(st, action.Params["mode"])
		case constant.ActionSuggestPersonaSwitch:
			if question == "" {
				question = switchQuestion(action.Params["target"])
			} else {
				a.log.Debug("Apply", "Dropping extra follow-up question", map[string]interface{}{"action": action.Type})
			}
		case constant.ActionPromptContact:
			if question == "" {
				question = "Would you like to leave a message for the owner? Share an email address and a few lines here and I'll pass them along directly."
			} else {
				a.log.Debug("Apply", "Dropping extra follow-up question", map[string]interface{}{"action": action.Type})
			}
		}
	}

	if question != "" {
		st.AppendAnswer(question)
	}
}

func (a *Applier) appendReport(ctx context.Context, st *state.TurnState, kind string) {
	body := st.Stash.ReportText
	if body == "" && a.reports != nil {
		rendered, err := a.reports.Render(ctx, kind)
		if err != nil {
			a.log.Warn("Apply", "Report rendering failed, skipping block", map[string]interface{}{
				"kind":  kind,
				"error": err.Error(),
			})
			return
		}
		body = rendered
	}
	st.AppendAnswer(body)
}

func (a *Applier) appendSnippet(ctx context.Context, st *state.TurnState) {
	if a.codeRetriever == nil {
		return
	}
	snippets, err := a.codeRetriever.RetrieveCode(ctx, st.Query, st.Role)
	if err != nil {
		a.log.Warn("Apply", "Code lookup failed, skipping snippet block", map[string]interface{}{"error": err.Error()})
		return
	}
	for _, sn := range snippets {
		if !ValidSnippet(sn.Content) {
			continue
		}
		block := fmt.Sprintf("```\n%s\n```", strings.TrimSpace(sn.Content))
		if sn.Citation != "" {
			block += "\nSource: " + sn.Citation
		}
		st.AppendAnswer(block)
		return
	}
	a.log.Debug("Apply", "No valid code snippet found for query", map[string]interface{}{"query": st.Query})
}

func (a *Applier) appendOffer(st *state.TurnState, mode string) {
	if mode == constant.OfferModeExplicit {
		if a.links != nil {
			if url, err := a.links.ResourceLink("resume"); err == nil {
				st.AppendAnswer(fmt.Sprintf("Here is the resume you asked for: %s (the link stays valid for a limited time).", url))
				return
			} else {
				a.log.Warn("Apply", "Resource link issuing failed", map[string]interface{}{"error": err.Error()})
			}
		}
		st.AppendAnswer("The resume is on its way — check the email address you shared, or ask again with an address if you haven't left one.")
		return
	}
	st.AppendAnswer("By the way — if a full resume would be useful at some point, just say the word and I can share a download link.")
}

func switchQuestion(target string) string {
	switch target {
	case constant.RoleEngineer:
		return "This looks like a question the engineer persona can answer in much more depth, code included. Want me to switch over?"
	case constant.RoleRecruiter:
		return "The recruiter persona covers career history, skills, and availability far better. Shall I switch to it?"
	default:
		return "A different persona here might serve this question better. Want me to switch?"
	}
}

// rationaleFor picks the dependency-rationale note whose topic appears in the
// query, falling back to the general note. Deterministic for a given query.
func rationaleFor(query string) string {
	q := strings.ToLower(query)
	best := ""
	for topic := range constant.DepRationaleNotes {
		if strings.Contains(q, topic) && (best == "" || topic < best) {
			best = topic
		}
	}
	if best != "" {
		return constant.DepRationaleNotes[best]
	}
	return constant.DepRationaleDefault
}

// funFactFor rotates through the fact pool keyed on query length, so the same
// query always lands the same fact.
func funFactFor(query string) string {
	return constant.FunFacts[len(query)%len(constant.FunFacts)]
}
