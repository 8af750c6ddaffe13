package signal

import (
	"strings"

	"persona-chat-be/internal/constant"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/store"
)

// DefaultKindsRequired is how many distinct signal kinds must appear before
// the planner may surface a resource offer. Empirically chosen; configurable,
// pending product confirmation.
const DefaultKindsRequired = 2

var hiringIntentPhrases = []string{
	"we're hiring", "we are hiring", "looking to hire", "open position",
	"open role", "we have an opening", "join our team", "interview",
	"would you be interested in", "are you available", "are you open to",
	"looking for someone", "recruiting for",
}

var roleDescriptionPhrases = []string{
	"the role involves", "the position requires", "responsibilities include",
	"we need someone who", "senior engineer", "staff engineer",
	"backend engineer", "full-time", "contract role", "salary range",
	"the job is", "day to day you would",
}

var teamReferencePhrases = []string{
	"our team", "my team", "our company", "our startup", "our org",
	"our engineering team", "the platform team", "we're a team of",
	"we are a team of", "at our company", "our department",
}

// Detector accumulates evidence across turns that the visitor is evaluating
// the owner for a role.
type Detector struct {
	kindsRequired int
}

func NewDetector(kindsRequired int) *Detector {
	if kindsRequired <= 0 {
		kindsRequired = DefaultKindsRequired
	}
	return &Detector{kindsRequired: kindsRequired}
}

// Run checks the query against the three signal patterns and increments each
// matched kind's counter by at most 1 for this turn. Matched kinds are also
// recorded on the turn stash for observability. The detector never appends
// content and never marks an offer as made.
func (d *Detector) Run(session *store.Session, st *state.TurnState) {
	q := strings.ToLower(st.Query)

	checks := []struct {
		kind     string
		patterns []string
	}{
		{constant.SignalHiringIntent, hiringIntentPhrases},
		{constant.SignalRoleDescription, roleDescriptionPhrases},
		{constant.SignalTeamReference, teamReferencePhrases},
	}

	for _, check := range checks {
		if containsAny(q, check.patterns) {
			session.SignalCounts[check.kind]++
			st.Stash.SignalKinds = append(st.Stash.SignalKinds, check.kind)
		}
	}
}

// HasSufficientSignal reports whether enough distinct signal kinds have been
// observed this session to justify a subtle resource offer.
func (d *Detector) HasSufficientSignal(session *store.Session) bool {
	return session.DistinctSignalKinds() >= d.kindsRequired
}

func containsAny(q string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}
