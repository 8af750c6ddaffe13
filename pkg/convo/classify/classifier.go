package classify

import (
	"regexp"
	"strings"

	"persona-chat-be/internal/constant"
	"persona-chat-be/pkg/convo/state"
)

// Keyword sets for topical classification. Matching is case-insensitive
// substring search over the raw query.

var codeDisplayPhrases = []string{
	"show me the code", "show the code", "show me code", "see the code",
	"code snippet", "source code", "show me how you implemented",
	"show me the implementation", "paste the code", "show some code",
}

var dependencyRationalePhrases = []string{
	"why did you use", "why use", "why did you pick", "why did you choose",
	"why this library", "why that library", "why this framework",
	"why this dependency", "what made you choose",
}

var resourceRequestPhrases = []string{
	"send me your resume", "send me the resume", "send your resume",
	"send me your cv", "send me the cv", "email me your resume",
	"email me the resume", "email your cv", "can i get your resume",
	"share your resume", "download your resume",
}

var casualTopicKeywords = []string{
	"fight", "fighting", "sparring", "muay thai", "jiu jitsu", "bjj",
	"grappling", "boxing", "kickboxing", "tournament", "competition",
	"competed", "martial arts", "training camp", "belt rank",
}

var dataRequestKeywords = []string{
	"analytics", "stats", "statistics", "metrics", "numbers",
	"how many visitors", "usage data", "dashboard", "data about",
	"show me data", "chart",
}

var technicalKeywords = []string{
	"architecture", "implementation", "implemented", "tech stack",
	"database", "deploy", "deployment", "pipeline", "api", "backend",
	"frontend", "infrastructure", "design pattern", "how does this site work",
	"how did you build", "algorithm", "vector search", "embedding",
}

var careerKeywords = []string{
	"experience", "resume", "cv", "career", "job", "work history",
	"employment", "background", "skills", "qualifications", "education",
	"worked at", "previous role", "accomplishments", "references",
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Result is the classifier's verdict for one query.
type Result struct {
	QueryType                string
	WantsCode                bool
	WantsDependencyRationale bool
	WantsData                bool
	WantsResource            bool
	ContactEmail             string
}

// Classify tags the raw query with a type and intent flags. Pure and
// deterministic: keyword/pattern based, no external calls.
//
// Resolution order, first match wins:
//  1. explicit code-display phrasing
//  2. explicit dependency-rationale phrasing
//  3. fight/competition terms      -> casual_topic
//  4. data/analytics terms         -> data_request
//  5. architecture/implementation  -> technical
//  6. career/resume terms          -> career
//  7. default                      -> general
//
// A query matching multiple sets resolves by this priority order, never by
// match count. The explicit resource request flag is orthogonal and set
// independently of the winning type.
func Classify(query string) Result {
	q := strings.ToLower(query)

	res := Result{
		WantsResource: matchesAny(q, resourceRequestPhrases),
		ContactEmail:  emailPattern.FindString(query),
	}

	switch {
	case matchesAny(q, codeDisplayPhrases):
		res.QueryType = constant.QueryTypeTechnical
		res.WantsCode = true
	case matchesAny(q, dependencyRationalePhrases):
		res.QueryType = constant.QueryTypeTechnical
		res.WantsDependencyRationale = true
	case matchesAny(q, casualTopicKeywords):
		res.QueryType = constant.QueryTypeCasualTopic
	case matchesAny(q, dataRequestKeywords):
		res.QueryType = constant.QueryTypeDataRequest
		res.WantsData = true
	case matchesAny(q, technicalKeywords):
		res.QueryType = constant.QueryTypeTechnical
	case matchesAny(q, careerKeywords):
		res.QueryType = constant.QueryTypeCareer
	default:
		res.QueryType = constant.QueryTypeGeneral
	}

	return res
}

// Run executes the classification stage against the turn state.
func Run(st *state.TurnState) {
	res := Classify(st.Query)
	st.Stash.QueryType = res.QueryType
	st.Stash.WantsCode = res.WantsCode
	st.Stash.WantsDependencyRationale = res.WantsDependencyRationale
	st.Stash.WantsData = res.WantsData
	st.Stash.WantsResource = res.WantsResource
	st.Stash.ContactEmail = res.ContactEmail
}

func matchesAny(q string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}
