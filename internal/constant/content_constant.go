package constant

// FunFacts are the casual-topic blurbs rotated into answers when the visitor
// drifts toward fight-sports talk.
var FunFacts = []string{
	"Fun fact: the site owner has competed in amateur Muay Thai, and claims clinch work taught them more about patience than any production incident ever did.",
	"Fun fact: a regular sparring schedule is part of the owner's weekly routine, and most debugging breakthroughs seem to arrive the morning after.",
	"Fun fact: the owner's first grappling tournament ended in round one, which they describe as excellent training for reading post-mortems.",
	"Fun fact: the owner holds that footwork drills and keyboard ergonomics are the same discipline applied at different distances.",
}

// DepRationaleNotes maps library topics to the short written rationale shown
// when someone asks why a dependency was chosen. Keys are matched by substring
// against the query; DepRationaleDefault covers everything else.
var DepRationaleNotes = map[string]string{
	"fiber":    "Fiber was chosen for its fasthttp core and an Express-like routing API that keeps handler code compact without hiding the request lifecycle.",
	"gorm":     "GORM handles the relational mapping so repository code can stay declarative, while raw expressions remain available for the vector-distance queries it cannot express.",
	"postgres": "Postgres with the pgvector extension keeps document storage and similarity search in one engine, avoiding a separate vector database to operate.",
	"zap":      "Zap provides structured, leveled logging with negligible allocation overhead, which matters on the per-turn hot path.",
	"redis":    "Redis backs session state so conversations survive process restarts and scale past a single instance.",
}

// DepRationaleDefault is the fallback rationale when no specific note matches.
const DepRationaleDefault = "Dependencies here are picked on three criteria: a maintained release history, an API that reads naturally in Go, and a real operational win over hand-rolling the same thing on the standard library."
