package apply

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/retrieve"
	"persona-chat-be/pkg/convo/state"
)

type fakeCodeRetriever struct {
	snippets []retrieve.CodeSnippet
	err      error
}

func (f *fakeCodeRetriever) RetrieveCode(_ context.Context, _, _ string) ([]retrieve.CodeSnippet, error) {
	return f.snippets, f.err
}

type fakeReports struct {
	body string
	err  error
}

func (f *fakeReports) Render(_ context.Context, _ string) (string, error) { return f.body, f.err }

type fakeLinker struct {
	url string
	err error
}

func (f *fakeLinker) ResourceLink(_ string) (string, error) { return f.url, f.err }

func newTestApplier(code retrieve.CodeRetriever, reports ReportSource, links ResourceLinker) *Applier {
	return NewApplier(code, reports, links, logger.NewNopLogger())
}

func turnWith(actions ...state.Action) *state.TurnState {
	st := state.NewTurnState(constant.RoleEngineer, "how does the retrieval pipeline work", nil)
	st.Answer = "The pipeline embeds the query and searches pgvector."
	st.Pending = actions
	return st
}

func TestValidSnippet(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{"real go code", "func Retrieve(ctx context.Context) error {\n\treturn nil\n}", true},
		{"too short", "func f() {}", false},
		{"prose without code tokens", "This paragraph describes the system at a very high level indeed.", false},
		{"key value metadata", "host = localhost\nport = 5432\nsslmode = disable", false},
		{"json index metadata", `{"source_id": "doc-1", "score": 0.31, "kind": "doc"}`, false},
		{"multiline json metadata", "{\n\t\"source_id\": \"doc-1\",\n\t\"chunk_index\": 3\n}", false},
		{"kv shape but braced code", "config := map[string]string{\n\t\"host\": \"localhost\",\n}", true},
		{"json with nested object", `{"a": 1, "b": {"nested": true}, "c": func() {}}`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ValidSnippet(c.content))
		})
	}
}

func TestApplyCodeSnippetBlock(t *testing.T) {
	code := &fakeCodeRetriever{snippets: []retrieve.CodeSnippet{
		{Content: "k: v", Citation: "meta.yaml"},
		{Content: "func Search(q string) ([]Chunk, error) {\n\treturn idx.Lookup(q)\n}", Citation: "internal/search/index.go"},
	}}
	st := turnWith(state.Action{Type: constant.ActionIncludeCodeSnippet})

	newTestApplier(code, nil, nil).Run(context.Background(), st)

	assert.Contains(t, st.Answer, "```\nfunc Search(q string)")
	assert.Contains(t, st.Answer, "Source: internal/search/index.go")
	assert.NotContains(t, st.Answer, "meta.yaml", "invalid snippet must be skipped, not rendered")
}

func TestApplySnippetLookupFailureIsNonFatal(t *testing.T) {
	code := &fakeCodeRetriever{err: errors.New("index offline")}
	st := turnWith(state.Action{Type: constant.ActionIncludeCodeSnippet})
	before := st.Answer

	newTestApplier(code, nil, nil).Run(context.Background(), st)

	assert.Equal(t, before, st.Answer)
}

func TestApplyReportPrefersStash(t *testing.T) {
	st := turnWith(state.Action{Type: constant.ActionRenderReport, Params: map[string]string{"kind": "career_summary"}})
	st.Stash.ReportText = "Career summary: 8 years across backend and infra."

	newTestApplier(nil, &fakeReports{body: "should not be used"}, nil).Run(context.Background(), st)

	assert.Contains(t, st.Answer, "Career summary: 8 years")
	assert.NotContains(t, st.Answer, "should not be used")
}

func TestApplyReportFallsBackToSource(t *testing.T) {
	st := turnWith(state.Action{Type: constant.ActionRenderReport, Params: map[string]string{"kind": "stack_overview"}})

	newTestApplier(nil, &fakeReports{body: "Stack: Go, Fiber, Postgres."}, nil).Run(context.Background(), st)

	assert.Contains(t, st.Answer, "Stack: Go, Fiber, Postgres.")
}

func TestApplyExplicitOfferEmbedsSignedLink(t *testing.T) {
	st := turnWith(state.Action{Type: constant.ActionOfferResource, Params: map[string]string{"mode": constant.OfferModeExplicit}})

	newTestApplier(nil, nil, &fakeLinker{url: "https://example.test/dl/resume?token=abc"}).Run(context.Background(), st)

	assert.Contains(t, st.Answer, "https://example.test/dl/resume?token=abc")
}

func TestApplySubtleOfferIsLowKey(t *testing.T) {
	st := turnWith(state.Action{Type: constant.ActionOfferResource, Params: map[string]string{"mode": constant.OfferModeSubtle}})

	newTestApplier(nil, nil, nil).Run(context.Background(), st)

	assert.Contains(t, st.Answer, "say the word")
	assert.NotContains(t, st.Answer, "http", "subtle mention must not push a link")
}

func TestApplyAtMostOneFollowUpQuestion(t *testing.T) {
	st := turnWith(
		state.Action{Type: constant.ActionSuggestPersonaSwitch, Params: map[string]string{"target": constant.RoleEngineer}},
		state.Action{Type: constant.ActionPromptContact},
	)

	newTestApplier(nil, nil, nil).Run(context.Background(), st)

	assert.Equal(t, 1, strings.Count(st.Answer, "?"), "answer must end with at most one follow-up question")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(st.Answer), "?"))
	assert.Contains(t, st.Answer, "engineer persona", "first planned question wins")
}

func TestApplySkipsEnrichmentOnFallback(t *testing.T) {
	st := turnWith(
		state.Action{Type: constant.ActionShareFunFact},
		state.Action{Type: constant.ActionOfferResource, Params: map[string]string{"mode": constant.OfferModeExplicit}},
	)
	st.Stash.FallbackUsed = true
	st.Answer = "I don't have enough grounded material to answer that well."

	newTestApplier(nil, nil, &fakeLinker{url: "https://example.test/dl/resume?token=abc"}).Run(context.Background(), st)

	assert.NotContains(t, st.Answer, "Fun fact:")
	assert.Contains(t, st.Answer, "https://example.test/dl/resume", "explicit request is honored even on fallback")
}

func TestFunFactDeterministic(t *testing.T) {
	st1 := turnWith(state.Action{Type: constant.ActionShareFunFact})
	st2 := turnWith(state.Action{Type: constant.ActionShareFunFact})

	applier := newTestApplier(nil, nil, nil)
	applier.Run(context.Background(), st1)
	applier.Run(context.Background(), st2)

	assert.Equal(t, st1.Answer, st2.Answer)
	assert.Contains(t, st1.Answer, "Fun fact:")
}

func TestRationalePicksMatchingTopic(t *testing.T) {
	assert.Equal(t, constant.DepRationaleNotes["fiber"], rationaleFor("why did you use Fiber instead of net/http?"))
	assert.Equal(t, constant.DepRationaleDefault, rationaleFor("why did you pick these libraries?"))
}
