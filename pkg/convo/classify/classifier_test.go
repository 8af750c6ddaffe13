package classify

import (
	"testing"

	"persona-chat-be/internal/constant"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantType  string
		wantCode  bool
		wantDep   bool
		wantData  bool
		wantRsrc  bool
	}{
		{
			name:     "default general",
			query:    "Hello there!",
			wantType: constant.QueryTypeGeneral,
		},
		{
			name:     "explicit code display",
			query:    "Can you show me the code for the retrieval layer?",
			wantType: constant.QueryTypeTechnical,
			wantCode: true,
		},
		{
			name:     "dependency rationale",
			query:    "Why did you use Postgres instead of a dedicated vector DB?",
			wantType: constant.QueryTypeTechnical,
			wantDep:  true,
		},
		{
			name:     "casual fight topic",
			query:    "Tell me about your last muay thai competition",
			wantType: constant.QueryTypeCasualTopic,
		},
		{
			name:     "data request",
			query:    "Show me data about visitor analytics",
			wantType: constant.QueryTypeDataRequest,
			wantData: true,
		},
		{
			name:     "technical",
			query:    "What does the architecture of this site look like?",
			wantType: constant.QueryTypeTechnical,
		},
		{
			name:     "career",
			query:    "Tell me about your professional experience",
			wantType: constant.QueryTypeCareer,
		},
		{
			name:     "explicit resource request keeps career type",
			query:    "Please send me your resume",
			wantType: constant.QueryTypeCareer,
			wantRsrc: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.query)
			if got.QueryType != tt.wantType {
				t.Errorf("QueryType = %q, want %q", got.QueryType, tt.wantType)
			}
			if got.WantsCode != tt.wantCode {
				t.Errorf("WantsCode = %v, want %v", got.WantsCode, tt.wantCode)
			}
			if got.WantsDependencyRationale != tt.wantDep {
				t.Errorf("WantsDependencyRationale = %v, want %v", got.WantsDependencyRationale, tt.wantDep)
			}
			if got.WantsData != tt.wantData {
				t.Errorf("WantsData = %v, want %v", got.WantsData, tt.wantData)
			}
			if got.WantsResource != tt.wantRsrc {
				t.Errorf("WantsResource = %v, want %v", got.WantsResource, tt.wantRsrc)
			}
		})
	}
}

// Multi-set matches must resolve by the fixed priority order, never by count
// of matching keywords.
func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantType string
	}{
		{
			name:     "code phrasing beats career keywords",
			query:    "Show me the code behind your resume page and your career timeline",
			wantType: constant.QueryTypeTechnical,
		},
		{
			name:     "casual beats data and technical",
			query:    "Any stats on how your sparring sessions affect your api backend work?",
			wantType: constant.QueryTypeCasualTopic,
		},
		{
			name:     "data beats technical and career",
			query:    "Show me data about the backend and your work history",
			wantType: constant.QueryTypeDataRequest,
		},
		{
			name:     "technical beats career",
			query:    "What database skills does your experience cover?",
			wantType: constant.QueryTypeTechnical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.query); got.QueryType != tt.wantType {
				t.Errorf("QueryType = %q, want %q", got.QueryType, tt.wantType)
			}
		})
	}
}
