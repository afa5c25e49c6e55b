package planner

import (
	"testing"

	"github.com/ksuzuki/yaritai/internal/models"
)

var testProposal = models.PlanProposal{
	ID:              "p1",
	Title:           "箱根日帰り温泉プラン",
	EstimatedBudget: "約5万円/人",
	Highlight:       "大涌谷の黒たまごで記念写真",
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantField  string
		wantBefore string
		wantAfter  string
	}{
		{"cheaper", "もっと安くしたい", FieldBudget, "約5万円/人", "約3万円/人"},
		{"budget keyword", "予算が気になる", FieldBudget, "約5万円/人", "約3万円/人"},
		{"cost keyword", "コストを下げて", FieldBudget, "約5万円/人", "約3万円/人"},
		{"afternoon", "午後から出たい", FieldDeparture, "10:00出発", "14:00出発"},
		{"from noon", "昼からにして", FieldDeparture, "10:00出発", "14:00出発"},
		{"kids", "子供向けにして", FieldHighlight, "大涌谷の黒たまごで記念写真", "キッズ向けアクティビティ充実"},
		{"kids variant", "子ども連れです", FieldHighlight, "大涌谷の黒たまごで記念写真", "キッズ向けアクティビティ充実"},
		{"day trip", "日帰りがいい", FieldSchedule, "1泊2日", "日帰り"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, sg := classify(testProposal, tt.message)
			if reply == "" {
				t.Fatal("expected a reply")
			}
			if sg == nil {
				t.Fatalf("expected a suggestion for %q", tt.message)
			}
			if sg.Field != tt.wantField {
				t.Errorf("field = %s, want %s", sg.Field, tt.wantField)
			}
			if sg.Before != tt.wantBefore {
				t.Errorf("before = %s, want %s", sg.Before, tt.wantBefore)
			}
			if sg.After != tt.wantAfter {
				t.Errorf("after = %s, want %s", sg.After, tt.wantAfter)
			}
		})
	}
}

// Cost keywords outrank everything else: a message that also mentions a
// day trip still gets the budget suggestion.
func TestClassifyPriorityOrder(t *testing.T) {
	_, sg := classify(testProposal, "日帰りで安くしたい")
	if sg == nil || sg.Field != FieldBudget {
		t.Fatalf("suggestion = %+v, want budget field", sg)
	}
}

// The cheaper keyword must always target the budget field, never the
// highlight.
func TestClassifyCheaperNeverHighlight(t *testing.T) {
	for _, msg := range []string{"安く", "もう少し安くできますか", "安くて子供も楽しめる"} {
		_, sg := classify(testProposal, msg)
		if sg == nil {
			t.Fatalf("%q: expected a suggestion", msg)
		}
		if sg.Field == FieldHighlight {
			t.Errorf("%q: got highlight suggestion, want budget", msg)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	reply, sg := classify(testProposal, "いい感じにお願いします")
	if sg != nil {
		t.Errorf("fallback should carry no suggestion, got %+v", sg)
	}
	if reply != fallbackReply {
		t.Errorf("reply = %q, want generic acknowledgement", reply)
	}
}

// Before values come from the current proposal, so a budget suggestion
// issued after an earlier budget change shows the changed value.
func TestClassifyBeforeTracksProposal(t *testing.T) {
	p := testProposal
	p.EstimatedBudget = "約3万円/人"

	_, sg := classify(p, "予算をもっと抑えたい")
	if sg == nil || sg.Before != "約3万円/人" {
		t.Fatalf("suggestion = %+v, want before 約3万円/人", sg)
	}
}
