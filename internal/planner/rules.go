package planner

import (
	"strings"

	"github.com/ksuzuki/yaritai/internal/models"
)

// Fields a suggestion may target. Only budget and highlight live on the
// proposal itself; departure time and trip length are presentation-only,
// so applying those suggestions acknowledges without mutating a field.
const (
	FieldBudget    = "予算"
	FieldDeparture = "出発時間"
	FieldHighlight = "ハイライト"
	FieldSchedule  = "日程"
)

// Suggestion is a proposed before/after change to exactly one field,
// waiting for the user to confirm it.
type Suggestion struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// adjustRule classifies one family of adjustment requests. before is
// computed against the current proposal because earlier applied
// suggestions change what the "before" value is.
type adjustRule struct {
	keywords []string
	reply    string
	field    string
	before   func(p models.PlanProposal) string
	after    string
}

// adjustRules is checked in order and the first match wins: cost first,
// then time of day, then child-friendly, then trip length.
var adjustRules = []adjustRule{
	{
		keywords: []string{"安く", "予算", "コスト"},
		reply:    "予算を抑えたプランに変更しますね！\n\n宿のグレードを下げて、ランチを地元の人気店に変更すると...",
		field:    FieldBudget,
		before:   func(p models.PlanProposal) string { return p.EstimatedBudget },
		after:    "約3万円/人",
	},
	{
		keywords: []string{"午後", "遅く", "昼から"},
		reply:    "午後出発のプランに変更しますね！\n\nゆっくり出発して、夜までたっぷり楽しめるスケジュールです。",
		field:    FieldDeparture,
		before:   func(models.PlanProposal) string { return "10:00出発" },
		after:    "14:00出発",
	},
	{
		keywords: []string{"子供", "子ども", "キッズ"},
		reply:    "お子様向けのアクティビティを追加しますね！\n\nキッズスペースのあるレストランと、体験型施設をプランに入れました。",
		field:    FieldHighlight,
		before:   func(p models.PlanProposal) string { return p.Highlight },
		after:    "キッズ向けアクティビティ充実",
	},
	{
		keywords: []string{"1日", "日帰り"},
		reply:    "日帰りプランに変更しますね！\n\nコンパクトに楽しめるスケジュールに調整しました。",
		field:    FieldSchedule,
		before:   func(models.PlanProposal) string { return "1泊2日" },
		after:    "日帰り",
	},
}

const fallbackReply = "承知しました！そのご要望を反映させますね。\n\n他に調整したいポイントはありますか？"

// classify matches message against the rule table and returns the canned
// reply plus a field suggestion when a rule hits. A message matching no
// rule gets the generic acknowledgement and no suggestion.
func classify(p models.PlanProposal, message string) (string, *Suggestion) {
	lower := strings.ToLower(message)
	for _, rule := range adjustRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply, &Suggestion{
					Field:  rule.field,
					Before: rule.before(p),
					After:  rule.after,
				}
			}
		}
	}
	return fallbackReply, nil
}
