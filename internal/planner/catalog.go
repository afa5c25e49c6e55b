package planner

import "github.com/ksuzuki/yaritai/internal/models"

// DayType is the trip-length hint used when requesting proposals.
type DayType string

const (
	DayTypeOneDay  DayType = "1DAY"
	DayTypeTwoDay  DayType = "2DAY"
	DayTypeWeekend DayType = "週末"
)

// ValidDayType reports whether d is a known day type.
func ValidDayType(d DayType) bool {
	switch d {
	case DayTypeOneDay, DayTypeTwoDay, DayTypeWeekend:
		return true
	}
	return false
}

// catalog is the canned proposal table. Generation is deterministic: the
// same group always yields the same set, so "regenerate" re-fetches
// rather than rolls dice.
var catalog = map[string][]models.PlanProposal{
	models.GroupFamily: {
		{
			ID:              "family-1",
			Title:           "箱根日帰り温泉プラン",
			Description:     "午前は彫刻の森美術館、午後は日帰り温泉でゆったり。家族みんなで楽しめる王道コースです。",
			EstimatedBudget: "約1.5万円/人",
			Highlight:       "大涌谷の黒たまごで記念写真",
			BasedOnStocks:   []string{"stock-hakone-onsen", "stock-chokoku-museum"},
		},
		{
			ID:              "family-2",
			Title:           "よこはま動物園ズーラシア満喫プラン",
			Description:     "開園から回る一日プラン。モノレール移動が少なくベビーカーでも安心です。",
			EstimatedBudget: "約8千円/人",
			Highlight:       "オカピを間近で見られる",
			BasedOnStocks:   []string{"stock-zoorasia"},
		},
		{
			ID:              "family-3",
			Title:           "富士五湖キャンプ1泊2日",
			Description:     "初心者向けの手ぶらキャンプ場で、夜は星空観察。朝は湖畔を散歩します。",
			EstimatedBudget: "約2万円/人",
			Highlight:       "湖畔サイトから富士山ビュー",
			BasedOnStocks:   []string{"stock-fujigoko-camp"},
		},
	},
	models.GroupFriends: {
		{
			ID:              "friends-1",
			Title:           "鎌倉食べ歩き&江ノ電さんぽ",
			Description:     "小町通りで食べ歩きしてから江ノ電で海沿いへ。夕方は稲村ヶ崎で夕日を見ます。",
			EstimatedBudget: "約6千円/人",
			Highlight:       "by the seaではなく海の真横でしらす丼",
			BasedOnStocks:   []string{"stock-kamakura-gourmet"},
		},
		{
			ID:              "friends-2",
			Title:           "河口湖グランピング週末プラン",
			Description:     "土曜昼に出発してグランピング泊。日曜はほうとうを食べて温泉に寄って帰ります。",
			EstimatedBudget: "約5万円/人",
			Highlight:       "焚き火を囲んで朝まで語れる",
			BasedOnStocks:   []string{"stock-kawaguchiko-glamping", "stock-hoto"},
		},
	},
	models.GroupWork: {
		{
			ID:              "work-1",
			Title:           "浅草もんじゃ&スカイツリー夜景",
			Description:     "仕事終わりに集合してもんじゃで乾杯。締めはスカイツリーの夜景です。",
			EstimatedBudget: "約7千円/人",
			Highlight:       "展望デッキ貸切風の平日夜",
			BasedOnStocks:   []string{"stock-asakusa-monja"},
		},
		{
			ID:              "work-2",
			Title:           "チームビルディングBBQプラン",
			Description:     "手ぶらBBQ場を半日貸切。後半はレクリエーション大会で盛り上がります。",
			EstimatedBudget: "約1万円/人",
			Highlight:       "雨天でも屋根付きサイトで安心",
			BasedOnStocks:   []string{"stock-bbq-toyosu"},
		},
	},
	models.GroupSolo: {
		{
			ID:              "solo-1",
			Title:           "奥多摩ソロハイキング",
			Description:     "御岳山ケーブルカーからロックガーデンを周回。下山後は駅前の蕎麦屋へ。",
			EstimatedBudget: "約4千円/人",
			Highlight:       "苔むす渓谷を独り占め",
			BasedOnStocks:   []string{"stock-mitake-hike"},
		},
		{
			ID:              "solo-2",
			Title:           "喫茶店はしご読書デー",
			Description:     "神保町の古書店街で本を仕入れて、老舗喫茶を3軒はしごします。",
			EstimatedBudget: "約3千円/人",
			Highlight:       "クリームソーダの飲み比べ",
			BasedOnStocks:   []string{"stock-jimbocho-kissa"},
		},
	},
}

// cannedProposals returns the catalog entry for a group. The day type is
// accepted for determinism of the (group, dayType) pair but every day
// type currently maps to the same set, matching the product's canned
// behavior.
func cannedProposals(groupID string, _ DayType) []models.PlanProposal {
	src := catalog[groupID]
	out := make([]models.PlanProposal, len(src))
	copy(out, src)
	return out
}
