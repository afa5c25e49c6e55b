package models

// PlanProposal is a canned outing plan suggested for a group.
//
// Proposals are ephemeral, session-scoped state: they move through
// generated → kept → (adjusted) → converted inside one session and are
// never persisted. Converting a proposal produces a PlanItem.
type PlanProposal struct {
	// ID is the unique identifier for the proposal.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Description is a short pitch for the plan.
	Description string `json:"description"`

	// EstimatedBudget is a display string like "約5万円/人".
	EstimatedBudget string `json:"estimatedBudget"`

	// Highlight is the single selling-point line.
	Highlight string `json:"highlight"`

	// BasedOnStocks references the stock IDs the proposal claims to be
	// built from.
	BasedOnStocks []string `json:"basedOnStocks,omitempty"`
}
