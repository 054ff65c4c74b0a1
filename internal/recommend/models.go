// internal/recommend/models.go
package recommend

// Tier identifies one of the three fixed plans.
type Tier string

const (
	TierBlueprint Tier = "blueprint"
	TierAuthority Tier = "authority"
	TierEmpire    Tier = "empire"
)

// Plan is a recommended tier with its display name and justification.
type Plan struct {
	Tier   Tier   `json:"tier"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

var (
	Blueprint = Plan{
		Tier:   TierBlueprint,
		Name:   "The Blueprint Custom",
		Reason: "best for early-stage startups needing a professional launch.",
	}
	Authority = Plan{
		Tier:   TierAuthority,
		Name:   "The Authority Custom",
		Reason: "designed for growing brands ready to dominate their niche.",
	}
	Empire = Plan{
		Tier:   TierEmpire,
		Name:   "The Empire Custom",
		Reason: "ideal for businesses scaling for maximum market impact and ROI.",
	}
)

// Outcome is the branch the engine took for an inquiry.
type Outcome string

const (
	OutcomeEmpty   Outcome = "empty"
	OutcomePrice   Outcome = "price"
	OutcomeNoMatch Outcome = "no_match"
	OutcomePlan    Outcome = "plan"
)

// Recommendation is the engine result. Plan is nil unless Outcome is OutcomePlan.
type Recommendation struct {
	Outcome  Outcome
	Plan     *Plan
	Services []string
	Text     string
}

// Request / Response are the /recommend wire shapes.
type Request struct {
	Message string `json:"message"`
}

type Response struct {
	Response string `json:"response"`
}
