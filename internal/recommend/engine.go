// internal/recommend/engine.go
package recommend

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	emptyText   = "Please describe your business needs so I can recommend a plan."
	priceText   = "You need to schedule a call with the boss for the price. You'll find a button just above for scheduling the meet."
	noMatchText = "No exact plan matches your needs. You can choose to 'Customize your own Plan'."
)

// Engine answers inquiries from a fixed rule table.
type Engine struct {
	rules *RuleTable
}

func NewEngine(rules *RuleTable) *Engine {
	return &Engine{rules: rules}
}

// Recommend runs the full flow: empty check, price intent, service match,
// plan selection and formatting.
func (e *Engine) Recommend(inquiry string) Recommendation {
	text := strings.TrimSpace(inquiry)
	if text == "" {
		return Recommendation{Outcome: OutcomeEmpty, Text: emptyText}
	}

	if IsPriceQuery(text) {
		return Recommendation{Outcome: OutcomePrice, Text: priceText}
	}

	services := e.rules.Match(text)
	if len(services) == 0 {
		return Recommendation{Outcome: OutcomeNoMatch, Services: services, Text: noMatchText}
	}

	plan := SelectPlan(text, services)
	return Recommendation{
		Outcome:  OutcomePlan,
		Plan:     &plan,
		Services: services,
		Text:     FormatPlan(plan, services),
	}
}

// FormatPlan renders the recommendation message for a plan and its services.
func FormatPlan(plan Plan, services []string) string {
	var b strings.Builder
	b.WriteString("Based on your needs, we recommend:\n\n🏆 **")
	b.WriteString(plan.Name)
	b.WriteString("**\nThis plan is ")
	b.WriteString(plan.Reason)
	b.WriteString("\n\nIt will cover your requirements for:\n")
	for _, svc := range services {
		b.WriteString("✅ ")
		b.WriteString(HumanizeService(svc))
		b.WriteString("\n")
	}
	b.WriteString("\nWant to discuss next steps? Tap 'Schedule a Meet'.")
	return b.String()
}

// HumanizeService turns "web_design" into "Web Design". Every non-letter
// starts a new word, so "b2b_marketing" becomes "B2B Marketing".
func HumanizeService(id string) string {
	// cases.Caser holds state, so one per call.
	caser := cases.Title(language.Und)
	text := strings.ReplaceAll(id, "_", " ")

	var b strings.Builder
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(text[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(text[start:]))
	}
	return b.String()
}
