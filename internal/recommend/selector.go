// internal/recommend/selector.go
package recommend

import "strings"

var (
	empireTriggers = []string{
		"executive", "custom iconography", "social media kit", "full-stack ecosystem",
		"scale-up", "unlimited ad sets", "24/7", "dedicated project manager",
		"scale", "empire", "automation",
	}
	authorityTriggers = []string{
		"full brand identity", "brand book", "5 pages", "a/b testing",
		"social media templates", "performance reports",
		"growth", "authority",
	}
)

const (
	empireServiceCount    = 5
	authorityServiceCount = 3
)

// SelectPlan picks the tier for an inquiry and its matched services. Empire
// is checked first, so five or more services never reach Authority.
func SelectPlan(inquiry string, matched []string) Plan {
	text := strings.ToLower(inquiry)

	if containsAny(text, empireTriggers) || len(matched) >= empireServiceCount {
		return Empire
	}
	if containsAny(text, authorityTriggers) || len(matched) >= authorityServiceCount {
		return Authority
	}
	return Blueprint
}
