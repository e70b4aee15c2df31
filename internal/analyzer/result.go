package analyzer

// Category is the coarse classification shown to the user.
type Category string

const (
	CategoryLegitimate  Category = "Legitimate"
	CategoryPromotional Category = "Promotional"
	CategorySuspicious  Category = "Suspicious"
	CategoryScam        Category = "Scam"
)

// Result is returned by every channel analyzer.
type Result struct {
	RiskScore    int            `json:"risk_score"`
	Category     Category       `json:"category"`
	Verdict      string         `json:"verdict"`
	Features     map[string]any `json:"features"`
	Explanations []string       `json:"explanations"`
	Mitigations  []string       `json:"mitigations"`
}

// ResolveCategory maps a clamped risk score plus the credential-request and
// trusted-source flags to a Category. Precedence: trusted source first, then
// credential request, then plain score bands. A trusted source with a very
// high score is still Suspicious — trusted brands get compromised or spoofed.
func ResolveCategory(score int, hasCredentialRequest, trustedSource bool) Category {
	if trustedSource {
		if score > 70 {
			return CategorySuspicious
		}
		return CategoryLegitimate
	}

	if hasCredentialRequest {
		if score > 60 {
			return CategoryScam
		}
		return CategorySuspicious
	}

	switch {
	case score > 70:
		return CategoryScam
	case score > 40:
		return CategorySuspicious
	case score > 15:
		return CategoryPromotional
	}
	return CategoryLegitimate
}

var verdictMap = map[Category]string{
	CategoryLegitimate:  "SAFE (Verified/Safe)",
	CategoryPromotional: "LOW RISK (Promotional)",
	CategorySuspicious:  "MEDIUM RISK (Suspicious)",
	CategoryScam:        "HIGH RISK (Scam/Phishing)",
}

// Verdict returns the display string for a category. Unmapped categories
// should be unreachable; "UNKNOWN" is the defensive default.
func Verdict(c Category) string {
	if v, ok := verdictMap[c]; ok {
		return v
	}
	return "UNKNOWN"
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func resolve(r *Result, hasCredentialRequest, trustedSource bool) {
	r.RiskScore = clampScore(r.RiskScore)
	r.Category = ResolveCategory(r.RiskScore, hasCredentialRequest, trustedSource)
	r.Verdict = Verdict(r.Category)
}

func newResult() *Result {
	return &Result{
		Features:     map[string]any{},
		Explanations: []string{},
		Mitigations:  []string{},
	}
}

func (r *Result) explain(msg string) {
	r.Explanations = append(r.Explanations, msg)
}

func (r *Result) mitigate(msg string) {
	r.Mitigations = append(r.Mitigations, msg)
}
