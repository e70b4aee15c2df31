package analyzer

import (
	"github.com/RAkSHITH256/Cyber-Threat-Detection-Platform/internal/refdata"
)

// SpamOracle scores free text with the probability of the spam class.
// Implementations must be safe for concurrent calls.
type SpamOracle interface {
	PredictProbability(text string) (float64, error)
}

// Analyzer runs the four channel analyses against the process-wide reference
// data. All methods are pure and synchronous; an Analyzer is safe for
// concurrent use.
type Analyzer struct {
	ref    *refdata.Store
	oracle SpamOracle
}

// New builds an Analyzer. oracle may be nil, in which case the message
// channel falls back to keyword matching.
func New(ref *refdata.Store, oracle SpamOracle) *Analyzer {
	if ref == nil {
		ref = refdata.Default()
	}
	return &Analyzer{ref: ref, oracle: oracle}
}

// HasOracle reports whether a spam classification model is loaded.
func (a *Analyzer) HasOracle() bool {
	return a.oracle != nil
}

// ReferenceSizes reports the size of each loaded reference set, for the
// health endpoint.
func (a *Analyzer) ReferenceSizes() map[string]int {
	return map[string]int{
		"trusted_domains":  len(a.ref.TrustedDomains),
		"phishing_domains": len(a.ref.PhishingDomains),
		"spam_numbers":     len(a.ref.SpamNumbers),
		"spam_keywords":    len(a.ref.SpamKeywords),
		"intent_keywords":  len(a.ref.IntentKeywords),
	}
}
