package analyzer

import "strings"

// IntentMatch reports whether text asks the reader for a sensitive action.
type IntentMatch struct {
	HasCredentialRequest bool     `json:"has_credential_request"`
	MatchedKeywords      []string `json:"matched_keywords"`
}

// AnalyzeIntent scans text for the high-risk intent keywords. The scan is a
// raw case-insensitive substring containment test, not a tokenized match —
// scoring outcomes depend on it staying that way.
func (a *Analyzer) AnalyzeIntent(text string) IntentMatch {
	lower := strings.ToLower(text)
	matched := []string{}
	for _, keyword := range a.ref.IntentKeywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}
	return IntentMatch{
		HasCredentialRequest: len(matched) > 0,
		MatchedKeywords:      matched,
	}
}
