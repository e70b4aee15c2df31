package analyzer

import (
	"strings"
	"testing"
)

func TestAnalyzeEmailPhishingLinksCompound(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeEmail("Verify at http://secure-bank-login.com/a or http://track-pkg.com/b")
	assertWellFormed(t, r)

	// +30 intent, +50 per confirmed phishing host, clamped to 100.
	if r.RiskScore != 100 {
		t.Errorf("risk score = %d, want 100", r.RiskScore)
	}
	if r.Category != CategoryScam {
		t.Errorf("category = %q, want Scam", r.Category)
	}

	phishingHits := 0
	for _, e := range r.Explanations {
		if strings.Contains(e, "confirmed phishing host") {
			phishingHits++
		}
	}
	if phishingHits != 2 {
		t.Errorf("phishing host explanations = %d, want one per link:\n%v", phishingHits, r.Explanations)
	}
}

func TestAnalyzeEmailTrustedStatement(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeEmail("Hello Priya, your monthly statement is ready at https://hdfcbank.com")
	assertWellFormed(t, r)

	if r.RiskScore != 0 {
		t.Errorf("risk score = %d, want 0", r.RiskScore)
	}
	if r.Category != CategoryLegitimate {
		t.Errorf("category = %q, want Legitimate", r.Category)
	}
	if !hasEntry(r.Mitigations, "trusted domain: hdfcbank.com") {
		t.Errorf("missing trusted link mitigation in %v", r.Mitigations)
	}
	if !hasEntry(r.Mitigations, "generic greetings") {
		t.Errorf("missing greeting mitigation in %v", r.Mitigations)
	}
}

func TestAnalyzeEmailGenericGreeting(t *testing.T) {
	a := testAnalyzer()

	t.Run("greeting in opening window", func(t *testing.T) {
		r := a.AnalyzeEmail("Dear Customer, your parcel delivery was missed. Please contact support.")
		if !hasEntry(r.Explanations, "generic greeting") {
			t.Errorf("missing greeting explanation in %v", r.Explanations)
		}
		if !hasEntry(r.Mitigations, "No external links") {
			t.Errorf("missing no-links mitigation in %v", r.Mitigations)
		}
	})

	t.Run("greeting past the window ignored", func(t *testing.T) {
		body := strings.Repeat("x", greetingWindow+1) + " Dear Customer"
		r := a.AnalyzeEmail(body)
		if hasEntry(r.Explanations, "generic greeting") {
			t.Errorf("greeting outside first %d bytes must not fire: %v", greetingWindow, r.Explanations)
		}
	})
}

func TestAnalyzeEmailSpamLanguage(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeEmail("Dear Customer, congratulations! You have won a free prize")
	assertWellFormed(t, r)

	if !hasEntry(r.Explanations, "spam language") {
		t.Errorf("missing spam language explanation in %v", r.Explanations)
	}
	// +15 greeting +20 spam language -10 no credential request.
	if r.RiskScore != 25 {
		t.Errorf("risk score = %d, want 25", r.RiskScore)
	}
	if r.Category != CategoryPromotional {
		t.Errorf("category = %q, want Promotional", r.Category)
	}
}

func TestAnalyzeEmailSingleKeywordTolerated(t *testing.T) {
	a := testAnalyzer()

	// One spam keyword alone is not enough for the spam-language signal.
	r := a.AnalyzeEmail("Hi Ravi, the first month is free on the annual plan.")
	if hasEntry(r.Explanations, "spam language") {
		t.Errorf("single keyword should not trigger spam language: %v", r.Explanations)
	}
	if r.Category != CategoryLegitimate {
		t.Errorf("category = %q, want Legitimate", r.Category)
	}
}
