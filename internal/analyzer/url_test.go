package analyzer

import (
	"strings"
	"testing"
)

func TestAnalyzeURLTrustedWithCredentialPath(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeURL("https://airtel.in/login")
	assertWellFormed(t, r)

	// -30 trusted +25 intent clamps to zero, and the trusted source wins
	// the category even with the credential flag raised.
	if r.RiskScore != 0 {
		t.Errorf("risk score = %d, want 0", r.RiskScore)
	}
	if r.Category != CategoryLegitimate {
		t.Errorf("category = %q, want Legitimate", r.Category)
	}
	if r.Features["is_trusted"] != true {
		t.Error("is_trusted feature not set")
	}
	if r.Features["credential_warning"] != true {
		t.Error("credential_warning feature not set")
	}
	if !hasEntry(r.Mitigations, "trusted brand") {
		t.Errorf("missing trusted brand mitigation in %v", r.Mitigations)
	}
}

func TestAnalyzeURLRawIPWithCredentialPath(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeURL("http://192.168.1.1/verify-otp")
	assertWellFormed(t, r)

	// +15 http +30 ip +25 intent = 70, credential branch: 70 > 60 is Scam.
	if r.RiskScore != 70 {
		t.Errorf("risk score = %d, want 70", r.RiskScore)
	}
	if r.Category != CategoryScam {
		t.Errorf("category = %q, want Scam", r.Category)
	}
	if r.Features["has_ip"] != true {
		t.Error("has_ip feature not set")
	}
	if r.Features["domain"] != nil {
		t.Errorf("domain feature = %v, want nil for raw IP", r.Features["domain"])
	}
}

func TestAnalyzeURLKnownPhishingDomain(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeURL("http://secure-bank-login.com")
	assertWellFormed(t, r)

	// Blocklist forces 100; the later +25 intent bonus clamps back to 100.
	if r.RiskScore != 100 {
		t.Errorf("risk score = %d, want 100", r.RiskScore)
	}
	if r.Category != CategoryScam {
		t.Errorf("category = %q, want Scam", r.Category)
	}
	if r.Features["database_match"] != true {
		t.Error("database_match feature not set")
	}
	if !hasEntry(r.Explanations, "known phishing sites") {
		t.Errorf("missing blocklist explanation in %v", r.Explanations)
	}
}

func TestAnalyzeURLLongAddress(t *testing.T) {
	a := testAnalyzer()

	r := a.AnalyzeURL("https://example.com/" + strings.Repeat("a", 80))
	assertWellFormed(t, r)

	if r.Features["url_length"].(int) <= longURLThreshold {
		t.Fatal("fixture URL not long enough")
	}
	if !hasEntry(r.Explanations, "unusually long") {
		t.Errorf("missing length explanation in %v", r.Explanations)
	}
	if r.RiskScore != 20 {
		t.Errorf("risk score = %d, want 20", r.RiskScore)
	}
	if r.Category != CategoryPromotional {
		t.Errorf("category = %q, want Promotional", r.Category)
	}
}

func TestAnalyzeURLDegenerateInputs(t *testing.T) {
	a := testAnalyzer()

	inputs := []string{
		"",
		"   ",
		"not a url at all",
		"://",
		"https://@@@---@@@",
		strings.Repeat("x", 5000),
	}
	for _, input := range inputs {
		r := a.AnalyzeURL(input)
		assertWellFormed(t, r)
	}
}
