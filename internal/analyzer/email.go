// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under AGPL-3.0 — See LICENSE for terms.
// Analysis intelligence — also maintained under separate proprietary license.
package analyzer

import (
	"fmt"
	"strings"
)

// Only the opening of the body is scanned for a greeting.
const greetingWindow = 100

var genericGreetings = []string{"dear customer", "dear user", "dear member"}

// AnalyzeEmail scores raw email body text. Shares the spam keyword list
// with the message channel and the phishing domain set with the URL channel.
func (a *Analyzer) AnalyzeEmail(content string) Result {
	r := newResult()
	lower := strings.ToLower(content)

	intent := a.AnalyzeIntent(content)
	r.Features["credential_warning"] = intent.HasCredentialRequest
	if intent.HasCredentialRequest {
		r.RiskScore += 30
		r.explain("Email requests sensitive actions: " + strings.Join(intent.MatchedKeywords, ", "))
	} else {
		r.RiskScore -= 10
		r.mitigate("No credential requests (OTP/Password) detected in body.")
	}

	links := linkPattern.FindAllString(content, -1)
	trustedSource := false
	if len(links) > 0 {
		allTrusted := true
		for _, link := range links {
			domain := RegistrableDomain(link)
			if a.IsTrusted(domain) {
				r.mitigate(fmt.Sprintf("Contains link to trusted domain: %s", domain))
				continue
			}
			allTrusted = false
			r.explain(fmt.Sprintf("Contains link to untrusted domain: %s", domain))
			// Additive per link, deliberately uncapped before the final
			// clamp: multiple phishing hosts compound.
			if domain != "" && a.ref.PhishingDomains[domain] {
				r.RiskScore += 50
				r.explain(fmt.Sprintf("Domain '%s' is a confirmed phishing host.", domain))
			}
		}
		if allTrusted {
			r.RiskScore -= 20
			trustedSource = true
		}
	} else {
		r.mitigate("No external links found in the email.")
	}

	keywordMatches := []string{}
	for _, keyword := range a.ref.SpamKeywords {
		if strings.Contains(lower, keyword) {
			keywordMatches = append(keywordMatches, keyword)
		}
	}
	if len(keywordMatches) > 1 {
		r.RiskScore += 20
		r.explain("Typical spam language detected: " + strings.Join(keywordMatches, ", "))
	}

	opening := lower
	if len(opening) > greetingWindow {
		opening = opening[:greetingWindow]
	}
	generic := false
	for _, greeting := range genericGreetings {
		if strings.Contains(opening, greeting) {
			generic = true
			break
		}
	}
	if generic {
		r.RiskScore += 15
		r.explain("Uses a generic greeting ('Dear Customer'), common in phishing.")
	} else {
		r.mitigate("Does not use common generic greetings.")
	}

	resolve(r, intent.HasCredentialRequest, trustedSource)
	return *r
}
