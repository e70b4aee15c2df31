// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under AGPL-3.0 — See LICENSE for terms.
// Analysis intelligence — also maintained under separate proprietary license.
package analyzer

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
)

var linkPattern = regexp.MustCompile(`https?://\S+`)

const oracleExplainThreshold = 0.6

// AnalyzeMessage scores SMS/message text. The spam-likelihood estimate
// prefers the injected classification oracle; without one (or when
// inference fails) it falls back to spam-keyword counting.
func (a *Analyzer) AnalyzeMessage(message string) Result {
	r := newResult()

	scored := false
	if a.oracle != nil {
		prob, err := a.oracle.PredictProbability(message)
		if err == nil {
			r.RiskScore = int(math.Round(prob * 100))
			r.Features["ai_spam_probability"] = prob
			if prob > oracleExplainThreshold {
				r.explain(fmt.Sprintf("AI model identified patterns common in scam messages (%d%% match).", int(math.Round(prob*100))))
			}
			scored = true
		} else {
			slog.Debug("Spam oracle unavailable, falling back to keywords", "error", err)
		}
	}
	if !scored {
		lower := strings.ToLower(message)
		matches := []string{}
		for _, keyword := range a.ref.SpamKeywords {
			if strings.Contains(lower, keyword) {
				matches = append(matches, keyword)
			}
		}
		r.Features["keyword_matches"] = matches
		r.RiskScore = len(matches) * 20
		if len(matches) > 0 {
			r.explain("Message contains suspicious keywords: " + strings.Join(matches, ", "))
		}
	}

	intent := a.AnalyzeIntent(message)
	r.Features["credential_warning"] = intent.HasCredentialRequest
	if intent.HasCredentialRequest {
		r.RiskScore += 20
		r.explain("Message seems to request sensitive information or action: " + strings.Join(intent.MatchedKeywords, ", "))
	} else {
		r.RiskScore -= 10
		r.mitigate("No direct request for OTPs, passwords, or logins detected.")
	}

	links := linkPattern.FindAllString(message, -1)
	r.Features["contains_links"] = len(links) > 0
	trustedSource := false
	if len(links) > 0 {
		allTrusted := true
		for _, link := range links {
			domain := RegistrableDomain(link)
			if a.IsTrusted(domain) {
				r.mitigate(fmt.Sprintf("Contains link to a trusted domain: %s", domain))
			} else {
				allTrusted = false
				r.explain(fmt.Sprintf("Contains link to an untrusted or unknown domain: %s", domain))
			}
		}
		if allTrusted {
			r.RiskScore -= 20
			trustedSource = true
		}
	}

	resolve(r, intent.HasCredentialRequest, trustedSource)
	return *r
}
