// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under AGPL-3.0 — See LICENSE for terms.
// Analysis intelligence — also maintained under separate proprietary license.
package analyzer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Naive dotted-quad match, not a validated IP parse. Version-like strings
// can false-positive; that is the accepted tradeoff.
var ipv4Pattern = regexp.MustCompile(`(\d{1,3}\.){3}\d{1,3}`)

const longURLThreshold = 75

// AnalyzeURL scores a raw URL string. Parsing failures degrade to missing
// signals, never to an error.
func (a *Analyzer) AnalyzeURL(rawURL string) Result {
	r := newResult()

	r.Features["url_length"] = len(rawURL)
	if len(rawURL) > longURLThreshold {
		r.RiskScore += 20
		r.explain("URL is unusually long, which is common for obfuscation.")
	}

	scheme := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		scheme = parsed.Scheme
	}
	usesHTTPS := scheme == "https"
	r.Features["uses_https"] = usesHTTPS
	if !usesHTTPS {
		r.RiskScore += 15
		r.explain("URL does not use HTTPS, meaning connection is not secure.")
	} else {
		r.mitigate("URL uses secure HTTPS protocol.")
	}

	hasIP := ipv4Pattern.MatchString(rawURL)
	r.Features["has_ip"] = hasIP
	if hasIP {
		r.RiskScore += 30
		r.explain("URL uses a raw IP address instead of a domain name.")
	}

	symbolCount := strings.Count(rawURL, "-") + strings.Count(rawURL, "@")
	r.Features["symbol_count"] = symbolCount
	if symbolCount > 1 {
		r.RiskScore += 10
		r.explain("URL contains multiple hyphens or '@' symbols, often used to mimic real domains.")
	}

	domain := RegistrableDomain(rawURL)
	if domain == "" {
		r.Features["domain"] = nil
	} else {
		r.Features["domain"] = domain
	}
	trusted := a.IsTrusted(domain)
	r.Features["is_trusted"] = trusted
	if trusted {
		r.RiskScore -= 30
		r.mitigate(fmt.Sprintf("Domain '%s' is a recognized trusted brand.", domain))
	}

	// Blocklist hit dominates everything accumulated so far.
	if domain != "" && a.ref.PhishingDomains[domain] {
		r.RiskScore = 100
		r.Features["database_match"] = true
		r.explain("Domain is found in our database of known phishing sites.")
	}

	intent := a.AnalyzeIntent(rawURL)
	r.Features["credential_warning"] = intent.HasCredentialRequest
	if intent.HasCredentialRequest {
		r.RiskScore += 25
		r.explain("URL path seems to request sensitive actions: " + strings.Join(intent.MatchedKeywords, ", "))
	} else {
		r.mitigate("No sensitive action or credential request detected in URL path.")
	}

	resolve(r, intent.HasCredentialRequest, trusted)
	return *r
}
