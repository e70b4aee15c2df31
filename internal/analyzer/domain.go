// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package analyzer

import (
	"net"
	"net/url"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// RegistrableDomain extracts the domain+public-suffix pair from a URL or
// bare hostname, e.g. "https://mail.google.co.uk/a" -> "google.co.uk".
// Returns "" when no registrable domain can be derived (raw IPs, single
// labels, garbage input). Purely syntactic — no lookups.
func RegistrableDomain(input string) string {
	host := strings.TrimSpace(input)

	if strings.Contains(host, "://") {
		if u, err := url.Parse(host); err == nil && u.Hostname() != "" {
			host = u.Hostname()
		} else {
			host = host[strings.Index(host, "://")+3:]
		}
	}

	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimRight(host, ".")
	if host == "" {
		return ""
	}

	if net.ParseIP(host) != nil {
		return ""
	}

	host = strings.ToLower(host)
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}

	if _, ok := dns.IsDomainName(host); !ok {
		return ""
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return strings.ToLower(registrable)
}

// IsTrusted reports whether the input resolves to a domain on the trusted
// allow-list. Inputs containing "://" or "." are reduced to their
// registrable domain first; anything else is treated as a domain literal.
func (a *Analyzer) IsTrusted(domainOrURL string) bool {
	if domainOrURL == "" {
		return false
	}

	domain := domainOrURL
	if strings.Contains(domain, "://") || strings.Contains(domain, ".") {
		domain = RegistrableDomain(domain)
		if domain == "" {
			return false
		}
	}
	return a.ref.TrustedDomains[strings.ToLower(domain)]
}
