// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package refdata

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the reference data shared by every analysis. Loaded once at
// startup and read-only afterwards.
type Store struct {
	TrustedDomains  map[string]bool
	PhishingDomains map[string]bool
	SpamNumbers     map[string]bool
	SpamKeywords    []string
	IntentKeywords  []string
}

var defaultTrustedDomains = []string{
	"google.com", "microsoft.com", "apple.com", "amazon.in",
	"airtel.in", "jio.com", "hdfcbank.com", "icicibank.com",
	"sbi.co.in", "paytm.com", "flipkart.com", "irctc.co.in",
}

var defaultPhishingDomains = []string{
	"secure-bank-login.com", "track-pkg.com",
	"verify-account-update.com", "kyc-update-now.in",
}

var defaultSpamNumbers = []string{
	"+911234567890", "1409876543",
}

var defaultSpamKeywords = []string{
	"urgent", "winner", "verify",
}

var defaultIntentKeywords = []string{
	"otp", "password", "verify", "login", "kyc",
	"account locked", "suspended", "cvv", "card number",
	"update your account",
}

// Load reads the five reference documents from dir. A missing or malformed
// document falls back to the built-in default for that document; loading
// never fails.
func Load(dir string) *Store {
	return &Store{
		TrustedDomains:  loadSet(dir, "trusted_domains.json", "trusted_domains", defaultTrustedDomains),
		PhishingDomains: loadSet(dir, "phishing_domains.json", "phishing_domains", defaultPhishingDomains),
		SpamNumbers:     loadSet(dir, "spam_numbers.json", "spam_numbers", defaultSpamNumbers),
		SpamKeywords:    loadList(dir, "spam_keywords.json", "spam_keywords", defaultSpamKeywords),
		IntentKeywords:  loadList(dir, "intent_keywords.json", "high_risk_intents", defaultIntentKeywords),
	}
}

// Default returns a Store built purely from the built-in fallback sets.
func Default() *Store {
	return &Store{
		TrustedDomains:  toSet(defaultTrustedDomains),
		PhishingDomains: toSet(defaultPhishingDomains),
		SpamNumbers:     toSet(defaultSpamNumbers),
		SpamKeywords:    lowerAll(defaultSpamKeywords),
		IntentKeywords:  lowerAll(defaultIntentKeywords),
	}
}

func loadSet(dir, filename, key string, fallback []string) map[string]bool {
	return toSet(loadList(dir, filename, key, fallback))
}

func loadList(dir, filename, key string, fallback []string) []string {
	entries, err := readDocument(filepath.Join(dir, filename), key)
	if err != nil {
		slog.Warn("Reference data unavailable, using built-in defaults",
			"file", filename, "error", err)
		return lowerAll(fallback)
	}
	return lowerAll(entries)
}

// readDocument accepts either a flat JSON string array or an object holding
// the array under the given key (the historical file format).
func readDocument(path, key string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}

	var namespaced map[string][]string
	if err := json.Unmarshal(data, &namespaced); err != nil {
		return nil, err
	}
	if entries, ok := namespaced[key]; ok {
		return entries, nil
	}
	if len(namespaced) == 1 {
		for _, entries := range namespaced {
			return entries, nil
		}
	}
	return []string{}, nil
}

func toSet(entries []string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		set[strings.ToLower(e)] = true
	}
	return set
}

func lowerAll(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		out = append(out, strings.ToLower(e))
	}
	return out
}
