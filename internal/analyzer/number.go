// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under AGPL-3.0 — See LICENSE for terms.
// Analysis intelligence — also maintained under separate proprietary license.
package analyzer

import (
	"crypto/md5"
	"math"
	"regexp"
	"strings"
)

var (
	nonDigits   = regexp.MustCompile(`\D`)
	phoneFormat = regexp.MustCompile(`^\+?\d{8,15}$`)
)

// 4-digit ascending/descending runs that mark vanity or generated numbers.
var sequentialPatterns = []string{
	"0123", "1234", "2345", "3456", "4567", "5678", "6789",
	"9876", "5432", "4321",
}

// AnalyzeNumber scores a raw phone number string. Phone numbers carry no
// credential-request or trusted-source signal, so the resolver only ever
// sees the score.
func (a *Analyzer) AnalyzeNumber(number string) Result {
	r := newResult()

	digits := nonDigits.ReplaceAllString(number, "")
	normalized := digits
	if strings.HasPrefix(strings.TrimSpace(number), "+") {
		normalized = "+" + digits
	}
	r.Features["normalized"] = normalized

	validFormat := phoneFormat.MatchString(normalized)
	r.Features["valid_format"] = validFormat
	if !validFormat {
		r.RiskScore += 30
		r.explain("Phone number format is non-standard or too short/long.")
	}

	// Indian telemarketing "140" prefix cluster in its three common shapes.
	telemarketing := (strings.HasPrefix(digits, "140") && len(digits) == 10) ||
		(strings.HasPrefix(digits, "91140") && len(digits) == 12) ||
		(strings.HasPrefix(digits, "0140") && len(digits) == 11)
	r.Features["telemarketing_prefix"] = telemarketing
	if telemarketing {
		r.RiskScore += 60
		r.explain("Number matches known Indian telemarketing (140) prefix clusters.")
	}

	if strings.HasPrefix(normalized, "+") && !strings.HasPrefix(normalized, "+91") {
		r.RiskScore += 15
		r.explain("Number is from an international region outside local priority (India).")
	} else if strings.HasPrefix(normalized, "+91") ||
		(len(digits) == 10 && !strings.HasPrefix(normalized, "+")) {
		r.mitigate("Number is from the local region (India) or follows local 10-digit format.")
	}

	if len(digits) > 0 {
		var counts [10]int
		distinct := 0
		maxCount := 0
		for _, d := range digits {
			counts[d-'0']++
			if counts[d-'0'] == 1 {
				distinct++
			}
			if counts[d-'0'] > maxCount {
				maxCount = counts[d-'0']
			}
		}
		ratio := float64(maxCount) / float64(len(digits))
		r.Features["repeated_digit_ratio"] = math.Round(ratio*100) / 100
		if ratio > 0.6 {
			r.RiskScore += 25
			r.explain("Number contains highly repetitive digits (suspicious).")
		} else if distinct <= 3 && len(digits) >= 10 {
			r.RiskScore += 20
			r.explain("Number uses a very limited set of unique digits.")
		}
	}

	hasSequence := false
	for _, seq := range sequentialPatterns {
		if strings.Contains(digits, seq) {
			hasSequence = true
			break
		}
	}
	r.Features["sequential_pattern"] = hasSequence
	if hasSequence {
		r.RiskScore += 15
		r.explain("Number contains simple sequential patterns.")
	}

	// The threat database stores numbers both with and without the country
	// prefix marker, so check the toggled variant too.
	variant := "+" + normalized
	if strings.HasPrefix(normalized, "+") {
		variant = normalized[1:]
	}
	knownSpam := a.ref.SpamNumbers[normalized] || a.ref.SpamNumbers[variant]

	if knownSpam {
		r.RiskScore = 100
		r.explain("Number is a confirmed sender in our threat database.")
		r.Category = CategoryScam
		r.Verdict = Verdict(CategoryScam)
		return *r
	}

	// Deterministic stand-in for a live reputation lookup: same digit
	// string, same outcome. Not production logic — the buckets approximate
	// a 23%/12%/65% split and nothing more.
	sum := md5.Sum([]byte(digits))
	switch bucket := int(sum[0]); {
	case bucket < 60:
		if r.RiskScore < 85 {
			r.RiskScore = 85
		}
		r.explain("Number has been flagged by the community for suspicious activity.")
	case bucket < 90:
		if r.RiskScore < 45 {
			r.RiskScore = 45
		}
		r.explain("Number has recent reports for unsolicited telemarketing.")
	default:
		r.RiskScore -= 10
		if r.RiskScore < 0 {
			r.RiskScore = 0
		}
		if r.RiskScore < 40 {
			r.mitigate("No active community flags found for this number.")
		}
	}

	resolve(r, false, false)
	return *r
}
