// Package hltv turns raw HLTV markup into typed records. Every field is
// extracted independently: a missing selector yields the field's zero value
// and a row that cannot be parsed is skipped, never fatal. A parse function
// only reports not found when the record's identity fields are unresolvable.
package hltv

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const scorePlaceholder = "-"

type Extractor struct {
	baseURL string
	logger  zerolog.Logger
}

func NewExtractor(baseURL string, logger zerolog.Logger) *Extractor {
	return &Extractor{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

func (e *Extractor) absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return e.baseURL + href
}

// matchIDFromHref extracts the numeric id from paths like
// /matches/2378549/vitality-vs-faze-iem-cologne.
func matchIDFromHref(href string) string {
	parts := strings.Split(href, "/")
	if len(parts) > 2 {
		return parts[2]
	}
	return ""
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}

// atoi parses a non-negative integer, returning 0 for anything else.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// intPrefix parses the leading integer of a field that may carry trailing
// annotations, e.g. "17 (3)" -> 17.
func intPrefix(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parenInt parses the first parenthesized integer, e.g. "17 (9)" -> 9.
func parenInt(s string) int {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return 0
	}
	close := strings.IndexByte(s[open:], ')')
	if close < 0 {
		return 0
	}
	return intPrefix(s[open+1 : open+close])
}

// looseFloat parses a float, normalizing comma decimal separators and
// stripping a trailing percent sign. Unparseable text yields 0.
func looseFloat(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
