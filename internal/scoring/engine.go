// Package scoring computes the deterministic resume match score for an
// application. The engine is pure: same inputs always yield the same result,
// with no I/O and no randomness.
package scoring

import (
	"strings"
	"unicode"

	"github.com/thoas/go-funk"
)

const (
	LabelShortlisted = "shortlisted"
	LabelReview      = "review"
	LabelRejected    = "rejected"
)

// Config carries the scoring weights and decision thresholds. Weights apply
// to the high priority and normal keyword coverage ratios and are expected
// to sum to 1.
type Config struct {
	HighPriorityWeight float64
	NormalWeight       float64
	ShortlistThreshold float64
	ReviewThreshold    float64
}

func DefaultConfig() Config {
	return Config{
		HighPriorityWeight: 0.7,
		NormalWeight:       0.3,
		ShortlistThreshold: 0.7,
		ReviewThreshold:    0.4,
	}
}

type Result struct {
	Score             float64
	HighPriorityRatio float64
	NormalRatio       float64
	Label             string
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score evaluates resume text against the job's keyword sets. A keyword
// counts as matched only when all of its tokens appear as whole tokens in
// the resume, so "java" never matches inside "javascript". An empty keyword
// set yields a coverage ratio of 1.0 since there is nothing to miss.
func (e *Engine) Score(resumeText, jdText string, highPriority, normal []string) Result {
	tokens := tokenSet(resumeText)

	hpRatio := coverage(tokens, highPriority)
	normalRatio := coverage(tokens, normal)

	score := e.cfg.HighPriorityWeight*hpRatio + e.cfg.NormalWeight*normalRatio

	label := LabelRejected
	switch {
	case score >= e.cfg.ShortlistThreshold:
		label = LabelShortlisted
	case score >= e.cfg.ReviewThreshold:
		label = LabelReview
	}

	return Result{
		Score:             score,
		HighPriorityRatio: hpRatio,
		NormalRatio:       normalRatio,
		Label:             label,
	}
}

func coverage(resumeTokens map[string]bool, keywords []string) float64 {
	cleaned := funk.UniqString(normalizeKeywords(keywords))
	if len(cleaned) == 0 {
		return 1.0
	}

	matched := 0
	for _, keyword := range cleaned {
		if containsKeyword(resumeTokens, keyword) {
			matched++
		}
	}
	return float64(matched) / float64(len(cleaned))
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// containsKeyword reports whether every token of the keyword appears in the
// resume token set. Multi word keywords such as "machine learning" require
// all their parts.
func containsKeyword(resumeTokens map[string]bool, keyword string) bool {
	parts := Tokenize(keyword)
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if !resumeTokens[part] {
			return false
		}
	}
	return true
}

// Tokenize lowercases the text and splits it on anything that is not a
// letter, digit, '+' or '#'. Keeping '+' and '#' preserves tokens like
// "c++" and "c#".
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}

func tokenSet(text string) map[string]bool {
	tokens := Tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
