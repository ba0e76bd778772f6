// Package moderation screens submitted text before it reaches the query
// store. A dependency-free rule score catches obvious spam locally; an
// optional external classifier handles everything the rules cannot.
package moderation

import (
	"context"
	"regexp"
	"strings"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// Classification labels
const (
	LabelSafe       = "SAFE"
	LabelHateSpeech = "HATE_SPEECH"
	LabelHarassment = "HARASSMENT"
	LabelSpam       = "SPAM"
	LabelSexual     = "SEXUAL"
	LabelViolence   = "VIOLENCE"
)

// Classification is an external classifier's verdict on one text
type Classification struct {
	Label      string
	Confidence float64
}

// Classifier is the remote moderation model. Implementations call out to
// an LLM service; nil means rule-based screening only.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// Result is the outcome of screening one text
type Result struct {
	Label      string
	Confidence float64
	Blocked    bool
	Source     string
}

var (
	linkPattern         = regexp.MustCompile(`http[s]?://`)
	repeatedCharPattern = regexp.MustCompile(`(.)\1{4,}`)
)

// SpamScore rates a text between 0 and 1 on cheap local signals: multiple
// links, long repeated-character runs, shouting, repeated words.
func SpamScore(text string) float64 {
	score := 0.0

	if len(linkPattern.FindAllString(text, -1)) > 1 {
		score += 0.4
	}
	if repeatedCharPattern.MatchString(text) {
		score += 0.3
	}
	if isAllUpper(text) {
		score += 0.2
	}

	words := strings.Fields(strings.ToLower(text))
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		if _, dup := seen[word]; dup {
			score += 0.1
			break
		}
		seen[word] = struct{}{}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// isAllUpper reports whether the text contains letters and none lowercase
func isAllUpper(text string) bool {
	return text != strings.ToLower(text) && text == strings.ToUpper(text)
}

// Moderator combines the rule score with the optional classifier
type Moderator struct {
	classifier          Classifier
	spamThreshold       float64
	confidenceThreshold float64
}

// NewModerator creates a moderator. classifier may be nil; spamThreshold is
// the rule score above which a text is blocked outright.
func NewModerator(classifier Classifier, spamThreshold float64) *Moderator {
	if spamThreshold <= 0 {
		spamThreshold = 0.6
	}
	return &Moderator{
		classifier:          classifier,
		spamThreshold:       spamThreshold,
		confidenceThreshold: 0.7,
	}
}

// Check screens one text. A high rule score blocks without consulting the
// classifier. Classifier failures fail open: a broken moderation service
// must not stop students from asking questions.
func (m *Moderator) Check(ctx context.Context, text string) Result {
	spamScore := SpamScore(text)
	if spamScore > m.spamThreshold {
		return Result{
			Label:      LabelSpam,
			Confidence: spamScore,
			Blocked:    true,
			Source:     "rule_based",
		}
	}

	if m.classifier == nil {
		return Result{Label: LabelSafe, Confidence: 1 - spamScore, Source: "rule_based"}
	}

	classification, err := m.classifier.Classify(ctx, text)
	if err != nil {
		logger.Warn().Err(err).Msg("Moderation classifier unavailable, allowing text")
		return Result{Label: LabelSafe, Confidence: 0, Source: "rule_based"}
	}

	blocked := classification.Label != LabelSafe && classification.Confidence > m.confidenceThreshold
	return Result{
		Label:      classification.Label,
		Confidence: classification.Confidence,
		Blocked:    blocked,
		Source:     "llm",
	}
}
