// Package safety runs the two-stage escalation sequence that gates
// AI output: a content-moderation pre-check followed, only when content
// is flagged, by a secondary risk classifier.
package safety

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/moodi-labs/moodi-backend/internal/domain"
	"github.com/moodi-labs/moodi-backend/internal/logger"
	"github.com/moodi-labs/moodi-backend/internal/metrics"
)

// Moderator is the content-moderation collaborator
type Moderator interface {
	CheckContent(ctx context.Context, text string) (*domain.ModerationResult, error)
}

// RiskClassifier is the secondary safety classifier, consulted only when
// moderation flags content
type RiskClassifier interface {
	ClassifyRisk(ctx context.Context, text string) (domain.SafetyFlag, error)
}

// Verdict cache defaults. Repeated submissions of identical context text
// (retries, double-taps) skip the moderation round-trip.
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 10 * time.Minute
)

// Sequencer orders the safety collaborators and applies the fail-open
// policy: infrastructure failure never escalates on its own.
type Sequencer struct {
	moderator  Moderator
	classifier RiskClassifier
	verdicts   *expirable.LRU[string, *domain.SafetyAssessment]
}

// NewSequencer creates a sequencer over the given collaborators
func NewSequencer(moderator Moderator, classifier RiskClassifier) *Sequencer {
	return &Sequencer{
		moderator:  moderator,
		classifier: classifier,
		verdicts:   expirable.NewLRU[string, *domain.SafetyAssessment](DefaultCacheSize, nil, DefaultCacheTTL),
	}
}

// Assess runs the escalation sequence over the submission's context text.
// It never fails: collaborator errors degrade to the permissive outcome.
//
// Sequencing is short-circuited and strictly ordered:
//  1. Empty text returns ok without any external call.
//  2. Moderation runs; a failed call counts as not flagged.
//  3. Unflagged content returns ok without consulting the classifier.
//  4. Flagged content is classified; a failed call counts as ok.
func (s *Sequencer) Assess(ctx context.Context, contextText string) domain.SafetyAssessment {
	log := logger.FromContext(ctx)

	text := strings.TrimSpace(contextText)
	if text == "" {
		return domain.SafetyAssessment{Flag: domain.SafetyFlagOK}
	}

	key := verdictKey(text)
	if cached, ok := s.verdicts.Get(key); ok {
		return *cached
	}

	assessment := domain.SafetyAssessment{Flag: domain.SafetyFlagOK}
	degraded := false

	moderation, err := s.moderator.CheckContent(ctx, text)
	if err != nil {
		// Fail open: moderation outage must not block normal use
		log.Warn("Moderation check failed, proceeding unflagged", "error", err)
		metrics.ModerationFailures.WithLabelValues("moderation").Inc()
		moderation = &domain.ModerationResult{Flagged: false, Categories: map[string]bool{}}
		degraded = true
	}
	assessment.Moderation = moderation

	if moderation.Flagged {
		flag, err := s.classifier.ClassifyRisk(ctx, text)
		if err != nil {
			// Same fail-open posture as the moderation stage
			log.Warn("Risk classification failed, defaulting to ok", "error", err)
			metrics.ModerationFailures.WithLabelValues("classifier").Inc()
			flag = domain.SafetyFlagOK
			degraded = true
		} else {
			assessment.RiskClassification = &flag
		}
		assessment.Flag = flag
	}

	if assessment.Elevated() {
		metrics.SafetyEscalations.Inc()
		log.Warn("Safety escalation", "categories", moderation.Categories)
	}

	// Degraded verdicts are not cached so the next attempt retries the
	// collaborators instead of pinning the fail-open outcome for the TTL
	if !degraded {
		s.verdicts.Add(key, &assessment)
	}
	return assessment
}

func verdictKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
