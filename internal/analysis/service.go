// Package analysis runs a text through the sentiment pipeline and keeps the
// per-user history of results.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"MentalHealthSentiment_WebProject/internal/models"
	"MentalHealthSentiment_WebProject/internal/sentiment"
)

var (
	ErrEmptyText        = sentiment.ErrEmptyText
	ErrModelUnavailable = sentiment.ErrModelUnavailable
	ErrInferenceFailed  = errors.New("analysis failed")
)

// User-facing messages.
const (
	MessageModelUnavailable = "ML model not loaded. Please check if " + sentiment.ClassifierFile + " and " + sentiment.VectorizerFile + " exist."
	MessageEmptyText        = "Please enter some text to analyze."
	MessageInferenceFailed  = "Something went wrong while analyzing your text. Please try again."
	MessageNotSaved         = "Your result could not be saved to your history."
)

// Classifier is the inference pipeline. *sentiment.Pipeline implements it.
type Classifier interface {
	Classify(raw string) (sentiment.Result, error)
}

// Repository persists analyses. *storage.Store implements it.
type Repository interface {
	AppendAnalysis(ctx context.Context, a *models.Analysis) error
	LatestAnalyses(ctx context.Context, userID int64, limit int) ([]models.Analysis, error)
	PruneAnalyses(ctx context.Context, before time.Time) (int64, error)
}

// Clock abstraction so retention can be tested.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service is safe for concurrent use; the pipeline is shared read-only.
type Service struct {
	Pipeline  Classifier // nil when the model artifacts are missing
	Repo      Repository
	Clock     Clock
	Logger    *zap.Logger
	Retention time.Duration // 0 keeps history forever
}

// New wires a service. A nil pipeline leaves analysis disabled.
func New(pipeline *sentiment.Pipeline, repo Repository, logger *zap.Logger, retention time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{Repo: repo, Clock: SystemClock{}, Logger: logger, Retention: retention}
	if pipeline != nil {
		s.Pipeline = pipeline
	}
	return s
}

// Outcome is what one analysis request produced.
type Outcome struct {
	Result sentiment.Result
	// Record is the stored history entry; nil for anonymous requests or when saving failed.
	Record *models.Analysis
	// Warning is a user-visible, non-fatal problem (the result is still valid).
	Warning string
}

// ModelAvailable reports whether analysis can run at all.
func (s *Service) ModelAvailable() bool {
	return s.Pipeline != nil
}

// Analyze classifies text. When userID is non-nil the result is also appended to the
// user's history; a storage failure only sets Outcome.Warning.
func (s *Service) Analyze(ctx context.Context, userID *int64, text string) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return Outcome{}, ErrEmptyText
	}
	if !s.ModelAvailable() {
		return Outcome{}, ErrModelUnavailable
	}

	res, err := s.Pipeline.Classify(text)
	switch {
	case err == nil:
	case errors.Is(err, sentiment.ErrEmptyText):
		return Outcome{}, ErrEmptyText
	case errors.Is(err, sentiment.ErrModelUnavailable):
		return Outcome{}, ErrModelUnavailable
	default:
		s.Logger.Error("Analyze(): inference failed", zap.Error(err))
		return Outcome{}, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	out := Outcome{Result: res}
	if userID == nil {
		return out, nil
	}

	record := &models.Analysis{
		UserID:     *userID,
		Text:       models.TruncateText(text),
		Prediction: res.Prediction,
		Sentiment:  res.Sentiment,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.AppendAnalysis(ctx, record); err != nil {
		s.Logger.Error("Analyze(): failed to save analysis",
			zap.Int64("user_id", *userID),
			zap.Error(err),
		)
		out.Warning = MessageNotSaved
		return out, nil
	}
	out.Record = record
	return out, nil
}

// History returns the user's most recent analyses, newest first, at most 20.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]models.Analysis, error) {
	return s.Repo.LatestAnalyses(ctx, userID, limit)
}

// Prune deletes analyses older than the retention window. It is a no-op when
// retention is disabled.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	if s.Retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.Retention)
	n, err := s.Repo.PruneAnalyses(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Logger.Info("Prune(): removed expired analyses", zap.Int64("count", n), zap.Time("before", cutoff))
	}
	return n, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}
