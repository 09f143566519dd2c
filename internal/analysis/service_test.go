package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"MentalHealthSentiment_WebProject/internal/models"
	"MentalHealthSentiment_WebProject/internal/sentiment"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClassifier struct {
	calls []string
	res   sentiment.Result
	err   error
}

func (f *fakeClassifier) Classify(raw string) (sentiment.Result, error) {
	f.calls = append(f.calls, raw)
	return f.res, f.err
}

type fakeRepo struct {
	mu        sync.Mutex
	records   []models.Analysis
	appendErr error
	prunedAt  []time.Time
	pruneErr  error
}

func (r *fakeRepo) AppendAnalysis(_ context.Context, a *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	a.ID = int64(len(r.records) + 1)
	r.records = append(r.records, *a)
	return nil
}

func (r *fakeRepo) LatestAnalyses(_ context.Context, userID int64, limit int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Analysis
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeRepo) PruneAnalyses(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prunedAt = append(r.prunedAt, before)
	return 1, r.pruneErr
}

func (r *fakeRepo) pruneCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prunedAt)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var positive = sentiment.Result{
	Cleaned:    "i love life",
	Label:      1,
	Prediction: "Positive Mental State 😊",
	Sentiment:  sentiment.SentimentPositive,
}

func newService(t *testing.T, clf Classifier, repo *fakeRepo) *Service {
	t.Helper()
	return &Service{
		Pipeline: clf,
		Repo:     repo,
		Clock:    fixedClock{time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)},
		Logger:   zaptest.NewLogger(t),
	}
}

func userID(id int64) *int64 { return &id }

func TestAnalyze_StoresForUser(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(t, &fakeClassifier{res: positive}, repo)

	out, err := s.Analyze(context.Background(), userID(7), "I love life!")
	require.NoError(t, err)
	assert.Equal(t, positive, out.Result)
	assert.Empty(t, out.Warning)
	require.NotNil(t, out.Record)

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, int64(7), rec.UserID)
	assert.Equal(t, "I love life!", rec.Text, "raw text is stored, not the cleaned text")
	assert.Equal(t, positive.Prediction, rec.Prediction)
	assert.Equal(t, sentiment.SentimentPositive, rec.Sentiment)
	assert.Equal(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), rec.CreatedAt)
}

func TestAnalyze_TruncatesStoredText(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(t, &fakeClassifier{res: positive}, repo)

	long := strings.Repeat("é", 800)
	_, err := s.Analyze(context.Background(), userID(1), long)
	require.NoError(t, err)

	require.Len(t, repo.records, 1)
	assert.Equal(t, models.MaxAnalysisTextLength, len([]rune(repo.records[0].Text)))
}

func TestAnalyze_Anonymous(t *testing.T) {
	repo := &fakeRepo{}
	clf := &fakeClassifier{res: positive}
	s := newService(t, clf, repo)

	out, err := s.Analyze(context.Background(), nil, "I love life")
	require.NoError(t, err)
	assert.Equal(t, positive, out.Result)
	assert.Nil(t, out.Record)
	assert.Empty(t, repo.records)
}

func TestAnalyze_EmptyText(t *testing.T) {
	repo := &fakeRepo{}
	clf := &fakeClassifier{res: positive}
	s := newService(t, clf, repo)

	for _, in := range []string{"", "  ", "\t\n"} {
		_, err := s.Analyze(context.Background(), userID(1), in)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Empty(t, clf.calls)
	assert.Empty(t, repo.records)

	// text that normalizes to nothing is rejected by the pipeline
	clf.err = sentiment.ErrEmptyText
	_, err := s.Analyze(context.Background(), userID(1), "!!!")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, repo.records)
}

func TestAnalyze_ModelUnavailable(t *testing.T) {
	repo := &fakeRepo{}
	s := New(nil, repo, zaptest.NewLogger(t), 0)
	assert.False(t, s.ModelAvailable())

	_, err := s.Analyze(context.Background(), userID(1), "hello")
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Empty(t, repo.records)

	// empty text is reported before the missing model
	_, err = s.Analyze(context.Background(), userID(1), " ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestAnalyze_InferenceFailure(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(t, &fakeClassifier{err: sentiment.ErrInference}, repo)

	_, err := s.Analyze(context.Background(), userID(1), "hello")
	assert.ErrorIs(t, err, ErrInferenceFailed)
	assert.Empty(t, repo.records)
}

func TestAnalyze_PersistenceFailureIsWarning(t *testing.T) {
	repo := &fakeRepo{appendErr: errors.New("disk full")}
	s := newService(t, &fakeClassifier{res: positive}, repo)

	out, err := s.Analyze(context.Background(), userID(1), "I love life")
	require.NoError(t, err)
	assert.Equal(t, positive, out.Result)
	assert.Equal(t, MessageNotSaved, out.Warning)
	assert.Nil(t, out.Record)
	assert.Empty(t, repo.records)
}

func TestAnalyze_RealPipeline(t *testing.T) {
	p, err := sentiment.LoadPipeline("../sentiment/testdata")
	require.NoError(t, err)
	repo := &fakeRepo{}
	s := New(p, repo, zaptest.NewLogger(t), 0)
	require.True(t, s.ModelAvailable())

	out, err := s.Analyze(context.Background(), userID(3), "I hate this sad life")
	require.NoError(t, err)
	assert.Equal(t, sentiment.SentimentNegative, out.Result.Sentiment)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "Negative Mental State 😔", repo.records[0].Prediction)
}

func TestHistory(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(t, &fakeClassifier{res: positive}, repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Analyze(ctx, userID(1), "text")
		require.NoError(t, err)
	}
	_, err := s.Analyze(ctx, userID(2), "other")
	require.NoError(t, err)

	got, err := s.History(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestPrune(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(t, &fakeClassifier{}, repo)

	n, err := s.Prune(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, repo.prunedAt, "retention disabled")

	s.Retention = 30 * 24 * time.Hour
	n, err = s.Prune(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, repo.prunedAt, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), repo.prunedAt[0])

	repo.pruneErr = errors.New("locked")
	_, err = s.Prune(context.Background())
	assert.Error(t, err)
}
