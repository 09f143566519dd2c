package storage

import (
	"context"
	"fmt"
	"time"

	"MentalHealthSentiment_WebProject/internal/models"
	"MentalHealthSentiment_WebProject/internal/sentiment"
)

// MaxHistoryLimit caps how many records a history query returns.
const MaxHistoryLimit = 20

// ClampHistoryLimit maps a requested limit into [1, MaxHistoryLimit]; 0 or less means the maximum.
func ClampHistoryLimit(limit int) int {
	if limit <= 0 || limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// AppendAnalysis stores one analysis inside a transaction and fills in its ID.
// CreatedAt is set to now when zero. A missing user yields ErrUserNotFound.
func (s *Store) AppendAnalysis(ctx context.Context, a *models.Analysis) (err error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.timestamp()
	} else {
		a.CreatedAt = a.CreatedAt.UTC().Truncate(time.Microsecond)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Sugar().Warnf("AppendAnalysis(): rollback failed: %v", rbErr)
			}
		}
	}()

	id, err := s.insertReturningID(ctx, tx,
		"INSERT INTO analyses (user_id, text, prediction, sentiment, created_at) VALUES (?, ?, ?, ?, ?)",
		a.UserID, a.Text, a.Prediction, string(a.Sentiment), a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("storage: insert analysis: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit analysis: %w", err)
	}
	a.ID = id
	return nil
}

// LatestAnalyses returns up to limit analyses of the user, newest first.
func (s *Store) LatestAnalyses(ctx context.Context, userID int64, limit int) ([]models.Analysis, error) {
	query := s.target.Dialect.rebind(`
		SELECT id, user_id, text, prediction, sentiment, created_at
		FROM analyses
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, userID, ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("storage: latest analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]models.Analysis, 0, ClampHistoryLimit(limit))
	for rows.Next() {
		var (
			a       models.Analysis
			tag     string
			created dbTime
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Text, &a.Prediction, &tag, &created); err != nil {
			return nil, fmt.Errorf("storage: scan analysis: %w", err)
		}
		a.Sentiment = sentiment.Sentiment(tag)
		a.CreatedAt = created.Time
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: latest analyses: %w", err)
	}
	return analyses, nil
}

// CountAnalyses returns how many analyses the user has stored.
func (s *Store) CountAnalyses(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.target.Dialect.rebind("SELECT COUNT(*) FROM analyses WHERE user_id = ?"), userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: count analyses: %w", err)
	}
	return n, nil
}

// PruneAnalyses deletes analyses created before the cutoff and reports how many were removed.
func (s *Store) PruneAnalyses(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		s.target.Dialect.rebind("DELETE FROM analyses WHERE created_at < ?"),
		before.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: prune analyses: %w", err)
	}
	return res.RowsAffected()
}
