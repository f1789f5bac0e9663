// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/migrations"
)

// SQLStore is a Store over a single key-value table. Transient driver
// errors, as judged by its ErrorClassificator, are retried with exponential
// backoff.
type SQLStore struct {
	db                 *sql.DB
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator

	maxRetries uint64
	retryBase  time.Duration
	now        func() time.Time
}

// SQLOption configures a SQLStore.
type SQLOption func(*SQLStore)

// WithRetry sets how many times a transient failure is retried and the base
// delay of the exponential backoff. maxRetries == 0 disables retries.
func WithRetry(maxRetries uint64, base time.Duration) SQLOption {
	return func(s *SQLStore) {
		s.maxRetries = maxRetries
		s.retryBase = base
	}
}

// WithErrorClassificator overrides the dialect default classifier.
func WithErrorClassificator(c ErrorClassificator) SQLOption {
	return func(s *SQLStore) {
		s.errorClassificator = c
	}
}

// NewSQLStore wraps an already opened and migrated database. It is the
// building block of NewSQLiteStore and NewPostgresStore and is exported for
// callers that manage their own *sql.DB.
func NewSQLStore(db *sql.DB, dialect migrations.Dialect, opts ...SQLOption) *SQLStore {
	s := &SQLStore{
		db:         db,
		maxRetries: 3,
		retryBase:  50 * time.Millisecond,
		now:        time.Now,
	}

	switch dialect {
	case migrations.DialectPostgres:
		s.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		s.errorClassificator = NewPostgresErrorClassifier()
	default:
		s.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		s.errorClassificator = NewSQLiteErrorClassifier()
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements [Store].
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select(storeValueColumn).
		From(storeTable).
		Where(sq.Eq{storeKeyColumn: key}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	found := true
	err = s.withRetry(ctx, func(ctx context.Context) error {
		scanErr := s.db.QueryRowContext(ctx, query, args...).Scan(&value)
		if errors.Is(scanErr, sql.ErrNoRows) {
			found = false
			return nil
		}
		return scanErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "SQLStore.Get").
			Str("key", key).
			Msg("failed to read store value")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if !found {
		return nil, false, nil
	}

	return value, true, nil
}

// Set implements [Store] as an upsert.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if value == nil {
		value = []byte{}
	}
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert(storeTable).
		Columns(storeKeyColumn, storeValueColumn, storeUpdatedAtCol).
		Values(key, value, s.now().UTC()).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "SQLStore.Set").
			Str("key", key).
			Msg("failed to upsert store value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Remove implements [Store].
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete(storeTable).
		Where(sq.Eq{storeKeyColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "SQLStore.Remove").
			Str("key", key).
			Msg("failed to delete store value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	if s.maxRetries == 0 {
		return op(ctx)
	}

	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && s.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "SQLStore.withRetry").Msg("retrying transient database error")
			return retry.RetryableError(err)
		}
		return err
	})
}
