package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/duepay/payables/internal/domain"
)

func testRetrier() *Retrier {
	r := NewRetrier(zerolog.Nop())
	r.maxRetries = 2
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 50 * time.Millisecond
	return r
}

func TestRetrierRetriesOnRetryableError(t *testing.T) {
	r := testRetrier()

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := testRetrier()

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return domain.ErrPaymentAlreadyRecorded
	})

	if !errors.Is(err, domain.ErrPaymentAlreadyRecorded) {
		t.Fatalf("expected the conflict to surface unchanged, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterMaxRetries(t *testing.T) {
	r := testRetrier()

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != r.maxRetries+1 {
		t.Fatalf("expected %d attempts, got %d", r.maxRetries+1, attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}) {
		t.Fatal("expected deadlock error to be retryable")
	}
	if !isRetryableError(&pgconn.PgError{Code: pgErrSerializationFailure}) {
		t.Fatal("expected serialization failure to be retryable")
	}
	if isRetryableError(&pgconn.PgError{Code: pgErrUniqueViolation}) {
		t.Fatal("unique violations must not be retried")
	}
	if isRetryableError(errors.New("other")) {
		t.Fatal("expected generic error to be permanent")
	}
}
