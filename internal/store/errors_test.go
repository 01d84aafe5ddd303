package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapWrite(t *testing.T) {
	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_marketplaces_ident"}
		err := wrapWrite("create marketplace", fmt.Errorf("exec: %w", pgErr))
		if !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		want := "create marketplace: duplicate record (idx_marketplaces_ident)"
		if err.Error() != want {
			t.Errorf("message: got %q, want %q", err.Error(), want)
		}
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		err := wrapWrite("create shape", pgErr)
		if errors.Is(err, ErrDuplicate) {
			t.Fatal("foreign key violation must not be ErrDuplicate")
		}
		var got *pgconn.PgError
		if !errors.As(err, &got) || got.Code != "23503" {
			t.Errorf("expected wrapped PgError, got %v", err)
		}
	})

	t.Run("plain errors are wrapped", func(t *testing.T) {
		base := errors.New("conn closed")
		if err := wrapWrite("op", base); !errors.Is(err, base) {
			t.Errorf("expected wrapped base error, got %v", err)
		}
	})
}
