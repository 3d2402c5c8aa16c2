package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is not a violation")
	}

	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "idx_products_sku" (SQLSTATE 23505)`)
	if !IsUniqueViolation(pgErr, "") {
		t.Fatal("expected postgres duplicate key to match")
	}
	if !IsUniqueViolation(pgErr, "idx_products_sku") {
		t.Fatal("expected constraint name to match")
	}
	if IsUniqueViolation(errors.New("connection refused"), "idx_products_sku") {
		t.Fatal("unrelated error must not match")
	}

	sqliteErr := errors.New("UNIQUE constraint failed: products.sku")
	if !IsUniqueViolation(sqliteErr, "") {
		t.Fatal("expected sqlite duplicate to match")
	}
}
