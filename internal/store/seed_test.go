package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestSeedStatementsCoverAllTables(t *testing.T) {
	script := strings.Join(SeedStatements(), "\n")
	for _, fragment := range []string{
		"CREATE TABLE users",
		"CREATE TABLE products",
		"CREATE TABLE orders",
		"INSERT INTO users",
		"INSERT INTO products",
		"INSERT INTO orders",
		"REFERENCES users(user_id)",
		"REFERENCES products(product_id)",
	} {
		if !strings.Contains(script, fragment) {
			t.Fatalf("seed script missing %q", fragment)
		}
	}
}

func TestProvisionExecutesScriptInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, statement := range SeedStatements() {
		mock.ExpectExec(regexp.QuoteMeta(statement)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Provision(context.Background(), db); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestProvisionStopsOnFirstFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS orders")).
		WillReturnError(errors.New("permission denied"))

	err = Provision(context.Background(), db)
	if err == nil {
		t.Fatal("expected provision error")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("error = %v", err)
	}
}
