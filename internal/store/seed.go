package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedStatements returns the provisioning script for the demo commerce
// database: drop, create, and seed the three tables in dependency order.
func SeedStatements() []string {
	return []string{
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS products`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE users (
	user_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE,
	region TEXT,
	signup_date DATE
)`,
		`CREATE TABLE products (
	product_id INTEGER PRIMARY KEY,
	product_name TEXT NOT NULL,
	category TEXT,
	price DECIMAL(10, 2)
)`,
		`CREATE TABLE orders (
	order_id INTEGER PRIMARY KEY,
	user_id INTEGER REFERENCES users(user_id),
	product_id INTEGER REFERENCES products(product_id),
	quantity INTEGER,
	order_date DATE
)`,
		`INSERT INTO users VALUES
	(1, 'Alice Johnson', 'alice@example.com', 'North', '2023-01-15'),
	(2, 'Bob Smith', 'bob@example.com', 'South', '2023-02-20'),
	(3, 'Charlie Brown', 'charlie@example.com', 'North', '2023-03-10')`,
		`INSERT INTO products VALUES
	(101, 'Laptop', 'Electronics', 1200.00),
	(102, 'Mouse', 'Electronics', 25.00),
	(103, 'Coffee Maker', 'Home', 80.00),
	(104, 'Desk Chair', 'Furniture', 150.00)`,
		`INSERT INTO orders VALUES
	(1001, 1, 101, 1, '2023-04-01'),
	(1002, 1, 102, 2, '2023-04-01'),
	(1003, 2, 103, 1, '2023-04-05'),
	(1004, 3, 104, 1, '2023-04-06'),
	(1005, 1, 103, 1, '2023-05-10')`,
	}
}

// Provision applies the seed script. It is destructive and meant for the
// standalone seed binary, never for the agent itself.
func Provision(ctx context.Context, db *sql.DB) error {
	for _, statement := range SeedStatements() {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("provision statement %q: %w", firstLine(statement), err)
		}
	}
	return nil
}

func firstLine(statement string) string {
	for i, r := range statement {
		if r == '\n' {
			return statement[:i]
		}
	}
	return statement
}
