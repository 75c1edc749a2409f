package schema

import (
	"strings"
	"testing"
)

func TestDefaultDescriptorTables(t *testing.T) {
	d := Default()
	if len(d.Tables) != 3 {
		t.Fatalf("table count = %d, want 3", len(d.Tables))
	}
	for _, name := range []string{"users", "products", "orders"} {
		if !d.HasTable(name) {
			t.Fatalf("missing table %q", name)
		}
	}
	if d.HasTable("invoices") {
		t.Fatal("unexpected table invoices")
	}
}

func TestToTextContainsColumnsAndRelationships(t *testing.T) {
	text := Default().ToText()
	if !strings.HasPrefix(text, "Database Schema:") {
		t.Fatalf("unexpected prefix: %q", text)
	}
	for _, fragment := range []string{
		"users: user_id, name, email, region, signup_date",
		"products: product_id, product_name, category, price",
		"orders: order_id, user_id, product_id, quantity, order_date",
		"orders.user_id -> users.user_id",
		"orders.product_id -> products.product_id",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("ToText() missing %q in:\n%s", fragment, text)
		}
	}
}
