// Package schema describes the fixed relational schema the agent queries.
// The descriptor is immutable, built once at startup, and passed explicitly
// into the prompt builder.
package schema

import (
	"fmt"
	"strings"
)

// Table represents one table of the descriptor.
type Table struct {
	Name        string       `json:"name"`
	Columns     []string     `json:"columns"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty"`
}

// ForeignKey represents a relationship between two tables.
type ForeignKey struct {
	Column        string `json:"column"`
	ForeignTable  string `json:"foreign_table"`
	ForeignColumn string `json:"foreign_column"`
}

// Descriptor is the ordered set of tables available to generated queries.
type Descriptor struct {
	Tables []Table `json:"tables"`
}

// Default returns the three-table commerce schema.
func Default() Descriptor {
	return Descriptor{
		Tables: []Table{
			{
				Name:    "users",
				Columns: []string{"user_id", "name", "email", "region", "signup_date"},
			},
			{
				Name:    "products",
				Columns: []string{"product_id", "product_name", "category", "price"},
			},
			{
				Name:    "orders",
				Columns: []string{"order_id", "user_id", "product_id", "quantity", "order_date"},
				ForeignKeys: []ForeignKey{
					{Column: "user_id", ForeignTable: "users", ForeignColumn: "user_id"},
					{Column: "product_id", ForeignTable: "products", ForeignColumn: "product_id"},
				},
			},
		},
	}
}

// ToText renders the descriptor as the prompt context block.
func (d Descriptor) ToText() string {
	var sb strings.Builder
	sb.WriteString("Database Schema:\n")
	for _, table := range d.Tables {
		sb.WriteString(fmt.Sprintf("%s: %s\n", table.Name, strings.Join(table.Columns, ", ")))
	}

	var relations []string
	for _, table := range d.Tables {
		for _, fk := range table.ForeignKeys {
			relations = append(relations, fmt.Sprintf("%s.%s -> %s.%s", table.Name, fk.Column, fk.ForeignTable, fk.ForeignColumn))
		}
	}
	if len(relations) > 0 {
		sb.WriteString("Relationships: " + strings.Join(relations, ", ") + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// HasTable reports whether a table with the given name exists.
func (d Descriptor) HasTable(name string) bool {
	lower := strings.ToLower(name)
	for _, table := range d.Tables {
		if strings.ToLower(table.Name) == lower {
			return true
		}
	}
	return false
}
