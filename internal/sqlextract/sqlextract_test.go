package sqlextract

import (
	"errors"
	"testing"
)

func TestExtractFencedStatementWithProse(t *testing.T) {
	raw := "Here is the query:\n```sql\nSELECT name FROM users;\n```\nLet me know if you need more."
	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "SELECT name FROM users;" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractBareFence(t *testing.T) {
	got, err := Extract("```\nSELECT 1\n```")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "SELECT 1;" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractFirstSelectWithoutFences(t *testing.T) {
	raw := "Sure! The SQL you want is SELECT * FROM products WHERE category = 'Electronics'; hope that helps"
	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "SELECT * FROM products WHERE category = 'Electronics';" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractKeepsFirstOfMultipleStatements(t *testing.T) {
	raw := "SELECT name FROM users; SELECT email FROM users;"
	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "SELECT name FROM users;" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractAppendsMissingSemicolon(t *testing.T) {
	got, err := Extract("SELECT count(*) FROM orders")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "SELECT count(*) FROM orders;" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractMalformedSelectStillExtracts(t *testing.T) {
	// Malformed SQL passes extraction; the validator rejects it.
	got, err := Extract("SELECT;")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "SELECT;" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractNoStatement(t *testing.T) {
	for _, raw := range []string{
		"",
		"   \n\t",
		"I cannot answer that question.",
	} {
		if _, err := Extract(raw); !errors.Is(err, ErrNoStatement) {
			t.Fatalf("Extract(%q) error = %v, want ErrNoStatement", raw, err)
		}
	}
}

func TestExtractMutatingStatement(t *testing.T) {
	// Mutating statements are still extracted; blocking them is the
	// validator's job, and it names the offending keyword.
	got, err := Extract("DELETE FROM users;")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "DELETE FROM users;" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractSelectIsWordBounded(t *testing.T) {
	// "DESELECTED" must not be mistaken for a SELECT token.
	if _, err := Extract("the rows were DESELECTED from view"); !errors.Is(err, ErrNoStatement) {
		t.Fatalf("error = %v, want ErrNoStatement", err)
	}
}
