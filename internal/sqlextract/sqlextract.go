// Package sqlextract isolates a single candidate SQL statement from free-form
// model output. The result is untrusted text until it clears validation.
package sqlextract

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoStatement is returned when no SELECT statement can be recognized. Its
// text is fed back to the model on the next attempt.
var ErrNoStatement = errors.New("empty or unparseable output: no SELECT statement found")

var (
	fenceRe  = regexp.MustCompile("(?is)```(?:sql)?\\s*(.*?)```")
	selectRe = regexp.MustCompile(`(?is)\bSELECT\b.*`)
	// Statements opening with a mutating verb are extracted too, so the
	// validator can name the forbidden keyword instead of the loop reporting
	// an unparseable output.
	verbRe = regexp.MustCompile(`(?is)\b(?:SELECT|WITH|INSERT|UPDATE|DELETE|DROP|ALTER|TRUNCATE|CREATE)\b.*`)
)

// Extract returns the first complete SQL statement in raw, stripped of code
// fences, surrounding prose, and trailing commentary. A trailing semicolon is
// guaranteed on success.
func Extract(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrNoStatement
	}

	if match := fenceRe.FindStringSubmatch(text); match != nil {
		text = strings.TrimSpace(match[1])
	}

	statement := selectRe.FindString(text)
	if statement == "" {
		statement = verbRe.FindString(text)
	}
	if statement == "" {
		return "", ErrNoStatement
	}

	// Multiple statements: keep only the first complete one.
	if idx := strings.Index(statement, ";"); idx >= 0 {
		statement = statement[:idx+1]
	}

	statement = strings.TrimSpace(statement)
	if !strings.HasSuffix(statement, ";") {
		statement += ";"
	}
	return statement, nil
}
