// pkg/validate/validate.go
package validate

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/David-Botos/retail-etl/pkg/model"
)

// emailPattern accepts local@domain.tld: exactly one "@", at least one "."
// in the domain part, no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var titleCaser = cases.Title(language.English)

// Email validates an email address. A malformed email flags the row rather
// than dropping it, so transactions referencing the customer stay resolvable.
func Email(email string) model.Outcome {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return model.KeptFlagged(model.ReasonInvalidEmail)
	}
	return model.Kept()
}

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
// The local part is preserved as-is.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Date parses a calendar date in YYYY-MM-DD form. time.Parse rejects
// out-of-range components, so 2024-13-45 and 2023-02-29 fail while the
// leap day 2024-02-29 parses.
func Date(value string) (time.Time, bool) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Category returns the canonical form of a category string: trimmed,
// underscores treated as word separators, title-cased. Case variants of the
// same category collapse to one value and the transform is idempotent.
func Category(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Unknown"
	}
	category = strings.ReplaceAll(category, "_", " ")
	category = strings.Join(strings.Fields(category), " ")
	return titleCaser.String(strings.ToLower(category))
}

// Price validates a product price: parseable and non-negative.
func Price(value string) (float64, model.Outcome) {
	price, err := ParseFloat(value)
	if err != nil || price < 0 {
		return 0, model.Dropped(model.ReasonInvalidPrice)
	}
	return price, model.Kept()
}

// Amount validates a transaction amount: parseable and strictly positive.
func Amount(value string) (float64, model.Outcome) {
	amount, err := ParseFloat(value)
	if err != nil || amount <= 0 {
		return 0, model.Dropped(model.ReasonInvalidAmount)
	}
	return amount, model.Kept()
}

// Quantity validates a transaction quantity: a positive integer.
func Quantity(value string) (int64, model.Outcome) {
	qty, err := ParseInt(value)
	if err != nil || qty <= 0 {
		return 0, model.Dropped(model.ReasonInvalidQuantity)
	}
	return qty, model.Kept()
}
