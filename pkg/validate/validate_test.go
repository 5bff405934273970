// pkg/validate/validate_test.go
package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/retail-etl/pkg/model"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jo@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"  padded@example.com  ", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"two@@example.com", false},
		{"white space@example.com", false},
		{"@example.com", false},
		{"user@.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			outcome := Email(tt.email)
			if tt.valid {
				assert.Equal(t, model.OutcomeKept, outcome.Kind)
			} else {
				assert.Equal(t, model.OutcomeKeptFlagged, outcome.Kind)
				assert.Equal(t, model.ReasonInvalidEmail, outcome.Reason)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Jo.Doe@example.com", NormalizeEmail("  Jo.Doe@EXAMPLE.COM "))
	assert.Equal(t, "plain", NormalizeEmail(" plain "))
}

func TestDate(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"2024-01-10", true},
		{"2024-02-29", true}, // leap day
		{"2023-02-29", false},
		{"2024-13-45", false},
		{"2024-00-10", false},
		{"01/10/2024", false},
		{"", false},
		{"not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			parsed, ok := Date(tt.value)
			require.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.value, parsed.Format(model.DateLayout))
			} else {
				assert.True(t, parsed.IsZero())
			}
		})
	}
}

func TestCategoryCollapsesCaseVariants(t *testing.T) {
	for _, input := range []string{"Electronics", "electronics", "ELECTRONICS", "  electronics "} {
		assert.Equal(t, "Electronics", Category(input), "input %q", input)
	}
	for _, input := range []string{"office supplies", "OFFICE SUPPLIES", "office_supplies"} {
		assert.Equal(t, "Office Supplies", Category(input), "input %q", input)
	}
}

func TestCategoryIdempotent(t *testing.T) {
	once := Category("hOmE & gArDeN")
	assert.Equal(t, once, Category(once))
}

func TestCategoryMissing(t *testing.T) {
	assert.Equal(t, "Unknown", Category(""))
	assert.Equal(t, "Unknown", Category("   "))
}

func TestPrice(t *testing.T) {
	price, outcome := Price("9.99")
	require.Equal(t, model.OutcomeKept, outcome.Kind)
	assert.Equal(t, 9.99, price)

	// zero price is allowed
	_, outcome = Price("0")
	assert.Equal(t, model.OutcomeKept, outcome.Kind)

	for _, bad := range []string{"-1.50", "free", ""} {
		_, outcome := Price(bad)
		assert.Equal(t, model.OutcomeDropped, outcome.Kind, "input %q", bad)
		assert.Equal(t, model.ReasonInvalidPrice, outcome.Reason)
	}
}

func TestAmount(t *testing.T) {
	amount, outcome := Amount("19.98")
	require.Equal(t, model.OutcomeKept, outcome.Kind)
	assert.Equal(t, 19.98, amount)

	for _, bad := range []string{"0", "-5", "lots", ""} {
		_, outcome := Amount(bad)
		assert.Equal(t, model.OutcomeDropped, outcome.Kind, "input %q", bad)
		assert.Equal(t, model.ReasonInvalidAmount, outcome.Reason)
	}
}

func TestQuantity(t *testing.T) {
	qty, outcome := Quantity("2")
	require.Equal(t, model.OutcomeKept, outcome.Kind)
	assert.Equal(t, int64(2), qty)

	for _, bad := range []string{"0", "-3", "2.5", "two", ""} {
		_, outcome := Quantity(bad)
		assert.Equal(t, model.OutcomeDropped, outcome.Kind, "input %q", bad)
		assert.Equal(t, model.ReasonInvalidQuantity, outcome.Reason)
	}
}

func TestParseHelpers(t *testing.T) {
	n, err := ParseInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = ParseInt("")
	assert.Error(t, err)

	f, err := ParseFloat("3.14")
	require.NoError(t, err)
	assert.Equal(t, 3.14, f)

	assert.True(t, Missing(""))
	assert.True(t, Missing("  "))
	assert.True(t, Missing("NULL"))
	assert.False(t, Missing("0"))
}

func TestDateLayoutRoundTrip(t *testing.T) {
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	got, ok := Date("2024-01-10")
	require.True(t, ok)
	assert.True(t, got.Equal(want))
}
