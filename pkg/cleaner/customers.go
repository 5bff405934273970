// pkg/cleaner/customers.go
package cleaner

import (
	"github.com/David-Botos/retail-etl/pkg/extract"
	"github.com/David-Botos/retail-etl/pkg/model"
	"github.com/David-Botos/retail-etl/pkg/validate"
)

// CustomerColumns is the expected column set of the customers input file.
var CustomerColumns = []string{"customer_id", "first_name", "last_name", "email", "registration_date"}

// CleanCustomers cleans the raw customers table. A malformed email or a
// missing registration date flags the row but keeps it; only an unusable
// primary key drops a customer.
func (c *TableCleaner) CleanCustomers(raw *extract.RawTable) ([]model.CustomerRecord, *model.TableReport) {
	return clean(c, raw, rules[model.CustomerRecord]{
		table: "customers",
		parse: parseCustomer,
		key:   func(r model.CustomerRecord) int64 { return r.CustomerID },
	})
}

func parseCustomer(row extract.Row) parsedRow[model.CustomerRecord] {
	id, err := validate.ParseInt(row["customer_id"])
	if err != nil {
		return parsedRow[model.CustomerRecord]{drop: dropReason(model.ReasonMissingRequiredField)}
	}

	rec := model.CustomerRecord{
		CustomerID: id,
		FirstName:  fillMissing(row["first_name"], "Unknown"),
		LastName:   fillMissing(row["last_name"], "Unknown"),
		EmailValid: true,
	}
	var flags []model.Reason

	rec.Email = validate.NormalizeEmail(row["email"])
	if outcome := validate.Email(rec.Email); outcome.Kind == model.OutcomeKeptFlagged {
		rec.EmailValid = false
		flags = append(flags, outcome.Reason)
	}

	if date, ok := validate.Date(row["registration_date"]); ok {
		rec.RegistrationDate = date
		rec.HasRegistrationDate = true
	} else {
		flags = append(flags, model.ReasonInvalidRegistrationDate)
	}

	return parsedRow[model.CustomerRecord]{record: rec, flags: flags}
}

// fillMissing substitutes a placeholder for absent optional text fields
func fillMissing(value, placeholder string) string {
	if validate.Missing(value) {
		return placeholder
	}
	return value
}
