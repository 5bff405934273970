// pkg/cleaner/transactions.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/extract"
	"github.com/David-Botos/retail-etl/pkg/model"
	"github.com/David-Botos/retail-etl/pkg/validate"
)

// TransactionColumns is the expected column set of the transactions input file.
var TransactionColumns = []string{"transaction_id", "customer_id", "product_id", "transaction_date", "quantity", "amount"}

// CleanTransactions cleans the raw transactions table and then enforces
// referential integrity against the already-cleaned customers and products:
// a transaction whose customer or product does not exist is an orphan and is
// dropped. Must run after CleanCustomers and CleanProducts.
func (c *TableCleaner) CleanTransactions(
	raw *extract.RawTable,
	customers []model.CustomerRecord,
	products []model.ProductRecord,
) ([]model.TransactionRecord, *model.TableReport) {
	cleaned, report := clean(c, raw, rules[model.TransactionRecord]{
		table: "transactions",
		parse: parseTransaction,
		key:   func(r model.TransactionRecord) int64 { return r.TransactionID },
	})

	customerIDs := make(map[int64]struct{}, len(customers))
	for _, cust := range customers {
		customerIDs[cust.CustomerID] = struct{}{}
	}
	productIDs := make(map[int64]struct{}, len(products))
	for _, prod := range products {
		productIDs[prod.ProductID] = struct{}{}
	}

	resolved := cleaned[:0]
	orphans := 0
	for _, txn := range cleaned {
		_, hasCustomer := customerIDs[txn.CustomerID]
		_, hasProduct := productIDs[txn.ProductID]
		if !hasCustomer || !hasProduct {
			report.Drop(model.ReasonOrphanReference)
			orphans++
			continue
		}
		resolved = append(resolved, txn)
	}
	report.RowsOut = len(resolved)

	if orphans > 0 {
		c.logger.Warn("Dropped orphaned transactions", zap.Int("count", orphans))
	}

	return resolved, report
}

func parseTransaction(row extract.Row) parsedRow[model.TransactionRecord] {
	id, err := validate.ParseInt(row["transaction_id"])
	if err != nil {
		return parsedRow[model.TransactionRecord]{drop: dropReason(model.ReasonMissingRequiredField)}
	}
	customerID, err := validate.ParseInt(row["customer_id"])
	if err != nil {
		return parsedRow[model.TransactionRecord]{drop: dropReason(model.ReasonMissingRequiredField)}
	}
	productID, err := validate.ParseInt(row["product_id"])
	if err != nil {
		return parsedRow[model.TransactionRecord]{drop: dropReason(model.ReasonMissingRequiredField)}
	}

	date, ok := validate.Date(row["transaction_date"])
	if !ok {
		return parsedRow[model.TransactionRecord]{drop: dropReason(model.ReasonInvalidDate)}
	}

	qty, outcome := validate.Quantity(row["quantity"])
	if outcome.Kind == model.OutcomeDropped {
		return parsedRow[model.TransactionRecord]{drop: dropReason(outcome.Reason)}
	}

	amount, outcome := validate.Amount(row["amount"])
	if outcome.Kind == model.OutcomeDropped {
		return parsedRow[model.TransactionRecord]{drop: dropReason(outcome.Reason)}
	}

	return parsedRow[model.TransactionRecord]{record: model.TransactionRecord{
		TransactionID:   id,
		CustomerID:      customerID,
		ProductID:       productID,
		TransactionDate: date,
		Quantity:        qty,
		Amount:          amount,
	}}
}
