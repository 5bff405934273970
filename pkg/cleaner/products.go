// pkg/cleaner/products.go
package cleaner

import (
	"github.com/David-Botos/retail-etl/pkg/extract"
	"github.com/David-Botos/retail-etl/pkg/model"
	"github.com/David-Botos/retail-etl/pkg/validate"
)

// ProductColumns is the expected column set of the products input file.
var ProductColumns = []string{"product_id", "product_name", "category", "price"}

// CleanProducts cleans the raw products table. Categories collapse to one
// canonical capitalization; a negative or unparseable price drops the row.
func (c *TableCleaner) CleanProducts(raw *extract.RawTable) ([]model.ProductRecord, *model.TableReport) {
	return clean(c, raw, rules[model.ProductRecord]{
		table: "products",
		parse: parseProduct,
		key:   func(r model.ProductRecord) int64 { return r.ProductID },
	})
}

func parseProduct(row extract.Row) parsedRow[model.ProductRecord] {
	id, err := validate.ParseInt(row["product_id"])
	if err != nil {
		return parsedRow[model.ProductRecord]{drop: dropReason(model.ReasonMissingRequiredField)}
	}

	price, outcome := validate.Price(row["price"])
	if outcome.Kind == model.OutcomeDropped {
		return parsedRow[model.ProductRecord]{drop: dropReason(outcome.Reason)}
	}

	return parsedRow[model.ProductRecord]{record: model.ProductRecord{
		ProductID:   id,
		ProductName: fillMissing(row["product_name"], "Unknown Product"),
		Category:    validate.Category(row["category"]),
		Price:       price,
	}}
}
