// Package dataset bundles the sample sales data used to seed an empty
// deployment.
package dataset

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

//go:embed sample.csv
var sampleCSV string

// Sample reads invoices from the embedded CSV.
type Sample struct{}

func NewSample() *Sample {
	return &Sample{}
}

// Invoices parses the bundled CSV. Rows missing quantity or sales price are
// skipped; a missing amount is derived as quantity * sales_price.
func (s *Sample) Invoices() ([]domain.Invoice, error) {
	reader := csv.NewReader(strings.NewReader(sampleCSV))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sample csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sample csv has no data rows")
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"item", "quantity", "sales_price"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("sample csv missing column %q", required)
		}
	}

	invoices := make([]domain.Invoice, 0, len(rows)-1)
	for _, row := range rows[1:] {
		quantity, qErr := strconv.ParseFloat(row[col["quantity"]], 64)
		price, pErr := strconv.ParseFloat(row[col["sales_price"]], 64)
		if qErr != nil || pErr != nil {
			continue
		}

		inv := domain.Invoice{
			Item:       row[col["item"]],
			Quantity:   quantity,
			SalesPrice: price,
			Amount:     quantity * price,
		}
		if i, ok := col["amount"]; ok {
			if amount, err := strconv.ParseFloat(row[i], 64); err == nil {
				inv.Amount = amount
			}
		}
		if i, ok := col["invoice_type"]; ok {
			inv.InvoiceType = row[i]
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
