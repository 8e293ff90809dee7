package domain

import "sort"

// Invoice is a single row of the sales dataset.
type Invoice struct {
	ID          string  `json:"id,omitempty" bson:"_id,omitempty"`
	Item        string  `json:"item" bson:"item"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	SalesPrice  float64 `json:"sales_price" bson:"sales_price"`
	Amount      float64 `json:"amount" bson:"amount"`
	InvoiceType string  `json:"invoice_type" bson:"invoice_type"`
}

// DashboardStats holds the aggregate figures shown on the dashboard.
// Missing source values aggregate to zero, never null.
type DashboardStats struct {
	TotalSales          float64          `json:"total_sales"`
	AverageQuantity     float64          `json:"average_quantity"`
	MedianQuantity      float64          `json:"median_quantity"`
	InvoiceCount        int64            `json:"invoice_count"`
	CategoryFrequencies map[string]int64 `json:"category_frequencies"`
}

// Chart slot names. Each slot carries optional base64-encoded PNG bytes;
// an absent slot is an expected state, not an error.
const (
	ChartItemSales          = "item_sales"
	ChartAmountDistribution = "amount_distribution"
	ChartPie                = "pie_chart"
)

// ChartSet maps each chart slot to its rendered payload. Nil means the
// chart could not be produced for this dataset.
type ChartSet struct {
	ItemSales          *string `json:"item_sales"`
	AmountDistribution *string `json:"amount_distribution"`
	PieChart           *string `json:"pie_chart"`
}

// DashboardData is the full payload a dashboard view is built from.
type DashboardData struct {
	Stats   DashboardStats `json:"stats"`
	Charts  ChartSet       `json:"charts"`
	Message string         `json:"message,omitempty"`
	Err     string         `json:"error,omitempty"`
}

// CategoryCount pairs a category with its frequency, used for ranked output.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ItemTotal pairs an item with its summed sales amount.
type ItemTotal struct {
	Item  string  `json:"item" bson:"_id"`
	Total float64 `json:"total" bson:"total"`
}

// TopCategories ranks category frequencies descending, capped at limit.
// Ties break alphabetically so the ordering is deterministic.
func TopCategories(freq map[string]int64, limit int) []CategoryCount {
	ranked := make([]CategoryCount, 0, len(freq))
	for category, count := range freq {
		ranked = append(ranked, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
