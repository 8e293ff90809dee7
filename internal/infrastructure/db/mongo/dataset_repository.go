package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

const collectionDataset = "dataset"

type DatasetRepository struct {
	coll *mongo.Collection
}

func NewDatasetRepository(db *mongo.Database) *DatasetRepository {
	return &DatasetRepository{coll: db.Collection(collectionDataset)}
}

func (r *DatasetRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *DatasetRepository) InsertBatch(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(invoices))
	for i := range invoices {
		docs[i] = invoices[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert dataset batch: %w", err)
	}
	return nil
}

// statsFacet is the decode target for the single $facet stats pipeline.
type statsFacet struct {
	Totals []struct {
		TotalSales      float64 `bson:"total_sales"`
		AverageQuantity float64 `bson:"average_quantity"`
		InvoiceCount    int64   `bson:"invoice_count"`
	} `bson:"totals"`
	Quantities []struct {
		Values []float64 `bson:"values"`
	} `bson:"quantities"`
	Categories []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	} `bson:"categories"`
}

// Stats runs one faceted aggregation covering totals, the sorted quantity
// list (for the median), and category frequencies.
func (r *DatasetRepository) Stats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"totals": bson.A{
				bson.M{"$group": bson.M{
					"_id":              nil,
					"total_sales":      bson.M{"$sum": "$amount"},
					"average_quantity": bson.M{"$avg": "$quantity"},
					"invoice_count":    bson.M{"$sum": 1},
				}},
			},
			"quantities": bson.A{
				bson.M{"$sort": bson.M{"quantity": 1}},
				bson.M{"$group": bson.M{
					"_id":    nil,
					"values": bson.M{"$push": "$quantity"},
				}},
			},
			"categories": bson.A{
				bson.M{"$group": bson.M{
					"_id":   "$invoice_type",
					"count": bson.M{"$sum": 1},
				}},
				bson.M{"$sort": bson.M{"count": -1}},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []statsFacet
	if err := cursor.All(ctx, &facets); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("decode stats: %w", err)
	}

	stats := domain.DashboardStats{CategoryFrequencies: map[string]int64{}}
	if len(facets) == 0 {
		return stats, nil
	}
	facet := facets[0]

	if len(facet.Totals) > 0 {
		stats.TotalSales = facet.Totals[0].TotalSales
		stats.AverageQuantity = facet.Totals[0].AverageQuantity
		stats.InvoiceCount = facet.Totals[0].InvoiceCount
	}
	if len(facet.Quantities) > 0 {
		stats.MedianQuantity = medianOfSorted(facet.Quantities[0].Values)
	}
	for _, c := range facet.Categories {
		if c.Category != "" {
			stats.CategoryFrequencies[c.Category] = c.Count
		}
	}
	return stats, nil
}

func (r *DatasetRepository) TopItemTotals(ctx context.Context, limit int) ([]domain.ItemTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$item",
			"total": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.ItemTotal
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode top items: %w", err)
	}
	return items, nil
}

func (r *DatasetRepository) Amounts(ctx context.Context) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"amount": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("find amounts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Amount float64 `bson:"amount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode amounts: %w", err)
	}

	amounts := make([]float64, len(rows))
	for i, row := range rows {
		amounts[i] = row.Amount
	}
	return amounts, nil
}

func (r *DatasetRepository) All(ctx context.Context) ([]domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find dataset: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []domain.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return invoices, nil
}

func medianOfSorted(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if !sort.Float64sAreSorted(sorted) {
		sort.Float64s(sorted)
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
