package chart

import (
	"encoding/base64"
	"testing"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

func TestItemSalesBar(t *testing.T) {
	r := NewRenderer()

	png, err := r.ItemSalesBar([]domain.ItemTotal{
		{Item: "Widget", Total: 600},
		{Item: "Gadget", Total: 250},
	})
	if err != nil {
		t.Fatalf("ItemSalesBar: %v", err)
	}
	if _, err := base64.StdEncoding.DecodeString(png); err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}

	if _, err := r.ItemSalesBar(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestAmountHistogram(t *testing.T) {
	r := NewRenderer()

	amounts := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		amounts = append(amounts, float64(i))
	}
	// One extreme outlier must not flatten the distribution.
	amounts = append(amounts, 1e6)

	png, err := r.AmountHistogram(amounts)
	if err != nil {
		t.Fatalf("AmountHistogram: %v", err)
	}
	if png == "" {
		t.Fatal("empty payload")
	}

	if _, err := r.AmountHistogram(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestCategoryPie(t *testing.T) {
	r := NewRenderer()

	png, err := r.CategoryPie([]domain.CategoryCount{
		{Category: "Retail", Count: 30},
		{Category: "Online", Count: 10},
	})
	if err != nil {
		t.Fatalf("CategoryPie: %v", err)
	}
	if png == "" {
		t.Fatal("empty payload")
	}

	if _, err := r.CategoryPie(nil); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := r.CategoryPie([]domain.CategoryCount{{Category: "Retail", Count: 0}}); err == nil {
		t.Error("expected error for zero total")
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := quantile(sorted, 0.95); got != 10 {
		t.Errorf("p95 = %v, want 10", got)
	}
	if got := quantile(sorted, 0.5); got != 5 {
		t.Errorf("p50 = %v, want 5", got)
	}
	if got := quantile(nil, 0.5); got != 0 {
		t.Errorf("empty = %v, want 0", got)
	}
}
