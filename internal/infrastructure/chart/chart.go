// Package chart renders dashboard visuals as base64-encoded PNGs.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/salesai/dashboard-system/internal/api/metrics"
	"github.com/salesai/dashboard-system/internal/core/domain"
)

const (
	histogramBins = 20
	// Amounts above this quantile are clipped so outliers do not flatten
	// the distribution.
	clipQuantile = 0.95
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// ItemSalesBar renders total sales per item, ranked as given.
func (r *Renderer) ItemSalesBar(items []domain.ItemTotal) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("item sales chart: no data")
	}
	defer observeRender(domain.ChartItemSales, time.Now())

	bars := make([]chart.Value, len(items))
	for i, item := range items {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("#%d %s", i+1, item.Item),
			Value: item.Total,
		}
	}

	graph := chart.BarChart{
		Title:    "Top Items by Total Amount",
		Width:    900,
		Height:   500,
		BarWidth: 60,
		Bars:     bars,
	}
	return encodePNG(&graph)
}

// AmountHistogram renders the distribution of invoice amounts, clipped at
// the 95th percentile.
func (r *Renderer) AmountHistogram(amounts []float64) (string, error) {
	if len(amounts) == 0 {
		return "", fmt.Errorf("amount histogram: no data")
	}
	defer observeRender(domain.ChartAmountDistribution, time.Now())

	sorted := append([]float64(nil), amounts...)
	sort.Float64s(sorted)

	upper := quantile(sorted, clipQuantile)
	lower := sorted[0]
	if upper <= lower {
		upper = lower + 1
	}

	width := (upper - lower) / histogramBins
	counts := make([]float64, histogramBins)
	for _, v := range sorted {
		if v > upper {
			v = upper
		}
		bin := int((v - lower) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	bars := make([]chart.Value, histogramBins)
	for i, count := range counts {
		label := ""
		if i%4 == 0 {
			label = fmt.Sprintf("%.0f", lower+float64(i)*width)
		}
		bars[i] = chart.Value{Label: label, Value: count}
	}

	graph := chart.BarChart{
		Title:    "Distribution of Invoice Amounts",
		Width:    900,
		Height:   450,
		BarWidth: 30,
		Bars:     bars,
	}
	return encodePNG(&graph)
}

// CategoryPie renders category share, in the ranked order supplied.
func (r *Renderer) CategoryPie(categories []domain.CategoryCount) (string, error) {
	if len(categories) == 0 {
		return "", fmt.Errorf("category pie: no data")
	}
	defer observeRender(domain.ChartPie, time.Now())

	values := make([]chart.Value, len(categories))
	var total float64
	for i, c := range categories {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%d)", c.Category, c.Count),
			Value: float64(c.Count),
		}
		total += float64(c.Count)
	}
	if total <= 0 {
		return "", fmt.Errorf("category pie: zero total")
	}

	graph := chart.PieChart{
		Title:  "Invoice Type Distribution",
		Width:  700,
		Height: 700,
		Values: values,
	}
	return encodePNG(&graph)
}

func encodePNG(graph interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}) (string, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func observeRender(name string, start time.Time) {
	metrics.ChartRenderDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
