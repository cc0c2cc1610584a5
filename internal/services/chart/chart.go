// Package chart renders dashboard holdings data as PNG images.
package chart

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"treasuryd/internal/models"
)

// maxBars caps how many holders appear on the chart.
const maxBars = 10

// RenderTopHoldersChart renders a PNG bar chart of the largest Litecoin
// holders across companies and ETFs, ranked by LTC held. Returns raw
// PNG bytes.
func RenderTopHoldersChart(companies, etfs []models.Holding) ([]byte, error) {
	holders := make([]models.Holding, 0, len(companies)+len(etfs))
	holders = append(holders, companies...)
	holders = append(holders, etfs...)
	if len(holders) == 0 {
		return nil, fmt.Errorf("no holdings to chart")
	}

	sort.SliceStable(holders, func(i, j int) bool {
		return holders[i].LTCHoldings > holders[j].LTCHoldings
	})
	if len(holders) > maxBars {
		holders = holders[:maxBars]
	}

	bars := make([]chart.Value, len(holders))
	for i, h := range holders {
		label := h.Ticker
		if label == "" {
			label = h.Name
		}
		bars[i] = chart.Value{
			Label: label,
			Value: h.LTCHoldings,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("345d9d"), // litecoin blue
				StrokeColor: drawing.ColorFromHex("345d9d"),
			},
		}
	}

	graph := chart.BarChart{
		Title:  "Top Litecoin Treasury Holders",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 60,
		XAxis:    chart.Style{},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fk LTC", f/1000)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
