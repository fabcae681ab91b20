package model

// Chart types understood by the renderers.
const (
	ChartBar  = "bar"
	ChartLine = "line"
)

// Row is one label/value line of a result's supporting table.
// Value is display-ready; raw numbers live in the metrics result types.
type Row struct {
	Label string
	Value string
}

// ChartPoint is a single (x, y) pair of a chart series.
type ChartPoint struct {
	Label string
	Value float64
}

// ChartSpec describes a render-ready chart. The CLI, TUI, and report
// exporter all consume the same series.
type ChartSpec struct {
	Type   string // ChartBar or ChartLine
	Title  string
	YLabel string
	Points []ChartPoint
}

// MetricResult is the structured answer to a classified question:
// a headline sentence, a supporting table, and an optional chart.
type MetricResult struct {
	Headline string
	Table    []Row
	Chart    *ChartSpec
}
