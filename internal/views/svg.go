package views

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	baseColor      = drawing.ColorFromHex("4682b4")
	highlightColor = drawing.ColorFromHex("fd8d3c")
)

func writeEmptySVG(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"></svg>`, width, height)
	return err
}

// RenderBarSVG draws the sugar bars of m, selected cereals in orange.
func RenderBarSVG(m BarModel, w io.Writer, width, height int) error {
	if len(m.Items) == 0 {
		return writeEmptySVG(w, width, height)
	}
	bars := make([]chart.Value, 0, len(m.Items))
	for _, it := range m.Items {
		fill := baseColor
		if it.Highlighted {
			fill = highlightColor
		}
		bars = append(bars, chart.Value{
			Label: it.Name,
			Value: it.Sugars,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
	}
	yMax := max(m.YMax, 1)
	// Leave room for the y axis, then share the rest between bars.
	slot := max((width-80)/len(bars), 3)
	ch := chart.BarChart{
		Title:      "Sugars (g), sweetest cereals",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		BarWidth:   max(slot-2, 1),
		BarSpacing: min(2, slot-1),
		YAxis:      chart.YAxis{Name: "g", Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Bars:       bars,
	}
	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// RenderParallelSVG draws each line with every axis scaled to [0, 1].
func RenderParallelSVG(m ParallelModel, w io.Writer, width, height int) error {
	if len(m.Lines) == 0 || len(m.Axes) < 2 {
		return writeEmptySVG(w, width, height)
	}
	xs := make([]float64, len(m.Axes))
	ticks := make([]chart.Tick, len(m.Axes))
	for i, a := range m.Axes {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: a.Dimension}
	}

	anyBrushed := false
	for _, l := range m.Lines {
		anyBrushed = anyBrushed || l.Brushed
	}

	series := make([]chart.Series, 0, len(m.Lines))
	var front []chart.Series
	for _, l := range m.Lines {
		ys := make([]float64, len(m.Axes))
		for i, a := range m.Axes {
			ys[i] = scaleUnit(l.Values[i], a)
		}
		style := chart.Style{StrokeColor: baseColor.WithAlpha(128), StrokeWidth: 1}
		switch {
		case l.Highlighted:
			style = chart.Style{StrokeColor: highlightColor, StrokeWidth: 2.5}
		case anyBrushed && l.Brushed:
			style = chart.Style{StrokeColor: baseColor.WithAlpha(204), StrokeWidth: 1.5}
		case anyBrushed:
			style = chart.Style{StrokeColor: baseColor.WithAlpha(26), StrokeWidth: 1}
		}
		s := chart.ContinuousSeries{Name: l.Name, XValues: xs, YValues: ys, Style: style}
		if l.Highlighted || l.Brushed {
			front = append(front, s)
			continue
		}
		series = append(series, s)
	}
	// Emphasized lines are drawn last so they sit on top.
	series = append(series, front...)

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 24, Bottom: 28}},
		XAxis:      chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(len(m.Axes) - 1)}, Ticks: ticks},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series:     series,
	}
	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render parallel coordinates: %w", err)
	}
	return nil
}

func scaleUnit(v float64, a Axis) float64 {
	if a.Max == a.Min {
		return 0.5
	}
	return (v - a.Min) / (a.Max - a.Min)
}

