// Package render draws the sentiment series as a line chart and publishes
// each frame to a display surface.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/mokeyzz1/buzzline-04-moses/internal/series"
)

// ErrEmptySeries is returned when Render is called with no points.
var ErrEmptySeries = errors.New("render: empty series")

const (
	chartTitle  = "Real-Time Sentiment Trend"
	xAxisLabel  = "Time"
	yAxisLabel  = "Sentiment Score"
	chartWidth  = 1024
	chartHeight = 512

	// maxTickLabels caps the number of timestamp labels on the x axis so
	// long-running series stay legible.
	maxTickLabels = 12
)

// Renderer redraws the full series from scratch on every call, so each frame
// is an exact reflection of the store at that moment. It runs on the
// consuming goroutine; a render blocks consumption until the surface has the
// frame plus a short paint pause.
type Renderer struct {
	surface Surface
	pause   time.Duration
}

// NewRenderer creates a renderer targeting the given surface. pause is the
// bounded delay after each flush that lets the surface paint before control
// returns to the loop.
func NewRenderer(surface Surface, pause time.Duration) *Renderer {
	return &Renderer{
		surface: surface,
		pause:   pause,
	}
}

// Render draws the series and flushes the frame to the surface
func (r *Renderer) Render(points []series.Point) error {
	frame, err := Frame(points)
	if err != nil {
		return err
	}
	if err := r.surface.Present(frame); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	if r.pause > 0 {
		time.Sleep(r.pause)
	}
	return nil
}

// Finish takes the surface out of live mode so the last frame remains as the
// final static chart. Called once after the consumer loop terminates.
func (r *Renderer) Finish() error {
	return r.surface.Finish()
}

// Frame renders the series to a PNG image. Timestamps are opaque strings, so
// points are plotted at index positions with timestamp tick labels.
func Frame(points []series.Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minY, maxY := points[0].Sentiment, points[0].Sentiment
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Sentiment
		if p.Sentiment < minY {
			minY = p.Sentiment
		}
		if p.Sentiment > maxY {
			maxY = p.Sentiment
		}
	}

	ticks := tickLabels(points)

	// go-chart rejects a zero-width x range; pad a single point out to two
	// x values the same way it is done for single-sample charts.
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}

	ch := chart.Chart{
		Title:  chartTitle,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 48},
		},
		XAxis: chart.XAxis{
			Name:  xAxisLabel,
			Ticks: ticks,
			TickStyle: chart.Style{
				TextRotationDegrees: 45,
			},
		},
		YAxis: chart.YAxis{
			Name: yAxisLabel,
			// Margin keeps flat series away from a zero-height y range.
			Range: &chart.ContinuousRange{Min: minY - 0.1, Max: maxY + 0.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "sentiment",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
					DotColor:    chart.ColorGreen,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func tickLabels(points []series.Point) []chart.Tick {
	step := 1
	if len(points) > maxTickLabels {
		step = (len(points) + maxTickLabels - 1) / maxTickLabels
	}

	ticks := make([]chart.Tick, 0, maxTickLabels+1)
	for i := 0; i < len(points); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: points[i].Timestamp})
	}
	// The last point always gets a label so the axis covers the full range.
	last := len(points) - 1
	if len(ticks) == 0 || ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: points[last].Timestamp})
	}
	return ticks
}
