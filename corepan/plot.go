package corepan

import (
	"bytes"
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// lineColors bounds how many groups are drawn on one plot.
var lineColors = []string{"FFA000", "5C4314", "FFC042", "FFE4AB", "FFCB52"}

// Series picks the core or pan values of a curve.
type Series func(Curve) []float64

func CoreSeries(c Curve) []float64 { return c.Core }
func PanSeries(c Curve) []float64  { return c.Pan }

// Plot draws one line per group, up to len(lineColors), and writes a PNG to
// filename. It returns false without writing anything when no group has at
// least two points to draw.
func Plot(filename string, curves []Curve, pick Series) (bool, error) {
	var series []chart.Series
	for i, c := range curves {
		if i >= len(lineColors) {
			break
		}

		ys := pick(c)
		if len(ys) < 2 {
			continue
		}

		xs := make([]float64, len(ys))
		for j := range xs {
			xs[j] = float64(j + 1)
		}

		series = append(series, chart.ContinuousSeries{
			Name:    c.Group,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(lineColors[i]),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return false, nil
	}

	graph := chart.Chart{
		Width:  900,
		Height: 560,
		XAxis: chart.XAxis{
			Name: "Numbers of samples",
		},
		YAxis: chart.YAxis{
			Name: "Numbers of species",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return false, pfx.Err(fmt.Errorf("%s: %w", filename, err))
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return false, pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return false, pfx.Err(err)
	}

	if err := outFile.Close(); err != nil {
		return false, pfx.Err(err)
	}

	return true, nil
}
