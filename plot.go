package curvefit

import (
	"math"

	"github.com/aouyang1/go-curvefit/dataset"
	"github.com/aouyang1/go-curvefit/util"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineFit generates an echart with the training samples as a scatter overlaid by the fitted curve.
// curveX and curveY must have the same length. Non-finite curve values are dropped.
func LineFit(title, subtitle string, samples *dataset.Dataset, curveX, curveY []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)

	lineData := make([]opts.LineData, 0, len(curveX))
	for i := 0; i < len(curveX) && i < len(curveY); i++ {
		if math.IsNaN(curveY[i]) || math.IsInf(curveY[i], 0) {
			continue
		}
		lineData = append(lineData, opts.LineData{Value: []float64{curveX[i], curveY[i]}})
	}
	line.AddSeries("Fit", lineData)

	if samples != nil {
		scatter := charts.NewScatter()
		scatterData := make([]opts.ScatterData, 0, samples.Len())
		for i := 0; i < samples.Len(); i++ {
			scatterData = append(scatterData, opts.ScatterData{Value: []float64{samples.X[i], samples.Y[i]}})
		}
		scatter.AddSeries("Samples", scatterData)
		line.Overlap(scatter)
	}
	return line
}

// BarResiduals generates an echart bar chart of the residual at every training x
func BarResiduals(x, residuals []float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Fit Residual",
			},
		),
	)

	barData := make([]opts.BarData, 0, len(residuals))
	for _, r := range residuals {
		barData = append(barData, opts.BarData{Value: r})
	}
	bar.SetXAxis(util.FormatFloats(x, "%.4g")).
		AddSeries("Residual", barData)
	return bar
}
