// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package visualizer

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const sweepRef = "sweep-stats"
const momentsRef = "moment-stats"
const indicesRef = "index-stats"
const ecdfRef = "ecdf-stats"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Aida: Sobol Sensitivity</title>
  </head>
  <body>
    <h1>Aida: Sobol Sensitivity</h1>
    <ul>
    <li> <h3> <a href="/` + sweepRef + `"> Index Sweep </a> </h3> </li>
    <li> <h3> <a href="/` + momentsRef + `"> Output Moments </a> </h3> </li>
    <li> <h3> <a href="/` + indicesRef + `"> Sensitivity Indices </a> </h3> </li>
    <li> <h3> <a href="/` + ecdfRef + `"> Sampler Validation </a> </h3> </li>
    </ul>
</body>
</html>
`

func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// globalOptions are shared by all charts.
func globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// convertLineData converts (x,y) points to chart points.
func convertLineData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// sweepColumn extracts a column of the sweep as points over the
// coefficient of variation.
func sweepColumn(rows []sobol.SweepRow, value func(sobol.SweepRow) float64) [][2]float64 {
	points := make([][2]float64, len(rows))
	for i, row := range rows {
		points[i] = [2]float64{row.CoV, value(row)}
	}
	return points
}

// newSweepChart plots the lower and total index over the coefficient of variation.
func newSweepChart(title string, rows []sobol.SweepRow) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOptions("Index Sweep", title),
		charts.WithXAxisOpts(opts.XAxis{Name: "CoV", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "index"}))...)
	chart.AddSeries("Lower", convertLineData(sweepColumn(rows, func(r sobol.SweepRow) float64 { return r.Lower }))).
		AddSeries("Total", convertLineData(sweepColumn(rows, func(r sobol.SweepRow) float64 { return r.Total })))
	return chart
}

// newMomentsChart plots the model output mean and variance over the
// coefficient of variation.
func newMomentsChart(title string, rows []sobol.SweepRow) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOptions("Output Moments", title),
		charts.WithXAxisOpts(opts.XAxis{Name: "CoV", Type: "value"}))...)
	chart.AddSeries("Mean", convertLineData(sweepColumn(rows, func(r sobol.SweepRow) float64 { return r.Mean }))).
		AddSeries("Variance", convertLineData(sweepColumn(rows, func(r sobol.SweepRow) float64 { return r.Variance })))
	return chart
}

// newIndicesChart shows the lower and total index of an estimation as bars.
func newIndicesChart(title string, results *sobol.Results) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions("Sensitivity Indices", title)...)
	label := "indices"
	lower, total := 0.0, 0.0
	if results != nil {
		label = results.Indices.String()
		lower, total = results.Lower, results.Total
	}
	bar.SetXAxis([]string{label}).
		AddSeries("Lower", []opts.BarData{{Value: lower}}).
		AddSeries("Total", []opts.BarData{{Value: total}})
	return bar
}

// newECDFChart compares an empirical CDF with its reference CDF.
func newECDFChart(title string, ecdf, reference [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOptions("Sampler Validation", title),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}))...)
	chart.AddSeries("eCDF", convertLineData(ecdf)).
		AddSeries("Reference", convertLineData(reference))
	return chart
}

func renderSweep(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newSweepChart(view.Title, view.Sweep).Render(w)
}

func renderMoments(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newMomentsChart(view.Title, view.Sweep).Render(w)
}

func renderIndices(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newIndicesChart(view.Title, view.Results).Render(w)
}

func renderECDF(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newECDFChart(view.Title, view.ECDF, view.Reference).Render(w)
}

// Render writes the charts of the view with data into a single page.
func Render(view *View, w io.Writer) error {
	if err := view.Validate(); err != nil {
		return err
	}
	page := components.NewPage()
	page.PageTitle = "Aida: Sobol Sensitivity"
	if len(view.Sweep) > 0 {
		page.AddCharts(newSweepChart(view.Title, view.Sweep), newMomentsChart(view.Title, view.Sweep))
	}
	if view.Results != nil {
		page.AddCharts(newIndicesChart(view.Title, view.Results))
	}
	if len(view.ECDF) > 0 {
		page.AddCharts(newECDFChart(view.Title, view.ECDF, view.Reference))
	}
	return page.Render(w)
}

// RenderFile writes the charts of the view into an HTML file.
func RenderFile(view *View, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("visualizer: cannot create chart file %v; %w", filename, err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return Render(view, f)
}

// newMux routes the pages of the web server.
func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+sweepRef, renderSweep)
	mux.HandleFunc("/"+momentsRef, renderMoments)
	mux.HandleFunc("/"+indicesRef, renderIndices)
	mux.HandleFunc("/"+ecdfRef, renderECDF)
	return mux
}

// FireUpWeb visualizes the view with a local web-server.
func FireUpWeb(view *View, addr string) error {
	if err := setViewState(view); err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, newMux())
}
