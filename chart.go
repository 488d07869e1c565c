// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	tb "github.com/nsf/termbox-go"
)

// DisableMouseInput in termbox-go. This should be called after ui.Init()
func DisableMouseInput() {
	tb.SetInputMode(tb.InputEsc)
}

// chartData turns results into the bars of the throughput and height charts
func chartData(results []BenchResult) (labels []string, throughput []float64, heights []float64) {
	for _, r := range results {
		labels = append(labels, r.Kind.String())
		throughput = append(throughput, r.OpsPerSec()/1000)
		heights = append(heights, float64(r.Height))
	}
	return labels, throughput, heights
}

func newBarChart(title string, labels []string, data []float64, format func(float64) string) *widgets.BarChart {
	scheme := GetColorScheme()

	bc := widgets.NewBarChart()
	bc.Title = title
	bc.TitleStyle = StyleTitle()
	bc.BorderStyle = StyleBorder()
	bc.Labels = labels
	bc.Data = data
	bc.BarWidth = 10
	bc.BarGap = 3
	bc.BarColors = scheme.Bars
	bc.LabelStyles = []ui.Style{ui.NewStyle(scheme.Labels)}
	bc.NumStyles = []ui.Style{ui.NewStyle(scheme.Numbers)}
	bc.NumFormatter = format
	return bc
}

// showChart draws the bench results full screen until q, esc or ctrl+c
func showChart(results []BenchResult, w *workload) error {
	if len(results) == 0 {
		return errors.New("no results to chart")
	}
	if err := ui.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize termui")
	}
	DisableMouseInput()
	defer ui.Close()

	labels, throughput, heights := chartData(results)
	opsChart := newBarChart(" Throughput (k ops/sec) ", labels, throughput, func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
	heightChart := newBarChart(" Final tree height ", labels, heights, func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})

	footer := widgets.NewParagraph()
	footer.Title = " Workload "
	footer.Text = fmt.Sprintf("%d operations over %d keys, seed %d, %d absent probes. [q](fg:green) or [<esc>](fg:green) to quit",
		len(w.ops), w.keySpace, w.seed, w.absent)
	footer.TextStyle = StyleTextMuted()
	footer.BorderStyle = StyleBorder()

	grid := ui.NewGrid()
	termWidth, termHeight := ui.TerminalDimensions()
	grid.SetRect(0, 0, termWidth, termHeight)
	grid.Set(
		ui.NewRow(0.85,
			ui.NewCol(0.5, opsChart),
			ui.NewCol(0.5, heightChart),
		),
		ui.NewRow(0.15, footer),
	)
	ui.Render(grid)

	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			return nil
		case "<Resize>":
			payload := e.Payload.(ui.Resize)
			grid.SetRect(0, 0, payload.Width, payload.Height)
			ui.Clear()
			ui.Render(grid)
		}
	}
	return nil
}
