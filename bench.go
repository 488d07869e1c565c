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
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/arbor/treemap"
)

// progress is reported every progressStep operations
const progressStep = 1024

// BenchResult is the outcome of one balancer on a workload
type BenchResult struct {
	Kind    treemap.Kind
	Ops     int
	Elapsed time.Duration
	Hits    int // gets that found their key
	Size    int
	Height  int
}

// OpsPerSec - throughput of the run
func (r BenchResult) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

func newProgressBar(total int, description string, show bool) *progressbar.ProgressBar {
	if !show {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

// runWorkload replays w on a fresh map of the given kind
func runWorkload(kind treemap.Kind, w *workload, bar *progressbar.ProgressBar) (BenchResult, error) {
	m, err := treemap.New[int, int](kind)
	if err != nil {
		return BenchResult{}, err
	}

	res := BenchResult{Kind: kind, Ops: len(w.ops)}
	start := time.Now()
	for i, o := range w.ops {
		switch o.kind {
		case opPut:
			if _, _, err := m.Put(o.key, i); err != nil {
				return res, errors.Wrapf(err, "%s: op %d", kind, i)
			}
		case opGet:
			if _, ok := m.Get(o.key); ok {
				if o.absent {
					return res, errors.AssertionFailedf("%s: key %d was never inserted but found", kind, o.key)
				}
				res.Hits++
			}
		case opRemove:
			m.Remove(o.key)
		}
		if bar != nil && (i+1)%progressStep == 0 {
			bar.Add(progressStep)
		}
	}
	res.Elapsed = time.Since(start)
	if bar != nil {
		bar.Add(len(w.ops) % progressStep)
	}

	res.Size = m.Len()
	res.Height = m.Height()
	if err := m.Check(); err != nil {
		return res, err
	}
	return res, nil
}

// runBench replays one workload on each kind in turn
func runBench(kinds []treemap.Kind, w *workload, showProgress bool) ([]BenchResult, error) {
	log := logrus.WithFields(logrus.Fields{
		"operations": len(w.ops),
		"key_space":  w.keySpace,
		"seed":       w.seed,
	})
	log.WithField("absent_probes", w.absent).Info("workload generated")

	var results []BenchResult
	for _, kind := range kinds {
		bar := newProgressBar(len(w.ops), fmt.Sprintf("⏱  %-8s", kind), showProgress)
		res, err := runWorkload(kind, w, bar)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return results, err
		}
		log.WithFields(logrus.Fields{
			"kind":    kind,
			"elapsed": res.Elapsed,
			"height":  res.Height,
		}).Debug("bench run finished")
		results = append(results, res)
	}
	return results, nil
}

// renderResults lays the results out as a table
func renderResults(results []BenchResult) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("balancer", "ops", "elapsed", "ops/sec", "hits", "size", "height")

	for _, r := range results {
		t.Row(
			r.Kind.String(),
			strconv.Itoa(r.Ops),
			r.Elapsed.Round(time.Microsecond).String(),
			strconv.FormatFloat(r.OpsPerSec(), 'f', 0, 64),
			strconv.Itoa(r.Hits),
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Height),
		)
	}
	return t.String()
}
