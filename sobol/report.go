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

package sobol

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// SweepRow holds the indices computed for one coefficient of variation.
type SweepRow struct {
	CoV      float64 `json:"cov"`
	Lower    float64 `json:"lower"`
	Total    float64 `json:"total"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// SweepHeader is the header line of a tab separated sweep file.
const SweepHeader = "cov\tlower\ttotal\tmean\tvariance"

// TSV formats the row as a tab separated line.
func (r SweepRow) TSV() string {
	return fmt.Sprintf("%v\t%v\t%v\t%v\t%v", r.CoV, r.Lower, r.Total, r.Mean, r.Variance)
}

// Values returns the row as values of an sql insert.
func (r SweepRow) Values() []any {
	return []any{r.CoV, r.Lower, r.Total, r.Mean, r.Variance}
}

// FormatSweep formats rows as a tab separated table with header.
func FormatSweep(rows []SweepRow) string {
	var sb strings.Builder
	sb.WriteString(SweepHeader)
	sb.WriteByte('\n')
	for _, r := range rows {
		sb.WriteString(r.TSV())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Dump renders the configuration and the last results of the estimator.
func (e *Estimator) Dump() string {
	t := table.NewWriter()
	t.SetTitle("Sobol estimator")
	t.AppendHeader(table.Row{"Member", "Value"})
	t.AppendRows([]table.Row{
		{"dim", e.dim},
		{"runs", e.cfg.Runs},
		{"workers", e.cfg.Workers},
		{"seed", e.cfg.Seed},
		{"coefficient of variation", e.cfg.CoV},
		{"constants", fmt.Sprint(e.constants)},
		{"indices", e.indices.String()},
	})
	t.AppendSeparator()
	for j, p := range e.table {
		t.AppendRow(table.Row{fmt.Sprintf("parameter %v", j+1), fmt.Sprintf("U(%v, %v), spread %.4g", p[0], p[1], normalizedSpread(p))})
	}
	t.AppendSeparator()
	r := e.results
	t.AppendRows([]table.Row{
		{"lower index", r.Lower},
		{"total index", r.Total},
		{"model mean", r.Mean},
		{"model variance", r.Variance},
	})
	return t.Render()
}

// Dump renders the configuration and the last results of the estimator.
func (s *SuperEstimator) Dump() string {
	t := table.NewWriter()
	t.SetTitle("Super Sobol estimator")
	t.AppendHeader(table.Row{"Member", "Value"})
	t.AppendRows([]table.Row{
		{"dim", s.dim},
		{"super runs", s.cfg.Runs},
		{"seed", s.cfg.Seed},
		{"indices", s.indices.String()},
	})
	t.AppendSeparator()
	for j, p := range s.hyper {
		t.AppendRow(table.Row{fmt.Sprintf("uncertainty %v", j+1), fmt.Sprintf("U(%v, %v)", p[0], p[1])})
	}
	t.AppendSeparator()
	r := s.results
	t.AppendRows([]table.Row{
		{"lower super index (un-normalized)", r.Lower},
		{"total super index (un-normalized)", r.Total},
		{"super model mean", r.Mean},
		{"super model variance", r.Variance},
	})
	if r.Inner != nil {
		t.AppendRow(table.Row{"inner index statistics", r.Inner.String()})
	}
	return t.Render()
}
