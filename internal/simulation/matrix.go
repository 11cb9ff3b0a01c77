// Package simulation implements the editable pivot matrix over the forward
// projection feed: many date-stamped entries collapse into one row per
// (name, type, source) with values spread across month columns, the row set
// supports in-place editing, and an edited matrix explodes back into
// discrete dated scenario items.
package simulation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// Matrix is the grouped, editable view of a projection feed. It is ephemeral
// state owned by a single caller session: every view load or filter change
// rebuilds it from the feed, and derived totals are recomputed on demand
// rather than stored.
type Matrix struct {
	Headers []string
	Rows    []model.SimulationItem
}

// New builds a matrix from a projection feed by grouping its items.
func New(projection model.SimulationProjection) *Matrix {
	return &Matrix{
		Headers: projection.MonthHeaders,
		Rows:    Group(projection.Items),
	}
}

// Months returns the number of month columns.
func (m *Matrix) Months() int {
	return len(m.Headers)
}

// Group merges items sharing (trimmed name, type, source) into single rows
// by summing their values per month index. Rows never merge across differing
// type or source, so two same-named entries from different sources stay
// apart. First-seen order is preserved, and grouping an already-grouped set
// changes nothing.
func Group(items []model.SimulationItem) []model.SimulationItem {
	type groupKey struct {
		name   string
		typ    string
		source string
	}

	index := make(map[groupKey]int)
	grouped := make([]model.SimulationItem, 0, len(items))

	for _, item := range items {
		key := groupKey{
			name:   strings.TrimSpace(item.Name),
			typ:    item.Type,
			source: item.Source,
		}

		if i, ok := index[key]; ok {
			row := &grouped[i]
			for j := range row.Values {
				if j < len(item.Values) {
					row.Values[j] += item.Values[j]
				}
			}
			continue
		}

		values := make([]float64, len(item.Values))
		copy(values, item.Values)
		index[key] = len(grouped)
		grouped = append(grouped, model.SimulationItem{
			Name:   item.Name,
			Type:   item.Type,
			Values: values,
			Source: item.Source,
		})
	}

	return grouped
}

// Rename changes a row's name without touching its values.
func (m *Matrix) Rename(row int, name string) {
	if row < 0 || row >= len(m.Rows) {
		return
	}
	m.Rows[row].Name = name
}

// SetCell writes a raw value into a month slot without sign correction, so
// mid-edit input echoes back exactly as typed. Input that does not parse as
// a number counts as zero.
func (m *Matrix) SetCell(row, month int, raw string) {
	if !m.validCell(row, month) {
		return
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) {
		value = 0
	}
	m.Rows[row].Values[month] = value
}

// CommitCell normalizes a cell's sign to its row type: a positive value on
// an EXPENSE row is negated, a negative value on an INCOME row becomes its
// absolute value. This runs once per committed edit, not per keystroke, and
// committing an already-correct value changes nothing.
func (m *Matrix) CommitCell(row, month int) {
	if !m.validCell(row, month) {
		return
	}
	value := m.Rows[row].Values[month]
	switch m.Rows[row].Type {
	case model.TypeExpense:
		if value > 0 {
			m.Rows[row].Values[month] = -value
		}
	case model.TypeIncome:
		if value < 0 {
			m.Rows[row].Values[month] = -value
		}
	}
}

// AddSmartItem appends a row with |amount|, signed by type, written into
// installments consecutive month slots starting at startMonth. Slots past
// the last column are silently dropped, not wrapped.
func (m *Matrix) AddSmartItem(name string, amount float64, itemType string, startMonth, installments int, source string) {
	values := make([]float64, m.Months())
	signed := math.Abs(amount)
	if itemType == model.TypeExpense {
		signed = -signed
	}
	for i := 0; i < installments; i++ {
		idx := startMonth + i
		if idx >= 0 && idx < len(values) {
			values[idx] = signed
		}
	}
	if source == "" {
		source = model.SourceManual
	}
	m.Rows = append(m.Rows, model.SimulationItem{
		Name:   name,
		Type:   itemType,
		Values: values,
		Source: source,
	})
}

// AddEmptyRow appends a zero-filled EXPENSE row with source MANUAL.
func (m *Matrix) AddEmptyRow() {
	m.Rows = append(m.Rows, model.SimulationItem{
		Name:   "New Custom Item",
		Type:   model.TypeExpense,
		Values: make([]float64, m.Months()),
		Source: model.SourceManual,
	})
}

// RemoveRow deletes a row by index with standard list contraction.
func (m *Matrix) RemoveRow(row int) {
	if row < 0 || row >= len(m.Rows) {
		return
	}
	m.Rows = append(m.Rows[:row], m.Rows[row+1:]...)
}

// Reset discards all edits and re-derives the matrix from the feed. The row
// set is rebuilt through the grouping transform, never patched in place.
func (m *Matrix) Reset(projection model.SimulationProjection) {
	m.Headers = projection.MonthHeaders
	m.Rows = Group(projection.Items)
}

// MonthlyNet sums all rows per month column.
func (m *Matrix) MonthlyNet() []float64 {
	net := make([]float64, m.Months())
	for _, row := range m.Rows {
		for i, v := range row.Values {
			if i < len(net) {
				net[i] += v
			}
		}
	}
	return net
}

// CumulativeNet is the running sum of MonthlyNet.
func (m *Matrix) CumulativeNet() []float64 {
	cumulative := m.MonthlyNet()
	for i := 1; i < len(cumulative); i++ {
		cumulative[i] += cumulative[i-1]
	}
	return cumulative
}

// Explode converts the edited matrix back into discrete dated scenario
// items: one item per non-zero month slot of every non-baseline row, dated
// the first day of the slot's month (slot 0 = the month after now). Baseline
// rows (RECURRING, INSTALLMENT) are excluded since they are reproducible
// from their templates.
//
// The item amount is the slot's absolute value with the type inferred from
// its sign, so the transform is lossy for recurrence metadata but lossless
// for the numbers: every unit in the matrix reappears in exactly one item.
func (m *Matrix) Explode(now time.Time) []model.ScenarioItem {
	var items []model.ScenarioItem

	for _, row := range m.Rows {
		if row.Source == model.SourceRecurring || row.Source == model.SourceInstallment {
			continue
		}
		for i, v := range row.Values {
			if v == 0 {
				continue
			}

			itemType := model.TypeIncome
			if v < 0 {
				itemType = model.TypeExpense
			}
			source := row.Source
			if source == "" {
				source = model.SourceManual
			}

			items = append(items, model.ScenarioItem{
				Description:  row.Name,
				Amount:       math.Abs(v),
				Type:         itemType,
				StartDate:    time.Date(now.Year(), now.Month()+1+time.Month(i), 1, 0, 0, 0, 0, time.UTC),
				Installments: 1,
				SourceType:   source,
			})
		}
	}

	return items
}

func (m *Matrix) validCell(row, month int) bool {
	return row >= 0 && row < len(m.Rows) && month >= 0 && month < len(m.Rows[row].Values)
}
