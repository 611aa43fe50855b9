package sparse

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Indicator is a binary sparse matrix over a column space too large to
// address with int, such as the entity-pair space of a knowledge graph.
// Only presence is recorded; setting the same column twice is a no-op after
// compaction.
type Indicator struct {
	rows    int
	cols    int64
	entries [][]int64
	compact bool
}

// NewIndicator returns an empty indicator with the given shape.
func NewIndicator(rows int, cols int64) *Indicator {
	return &Indicator{rows: rows, cols: cols, entries: make([][]int64, rows)}
}

// Set marks (row, col) as present.
func (m *Indicator) Set(row int, col int64) {
	if col < 0 || col >= m.cols {
		panic("sparse: indicator column out of range")
	}
	m.entries[row] = append(m.entries[row], col)
	m.compact = false
}

// Compact sorts each row and removes duplicate columns. Idempotent.
func (m *Indicator) Compact() {
	if m.compact {
		return
	}
	for i, row := range m.entries {
		slices.Sort(row)
		m.entries[i] = slices.Compact(row)
	}
	m.compact = true
}

// RowCardinality returns the number of distinct columns set in row i.
func (m *Indicator) RowCardinality(i int) int {
	m.Compact()
	return len(m.entries[i])
}

// IntersectionProduct computes the dense matrix of pairwise row intersection
// cardinalities, equal to the product of this indicator with the transpose of
// other over the shared column dimension. The two indicators must have the
// same shape.
func (m *Indicator) IntersectionProduct(other *Indicator) *mat.Dense {
	if m.rows != other.rows || m.cols != other.cols {
		panic("sparse: indicator shape mismatch")
	}
	m.Compact()
	other.Compact()

	out := mat.NewDense(m.rows, other.rows, nil)
	for i := 0; i < m.rows; i++ {
		a := m.entries[i]
		if len(a) == 0 {
			continue
		}
		for j := 0; j < other.rows; j++ {
			b := other.entries[j]
			if len(b) == 0 {
				continue
			}
			out.Set(i, j, float64(sortedIntersectionCount(a, b)))
		}
	}
	return out
}

// sortedIntersectionCount merges two sorted unique slices and counts the
// shared values.
func sortedIntersectionCount(a, b []int64) int {
	count, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			count++
			i++
			j++
		}
	}
	return count
}

// CSRFromDense converts a dense matrix to compressed row form, dropping
// explicit zeros.
func CSRFromDense(d *mat.Dense) *CSR {
	rows, cols := d.Dims()
	out := &CSR{rows: rows, cols: cols, rowPtr: make([]int, rows+1)}
	for i := 0; i < rows; i++ {
		out.rowPtr[i] = len(out.data)
		for j := 0; j < cols; j++ {
			v := d.At(i, j)
			if v == 0 {
				continue
			}
			out.colIdx = append(out.colIdx, j)
			out.data = append(out.data, v)
		}
	}
	out.rowPtr[rows] = len(out.data)
	return out
}
