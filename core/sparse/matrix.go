// Package sparse implements the compressed sparse row matrices backing the
// baseline scoring engine. Matrices are accumulated in coordinate form and
// compacted to CSR once, after which they are treated as immutable.
package sparse

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// COO is a coordinate-format accumulator. Duplicate (row, col) entries are
// summed when the matrix is compacted, never overwritten.
type COO struct {
	rows, cols int
	rowIdx     []int
	colIdx     []int
	data       []float64
}

// NewCOO returns an empty accumulator with the given shape.
func NewCOO(rows, cols int) *COO {
	return &COO{rows: rows, cols: cols}
}

// Add records a single entry. Out-of-range indices are a programming error
// and panic, matching slice semantics.
func (m *COO) Add(row, col int, v float64) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic("sparse: coordinate out of range")
	}
	m.rowIdx = append(m.rowIdx, row)
	m.colIdx = append(m.colIdx, col)
	m.data = append(m.data, v)
}

// NNZ returns the number of recorded entries, including duplicates.
func (m *COO) NNZ() int { return len(m.data) }

// ToCSR compacts the accumulator into compressed row form, summing duplicate
// coordinates. The accumulator may be reused afterwards.
func (m *COO) ToCSR() *CSR {
	n := len(m.data)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if m.rowIdx[ia] != m.rowIdx[ib] {
			return m.rowIdx[ia] < m.rowIdx[ib]
		}
		return m.colIdx[ia] < m.colIdx[ib]
	})

	out := &CSR{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: make([]int, m.rows+1),
	}
	prevRow, prevCol := -1, -1
	for _, i := range order {
		r, c, v := m.rowIdx[i], m.colIdx[i], m.data[i]
		if r == prevRow && c == prevCol {
			out.data[len(out.data)-1] += v
			continue
		}
		out.colIdx = append(out.colIdx, c)
		out.data = append(out.data, v)
		for fill := prevRow + 1; fill <= r; fill++ {
			out.rowPtr[fill] = len(out.data) - 1
		}
		prevRow, prevCol = r, c
	}
	for fill := prevRow + 1; fill <= m.rows; fill++ {
		out.rowPtr[fill] = len(out.data)
	}
	return out
}

// CSR is an immutable compressed sparse row matrix.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	data       []float64
}

// NewCSR assembles a matrix directly from compressed row storage. The slices
// are retained, not copied.
func NewCSR(rows, cols int, rowPtr, colIdx []int, data []float64) *CSR {
	if len(rowPtr) != rows+1 || len(colIdx) != len(data) {
		panic("sparse: inconsistent CSR storage")
	}
	return &CSR{rows: rows, cols: cols, rowPtr: rowPtr, colIdx: colIdx, data: data}
}

// Dims returns the matrix shape.
func (m *CSR) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// Sum returns the total of all stored entries.
func (m *CSR) Sum() float64 { return floats.Sum(m.data) }

// Row returns views of the column indices and values of row i. Callers must
// not modify the returned slices.
func (m *CSR) Row(i int) (cols []int, vals []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	return m.colIdx[lo:hi], m.data[lo:hi]
}

// At returns the entry at (i, j), zero if not stored.
func (m *CSR) At(i, j int) float64 {
	cols, vals := m.Row(i)
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return vals[k]
	}
	return 0
}

// RowSums returns the L1 mass of every row.
func (m *CSR) RowSums() []float64 {
	sums := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		_, vals := m.Row(i)
		sums[i] = floats.Sum(vals)
	}
	return sums
}

// NormalizeRowsL1 returns a copy whose rows each sum to one. Rows with zero
// mass are left all-zero rather than divided.
func (m *CSR) NormalizeRowsL1() *CSR {
	out := &CSR{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: m.rowPtr,
		colIdx: m.colIdx,
		data:   make([]float64, len(m.data)),
	}
	for i := 0; i < m.rows; i++ {
		lo, hi := m.rowPtr[i], m.rowPtr[i+1]
		sum := floats.Sum(m.data[lo:hi])
		if sum == 0 {
			continue
		}
		for k := lo; k < hi; k++ {
			out.data[k] = m.data[k] / sum
		}
	}
	return out
}

// ScatterRow writes row i into the dense vector out, which must have length
// equal to the column count. Positions without a stored entry are zeroed.
func (m *CSR) ScatterRow(i int, out []float64) {
	if len(out) != m.cols {
		panic("sparse: scatter destination has wrong length")
	}
	clear(out)
	cols, vals := m.Row(i)
	for k, c := range cols {
		out[c] = vals[k]
	}
}

// AccumulateRows adds the weighted combination sum_k w[k] * row(idx[k]) into
// out. out must have length equal to the column count; it is not cleared.
func (m *CSR) AccumulateRows(idx []int, w []float64, out []float64) {
	if len(idx) != len(w) {
		panic("sparse: index/weight length mismatch")
	}
	if len(out) != m.cols {
		panic("sparse: accumulate destination has wrong length")
	}
	for k, row := range idx {
		weight := w[k]
		if weight == 0 {
			continue
		}
		cols, vals := m.Row(row)
		for j, c := range cols {
			out[c] += weight * vals[j]
		}
	}
}

// Threshold returns a copy with entries strictly below t removed from
// storage. Stored entries of the result are all >= t.
func (m *CSR) Threshold(t float64) *CSR {
	out := &CSR{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: make([]int, m.rows+1),
	}
	for i := 0; i < m.rows; i++ {
		out.rowPtr[i] = len(out.data)
		cols, vals := m.Row(i)
		for k, v := range vals {
			if v < t {
				continue
			}
			out.colIdx = append(out.colIdx, cols[k])
			out.data = append(out.data, v)
		}
	}
	out.rowPtr[m.rows] = len(out.data)
	return out
}

// Equal reports whether two matrices have identical shape and stored entries.
func (m *CSR) Equal(other *CSR) bool {
	if m.rows != other.rows || m.cols != other.cols || len(m.data) != len(other.data) {
		return false
	}
	for i := range m.rowPtr {
		if m.rowPtr[i] != other.rowPtr[i] {
			return false
		}
	}
	for k := range m.data {
		if m.colIdx[k] != other.colIdx[k] || m.data[k] != other.data[k] {
			return false
		}
	}
	return true
}
