// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package bmatrix

import "github.com/dschelkunov/wbpoc/internal/chaos"

// Matrix is an N x M binary matrix: N rows, each an M-bit Vector.
type Matrix struct {
	rows int
	cols int
	m    []Vector
}

// NewMatrix allocates a zeroed rows x cols Matrix.
func NewMatrix(rows, cols int) Matrix {
	m := Matrix{rows: rows, cols: cols, m: make([]Vector, rows)}
	for i := range m.m {
		m.m[i] = NewVector(cols)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.m[i].SetBit(i, 1)
	}
	return m
}

// Rows reports the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols reports the number of columns.
func (m Matrix) Cols() int { return m.cols }

// Row returns row i. The returned Vector shares storage with m; mutating it
// mutates m.
func (m Matrix) Row(i int) Vector { return m.m[i] }

// SetRow replaces row i with v. v must have width m.cols.
func (m *Matrix) SetRow(i int, v Vector) { m.m[i] = v }

// Clone returns an independent copy of m.
func (m Matrix) Clone() Matrix {
	out := Matrix{rows: m.rows, cols: m.cols, m: make([]Vector, m.rows)}
	for i := range m.m {
		out.m[i] = m.m[i].Clone()
	}
	return out
}

// SwapRows exchanges rows i and j. A no-op when i == j or either index is
// out of range.
func (m *Matrix) SwapRows(i, j int) {
	if i == j || i < 0 || j < 0 || i >= m.rows || j >= m.rows {
		return
	}
	m.m[i], m.m[j] = m.m[j], m.m[i]
}

// AddRowInto XORs row r into every other row whose bit at column c is set.
// Used to clear column c above and below a pivot during Gauss-Jordan
// elimination.
func (m *Matrix) AddRowInto(r, c int) {
	pivot := m.m[r]
	for i := 0; i < m.rows; i++ {
		if i == r {
			continue
		}
		if m.m[i].Bit(c) == 1 {
			m.m[i].XorAssign(pivot)
		}
	}
}

// FindNonZeroRow scans rows [r, Rows()) for the first one with a set bit at
// column c. If none is found it advances to column c+1 and recurses. It
// reports the (row, column) of the first pivot found at or after (r, c), or
// ok=false once columns are exhausted.
func (m Matrix) FindNonZeroRow(r, c int) (row, col int, ok bool) {
	if r > c || r >= m.rows || c >= m.cols {
		return 0, 0, false
	}
	for i := r; i < m.rows; i++ {
		if m.m[i].Bit(c) == 1 {
			return i, c, true
		}
	}
	return m.FindNonZeroRow(r, c+1)
}

// Rank runs Gauss-Jordan elimination over a working copy of m and returns
// the number of pivots found (the rank).
func (m Matrix) Rank() int {
	work := m.Clone()
	r, c := 0, 0
	for i := 0; i < m.rows; i++ {
		row, col, ok := work.FindNonZeroRow(r, c)
		if !ok {
			return r
		}
		c = col
		work.SwapRows(r, row)
		work.AddRowInto(r, c)
		r++
		c++
	}
	return m.rows
}

// Invertible reports whether m is a square matrix of full rank.
func (m Matrix) Invertible() bool {
	return m.rows == m.cols && m.Rank() == m.rows
}

// Inverse computes m^-1 via Gauss-Jordan elimination on the augmented matrix
// [m | I]. It reports ok=false if m is not invertible.
func (m Matrix) Inverse() (Matrix, bool) {
	n := m.rows
	aug := NewMatrix(n, 2*n)
	for i := 0; i < n; i++ {
		row := NewVector(2 * n)
		copy(row.Bytes(), m.Row(i).Bytes())
		row.SetBit(n+i, 1)
		aug.SetRow(i, row)
	}

	r, c := 0, 0
	for i := 0; i < n; i++ {
		row, col, ok := aug.FindNonZeroRow(r, c)
		// A pivot in the right half means the left half ran out of
		// independent columns: m is singular.
		if !ok || col >= n {
			return Matrix{}, false
		}
		c = col
		aug.SwapRows(r, row)
		aug.AddRowInto(r, c)
		r++
		c++
	}

	inv := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		right := aug.Row(i).ShiftRight(n)
		copy(inv.Row(i).Bytes(), right.Bytes()[:len(inv.Row(i).Bytes())])
	}
	return inv, true
}

// Submatrix extracts the u x v block of m whose top-left corner is
// (r0, c0). Callers must keep the request in bounds; out-of-range reads are
// the caller's responsibility to avoid.
func (m Matrix) Submatrix(r0, c0, u, v int) Matrix {
	out := NewMatrix(u, v)
	for i := 0; i < u; i++ {
		for j := 0; j < v; j++ {
			out.m[i].SetBit(j, m.m[r0+i].Bit(c0+j))
		}
	}
	return out
}

// MulVector computes m * x, the matrix-by-column-vector product, over GF(2).
// x must have width m.cols; the result has width m.rows.
func (m Matrix) MulVector(x Vector) Vector {
	out := NewVector(m.rows)
	for i := 0; i < m.rows; i++ {
		var bit byte
		row := m.m[i]
		for j := 0; j < m.cols; j++ {
			bit ^= row.Bit(j) & x.Bit(j)
		}
		out.SetBit(i, bit)
	}
	return out
}

// Mul computes m * other, an N x K matrix, where m is N x M and other is
// M x K.
func (m Matrix) Mul(other Matrix) Matrix {
	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			var bit byte
			for k := 0; k < m.cols; k++ {
				bit ^= m.m[i].Bit(k) & other.m[k].Bit(j)
			}
			out.m[i].SetBit(j, bit)
		}
	}
	return out
}

// Equal reports whether m and o have the same shape and bits.
func (m Matrix) Equal(o Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.m {
		if !m.m[i].Equal(o.m[i]) {
			return false
		}
	}
	return true
}

// SampleInvertible draws a uniform random n x n matrix by filling each row
// with raw bytes from gen, redrawing whenever the result is singular. For
// n=128 and n=144 about 0.29 of the draws are invertible, so the expected
// number of draws is about 3.5.
func SampleInvertible(gen *chaos.Generator, n int) (Matrix, error) {
	rowBytes := (n + 7) / 8
	for {
		m := NewMatrix(n, n)
		for i := 0; i < n; i++ {
			buf, err := gen.Bytes(rowBytes)
			if err != nil {
				return Matrix{}, err
			}
			m.SetRow(i, VectorFromBytes(n, buf))
		}
		if m.Invertible() {
			return m, nil
		}
	}
}
