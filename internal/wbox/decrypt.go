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

package wbox

import (
	"github.com/dschelkunov/wbpoc/internal/bmatrix"
	"github.com/pkg/errors"
)

// DecryptionKey is the private artifact derived from an already-compiled
// EncryptionKey: inverted mixers, a combined inverse substitution, and the
// three inverse table stacks that undo an encrypted block.
type DecryptionKey struct {
	state lifecycle
	im1   bmatrix.Matrix
	im2   bmatrix.Matrix
	is    [CombCount]CombByteSBox
	it2   [MixedRecord]MixedTable
	it1   [ClearRecord]ClearTable
	ft    [ClearRecord]ClearTable
}

// GenerateDecryptionKey compiles the private artifact from enc, which must
// already be initialized. Generation holds a value snapshot of enc's
// tables at construction time; later mutation of enc (there is none, since
// EncryptionKey is produced once and treated as immutable) would not be
// observed.
func GenerateDecryptionKey(enc *EncryptionKey) (*DecryptionKey, error) {
	if !enc.IsInitialized() {
		return nil, errors.New("wbox: cannot derive a decryption key from an uninitialized encryption key")
	}

	d := &DecryptionKey{}

	im1, ok := enc.M1().Inverse()
	if !ok {
		return nil, errors.New("wbox: M1 unexpectedly not invertible")
	}
	d.im1 = im1

	im2, ok := enc.M2().Inverse()
	if !ok {
		return nil, errors.New("wbox: M2 unexpectedly not invertible")
	}
	d.im2 = im2

	d.is = genInverseSBoxes(enc.SBoxes())
	d.it2 = genInverseTables2(d.im2)
	d.it1 = genInverseTables1(d.im1)
	d.ft = genFinalTables(d.is)

	d.state = Initialized
	return d, nil
}

// genInverseSBoxes combines each pair of nibble S-boxes into a single
// 8-bit inverse: IS[k][S[2k][u] | S[2k+1][v]<<4] = u | v<<4.
func genInverseSBoxes(s [SBoxCount]NibbleSBox) [CombCount]CombByteSBox {
	var is [CombCount]CombByteSBox
	for k := 0; k < CombCount; k++ {
		s1 := s[2*k]
		s2 := s[2*k+1]
		for v := 0; v < SBoxSize; v++ {
			for u := 0; u < SBoxSize; u++ {
				plain := byte(u) | byte(v)<<NibbleWidth
				cipher := s1[u] | s2[v]<<NibbleWidth
				is[k][cipher] = plain
			}
		}
	}
	return is
}

// unitByteSBox is the identity permutation of {0,...,255}, used as the
// "substitution" driving the inverse table generators below: every input
// byte maps to itself before the linear mixer is applied.
func unitByteSBox() [CombSize]byte {
	var u [CombSize]byte
	for i := range u {
		u[i] = byte(i)
	}
	return u
}

// genInverseTables2 builds IT2, the 18 rows of 256 18-byte records that
// undo M2: row i, entry j holds the contribution of a byte valued j at
// byte-position i of the 144-bit mixed input, after multiplication by im2.
func genInverseTables2(im2 bmatrix.Matrix) [MixedRecord]MixedTable {
	var it2 [MixedRecord]MixedTable
	unit := unitByteSBox()
	for i := 0; i < MixedRecord; i++ {
		for j := 0; j < CombSize; j++ {
			it2[i][j] = genInverseRow(im2, unit[j], i, MixedRecord)
		}
	}
	return it2
}

// genInverseTables1 builds IT1, the 16 rows of 256 16-byte records that
// undo M1. Records here are 16 bytes: the IT1 stage of Decrypt reads only
// the first 16 bytes of the IT2 stage's output, leaving the two mix bytes
// behind, and M1 only ever mixed the 128 data bits.
func genInverseTables1(im1 bmatrix.Matrix) [ClearRecord]ClearTable {
	var it1 [ClearRecord]ClearTable
	unit := unitByteSBox()
	for i := 0; i < ClearRecord; i++ {
		for j := 0; j < CombSize; j++ {
			row := genInverseRow(im1, unit[j], i, ClearRecord)
			copy(it1[i][j][:], row[:ClearRecord])
		}
	}
	return it1
}

// genInverseRow multiplies the 8x8 submatrix of m at (r*8, index*8) by the
// unit byte value elem for each r in [0, telemSize), producing telemSize
// output bytes: byte r of the record is the r-th 8x8 block's product.
func genInverseRow(m bmatrix.Matrix, elem byte, index, telemSize int) CombinedRow {
	var out CombinedRow
	in := bmatrix.VectorFromBytes(ByteWidth, []byte{elem})
	for i := 0; i < telemSize; i++ {
		sub := m.Submatrix(i*ByteWidth, index*ByteWidth, ByteWidth, ByteWidth)
		prod := sub.MulVector(in)
		out[i] = prod.Bytes()[0]
	}
	return out
}

// genFinalTables builds FT: row i, entry j is zero everywhere except byte
// i, which holds the combined inverse S-box's output for input j: "apply
// the inverse S-box at position i, place the result at position i, XOR
// into the accumulator."
func genFinalTables(is [CombCount]CombByteSBox) [ClearRecord]ClearTable {
	var ft [ClearRecord]ClearTable
	for i := 0; i < ClearRecord; i++ {
		for j := 0; j < CombSize; j++ {
			ft[i][j][i] = is[i][j]
		}
	}
	return ft
}

// IsInitialized reports whether GenerateDecryptionKey has populated d.
func (d *DecryptionKey) IsInitialized() bool { return d.state == Initialized }

// IM1 returns the inverse of the first linear mixer.
func (d *DecryptionKey) IM1() bmatrix.Matrix { d.state.mustInit(); return d.im1 }

// IM2 returns the inverse of the second linear mixer.
func (d *DecryptionKey) IM2() bmatrix.Matrix { d.state.mustInit(); return d.im2 }

// InverseTables2 returns IT2, the tables undoing M2.
func (d *DecryptionKey) InverseTables2() [MixedRecord]MixedTable { d.state.mustInit(); return d.it2 }

// InverseTables1 returns IT1, the tables undoing M1.
func (d *DecryptionKey) InverseTables1() [ClearRecord]ClearTable { d.state.mustInit(); return d.it1 }

// FinalTables returns FT, the tables undoing the combined S-box layer.
func (d *DecryptionKey) FinalTables() [ClearRecord]ClearTable { d.state.mustInit(); return d.ft }
