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
	"github.com/dschelkunov/wbpoc/internal/chaos"
	"github.com/pkg/errors"
)

// EncryptionKey is the public artifact: the two linear mixers, the 32
// nibble S-boxes (kept for the decryption compiler, not exported through
// persistence), and the combined T-boxes that drive Encrypt.
type EncryptionKey struct {
	state lifecycle
	m1    bmatrix.Matrix
	m2    bmatrix.Matrix
	s     [SBoxCount]NibbleSBox
	ct    [CombCount]CombinedTable
}

// GenerateEncryptionKey draws a fresh key from gen. The draw order is part
// of the key format and must not change: all 32 S-boxes before either
// matrix, M1 before M2, and every paired mix permutation drawn in loop
// order with the shared high-mix permutation drawn once before that loop.
// Re-running generation on the same gen produces a different key, since
// every permutation draw advances gen's seed.
func GenerateEncryptionKey(gen *chaos.Generator) (*EncryptionKey, error) {
	k := &EncryptionKey{}

	for i := range k.s {
		perm, err := gen.Permutation(SBoxSize)
		if err != nil {
			return nil, errors.Wrapf(err, "wbox: drawing S-box %d", i)
		}
		copy(k.s[i][:], perm)
	}

	m1, err := bmatrix.SampleInvertible(gen, Bits1)
	if err != nil {
		return nil, errors.Wrap(err, "wbox: sampling M1")
	}
	k.m1 = m1

	m2, err := bmatrix.SampleInvertible(gen, Bits2)
	if err != nil {
		return nil, errors.Wrap(err, "wbox: sampling M2")
	}
	k.m2 = m2

	nibbleTables := make([]NibbleTable, SBoxCount)
	for i := range nibbleTables {
		nibbleTables[i] = genNibbleTable(k.m1, k.s[i], i)
	}

	highMixes, err := gen.Permutation(CombSize)
	if err != nil {
		return nil, errors.Wrap(err, "wbox: drawing high mix permutation")
	}

	ct, err := combTboxes(gen, k.m2, nibbleTables, highMixes)
	if err != nil {
		return nil, errors.Wrap(err, "wbox: combining T-boxes")
	}
	k.ct = ct

	k.state = Initialized
	return k, nil
}

// genNibbleTableRow computes one row of the pre-mix nibble T-box at
// (index, value): for each of the 32 four-bit row groups of M1's
// index-th column block, multiply the corresponding 4x4 submatrix by the
// substituted value and pack the results two nibbles per byte.
func genNibbleTableRow(m1 bmatrix.Matrix, value byte, index int) NibbleTableRow {
	var row NibbleTableRow
	in := bmatrix.VectorFromBytes(NibbleWidth, []byte{value})

	for r := 0; r < ClearRecord*2; r++ {
		sub := m1.Submatrix(r*NibbleWidth, index*NibbleWidth, NibbleWidth, NibbleWidth)
		out := sub.MulVector(in)
		y := out.Bytes()[0] & 0x0F

		if r%2 == 0 {
			row[r/2] = y
		} else {
			row[r/2] |= y << NibbleWidth
		}
	}
	return row
}

func genNibbleTable(m1 bmatrix.Matrix, s NibbleSBox, index int) NibbleTable {
	var t NibbleTable
	for v := 0; v < SBoxSize; v++ {
		t[v] = genNibbleTableRow(m1, s[v], index)
	}
	return t
}

// combTboxes pairs up the 32 nibble tables into the 16 combined, byte-
// indexed T-boxes: each record is the XOR of the two paired nibble rows
// plus two mix bytes, then remixed in place by M2.
func combTboxes(gen *chaos.Generator, m2 bmatrix.Matrix, nibbleTables []NibbleTable, highMixes chaos.Permutation) ([CombCount]CombinedTable, error) {
	var ct [CombCount]CombinedTable

	for pairIdx := 0; pairIdx < SBoxCount; pairIdx += 2 {
		k := pairIdx / 2
		t1 := nibbleTables[pairIdx]
		t2 := nibbleTables[pairIdx+1]

		mixes, err := gen.Permutation(CombSize)
		if err != nil {
			return ct, errors.Wrapf(err, "drawing mix permutation for pair %d", k)
		}

		for v := 0; v < SBoxSize; v++ {
			for u := 0; u < SBoxSize; u++ {
				idx := u | (v << NibbleWidth)

				var rec CombinedRow
				for b := 0; b < ClearRecord; b++ {
					rec[b] = t1[u][b] ^ t2[v][b]
				}
				rec[ClearRecord] = mixes[idx]
				rec[ClearRecord+1] = highMixes[k]

				vec := bmatrix.VectorFromBytes(Bits2, rec[:])
				mixed := m2.MulVector(vec)
				copy(rec[:], mixed.Bytes())

				ct[k][idx] = rec
			}
		}
	}
	return ct, nil
}

// IsInitialized reports whether GenerateEncryptionKey has populated k.
func (k *EncryptionKey) IsInitialized() bool { return k.state == Initialized }

// M1 returns the first linear mixer.
func (k *EncryptionKey) M1() bmatrix.Matrix { k.state.mustInit(); return k.m1 }

// M2 returns the second linear mixer.
func (k *EncryptionKey) M2() bmatrix.Matrix { k.state.mustInit(); return k.m2 }

// SBoxes returns the 32 nibble S-boxes.
func (k *EncryptionKey) SBoxes() [SBoxCount]NibbleSBox { k.state.mustInit(); return k.s }

// CombinedTables returns the 16 public combined T-boxes.
func (k *EncryptionKey) CombinedTables() [CombCount]CombinedTable { k.state.mustInit(); return k.ct }
