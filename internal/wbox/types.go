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

// Package wbox compiles and evaluates the white-box table set: two linear
// mixers, two layers of substitution boxes, and the combined, byte-indexed
// lookup tables derived from them.
package wbox

// Fixed parameters. These are contracts the table layout below depends on
// exactly, not tunables.
const (
	Bits1        = 128 // size of the first linear mixer, M1
	Bits2        = 144 // size of the second linear mixer, M2
	NibbleWidth  = 4
	ByteWidth    = 8
	SBoxCount    = 32  // number of nibble S-boxes
	SBoxSize     = 16  // entries per nibble S-box, 2^NibbleWidth
	CombCount    = 16  // number of combined byte S-boxes / T-boxes
	CombSize     = 256 // entries per combined table, 2^ByteWidth
	ClearRecord  = 16  // bytes per record before the mix bytes are appended
	MixedRecord  = 18  // bytes per record including the two mix bytes
	PlaintextLen = CombCount
	CiphertextLen = MixedRecord
)

// NibbleSBox is a permutation of {0,...,15}.
type NibbleSBox [SBoxSize]byte

// NibbleTableRow is one row of a pre-mix single-nibble T-box: 16 bytes of
// clear data, treated as a 128-bit column vector.
type NibbleTableRow [ClearRecord]byte

// NibbleTable holds the 16 rows of a single nibble T-box, indexed by the
// 4-bit input value.
type NibbleTable [SBoxSize]NibbleTableRow

// CombinedRow is one row of a combined, byte-indexed T-box: 16 bytes of
// mixed data plus 2 mix bytes, treated as a 144-bit column vector.
type CombinedRow [MixedRecord]byte

// CombinedTable holds the 256 rows of a combined T-box, indexed by the
// 8-bit input value.
type CombinedTable [CombSize]CombinedRow

// CombByteSBox is a permutation of {0,...,255}, used for the inverse
// combined substitution.
type CombByteSBox [CombSize]byte

// ClearRow is a 16-byte record with no mix bytes, used by the IT1 and FT
// decryption tables.
type ClearRow [ClearRecord]byte

// ClearTable holds the 256 rows of a 16-byte-record inverse table, indexed
// by the 8-bit input value.
type ClearTable [CombSize]ClearRow

// MixedTable holds the 256 rows of an 18-byte-record inverse table
// (undoing M2), indexed by the 8-bit input value.
type MixedTable [CombSize]CombinedRow
