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

// Package bmatrix implements binary vector and matrix arithmetic over GF(2):
// addition is XOR, multiplication is AND. It backs the linear layers of the
// white-box cipher in internal/wbox.
package bmatrix

import (
	"bytes"

	"github.com/templexxx/xorsimd"
)

// Vector is an ordered sequence of n bits, indexed 0..n-1 and packed
// little-endian into bytes: bit i lives in byte i/8, at offset i%8. Bits at
// or beyond position n are always zero (the shrink invariant) so that two
// vectors of the same length compare and XOR byte-for-byte.
//
// Packing at byte granularity (rather than the 64-bit words a hand-rolled C
// implementation would reach for) means a Vector's backing store doubles as
// a T-box record: a 16- or 18-byte table row is simply a Vector of width
// 128 or 144 bits read and written in place.
type Vector struct {
	n    int
	data []byte
}

// NewVector allocates a zeroed Vector of n bits.
func NewVector(n int) Vector {
	return Vector{n: n, data: make([]byte, (n+7)/8)}
}

// VectorFromBytes copies b into a new n-bit Vector, applying the shrink mask.
// b must hold at least (n+7)/8 bytes.
func VectorFromBytes(n int, b []byte) Vector {
	v := NewVector(n)
	copy(v.data, b)
	v.shrink()
	return v
}

// Len reports the number of bits in v.
func (v Vector) Len() int { return v.n }

// Bytes returns the Vector's backing storage. Callers that mutate the
// returned slice mutate v.
func (v Vector) Bytes() []byte { return v.data }

// Bit returns the value of bit i (0 or 1).
func (v Vector) Bit(i int) byte {
	return (v.data[i/8] >> uint(i%8)) & 1
}

// SetBit sets bit i to b (0 or 1).
func (v *Vector) SetBit(i int, b byte) {
	mask := byte(1) << uint(i%8)
	if b != 0 {
		v.data[i/8] |= mask
	} else {
		v.data[i/8] &^= mask
	}
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	c := make([]byte, len(v.data))
	copy(c, v.data)
	return Vector{n: v.n, data: c}
}

// shrink zeroes bits at or beyond position n in the top byte.
func (v *Vector) shrink() {
	if rem := v.n % 8; rem != 0 {
		mask := byte(1<<uint(rem)) - 1
		v.data[len(v.data)-1] &= mask
	}
}

// XorAssign XORs o into v in place. v and o must have equal length.
func (v *Vector) XorAssign(o Vector) {
	xorsimd.Bytes(v.data, v.data, o.data)
	v.shrink()
}

// Xor returns a ^ b as a new Vector.
func Xor(a, b Vector) Vector {
	out := a.Clone()
	out.XorAssign(b)
	return out
}

// Equal reports whether v and o hold the same bits.
func (v Vector) Equal(o Vector) bool {
	return v.n == o.n && bytes.Equal(v.data, o.data)
}

// IsZero reports whether every bit of v is zero.
func (v Vector) IsZero() bool {
	for _, b := range v.data {
		if b != 0 {
			return false
		}
	}
	return true
}

// ShiftLeft returns v shifted left by k bits (toward higher indices); bits
// shifted past position n-1 are discarded and low bits are zero-filled. A
// shift of k >= n yields the zero vector.
func (v Vector) ShiftLeft(k int) Vector {
	out := NewVector(v.n)
	if k >= v.n {
		return out
	}
	if k <= 0 {
		copy(out.data, v.data)
		return out
	}

	byteShift, bitShift := k/8, uint(k%8)
	for i := len(out.data) - 1; i >= 0; i-- {
		srcIdx := i - byteShift
		var cur, carry byte
		if srcIdx >= 0 {
			cur = v.data[srcIdx] << bitShift
		}
		if bitShift > 0 && srcIdx-1 >= 0 {
			carry = v.data[srcIdx-1] >> (8 - bitShift)
		}
		out.data[i] = cur | carry
	}
	out.shrink()
	return out
}

// ShiftRight returns v shifted right by k bits (toward lower indices);
// bits below position k are discarded and high bits are zero-filled.
func (v Vector) ShiftRight(k int) Vector {
	out := NewVector(v.n)
	if k >= v.n {
		return out
	}
	if k <= 0 {
		copy(out.data, v.data)
		return out
	}

	byteShift, bitShift := k/8, uint(k%8)
	n := len(out.data)
	for i := 0; i < n; i++ {
		srcIdx := i + byteShift
		var cur, carry byte
		if srcIdx < len(v.data) {
			cur = v.data[srcIdx] >> bitShift
		}
		if bitShift > 0 && srcIdx+1 < len(v.data) {
			carry = v.data[srcIdx+1] << (8 - bitShift)
		}
		out.data[i] = cur | carry
	}
	out.shrink()
	return out
}
