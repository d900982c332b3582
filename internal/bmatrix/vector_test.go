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

import "testing"

func TestVectorSetBitShrinkInvariant(t *testing.T) {
	v := NewVector(12)
	for i := 0; i < 12; i++ {
		v.SetBit(i, 1)
	}
	v.data[1] |= 0xF0 // poke bits 12-15 directly, simulating a stray write
	v.shrink()
	for i := 12; i < 16; i++ {
		if v.Bit(i) != 0 {
			t.Fatalf("bit %d not cleared by shrink", i)
		}
	}
}

func TestVectorXor(t *testing.T) {
	a := VectorFromBytes(16, []byte{0xFF, 0x00})
	b := VectorFromBytes(16, []byte{0x0F, 0xFF})
	got := Xor(a, b)
	want := VectorFromBytes(16, []byte{0xF0, 0xFF})
	if !got.Equal(want) {
		t.Fatalf("Xor = %08b, want %08b", got.Bytes(), want.Bytes())
	}
}

func TestVectorIsZero(t *testing.T) {
	v := NewVector(32)
	if !v.IsZero() {
		t.Fatal("freshly allocated vector is not zero")
	}
	v.SetBit(17, 1)
	if v.IsZero() {
		t.Fatal("vector with a set bit reports zero")
	}
}

// TestVectorShiftLaws checks the shift laws: (x<<k)>>k clears the top k bits and
// preserves the bottom m-k; (x<<m)==0; (x<<0)==x.
func TestVectorShiftLaws(t *testing.T) {
	m := 37
	x := VectorFromBytes(m, []byte{0xAB, 0xCD, 0x3F, 0x15, 0x01})

	if got := x.ShiftLeft(0); !got.Equal(x) {
		t.Fatalf("x<<0 = %v, want x = %v", got.Bytes(), x.Bytes())
	}

	if got := x.ShiftLeft(m); !got.IsZero() {
		t.Fatalf("x<<m = %v, want zero", got.Bytes())
	}

	for k := 0; k < m; k++ {
		rt := x.ShiftLeft(k).ShiftRight(k)
		for i := 0; i < m; i++ {
			want := x.Bit(i)
			if i >= m-k {
				want = 0
			}
			if rt.Bit(i) != want {
				t.Fatalf("k=%d: bit %d = %d, want %d", k, i, rt.Bit(i), want)
			}
		}
	}
}

func TestVectorShiftLeftCrossByte(t *testing.T) {
	x := VectorFromBytes(16, []byte{0x01, 0x00})
	got := x.ShiftLeft(8)
	want := VectorFromBytes(16, []byte{0x00, 0x01})
	if !got.Equal(want) {
		t.Fatalf("ShiftLeft(8) = %v, want %v", got.Bytes(), want.Bytes())
	}
}

func TestVectorShiftRightCrossByte(t *testing.T) {
	x := VectorFromBytes(16, []byte{0x00, 0x01})
	got := x.ShiftRight(8)
	want := VectorFromBytes(16, []byte{0x01, 0x00})
	if !got.Equal(want) {
		t.Fatalf("ShiftRight(8) = %v, want %v", got.Bytes(), want.Bytes())
	}
}
