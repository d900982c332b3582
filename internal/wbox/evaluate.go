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

import "github.com/templexxx/xorsimd"

// Encrypt evaluates the fixed XOR-sum arithmetic over k's combined T-boxes:
// cipher[j] = XOR over i in [0,16) of CT[i][plaintext[i]][j]. k must be
// initialized.
func (k *EncryptionKey) Encrypt(dst *[MixedRecord]byte, plaintext *[PlaintextLen]byte) {
	rows := make([][]byte, PlaintextLen)
	for i := 0; i < PlaintextLen; i++ {
		row := k.ct[i][plaintext[i]]
		rows[i] = row[:]
	}
	xorsimd.Encode(dst[:], rows)
}

// Decrypt evaluates the three chained XOR-sum stages that undo Encrypt:
// IT2 folds the 18-byte cipher block back through M2's inverse, IT1 folds
// the result back through M1's inverse, and FT applies the combined
// inverse substitution. d must be initialized.
func (d *DecryptionKey) Decrypt(dst *[PlaintextLen]byte, cipher *[MixedRecord]byte) {
	var t0 [MixedRecord]byte
	rows2 := make([][]byte, MixedRecord)
	for i := 0; i < MixedRecord; i++ {
		row := d.it2[i][cipher[i]]
		rows2[i] = row[:]
	}
	xorsimd.Encode(t0[:], rows2)

	var t1 [PlaintextLen]byte
	rows1 := make([][]byte, PlaintextLen)
	for i := 0; i < PlaintextLen; i++ {
		row := d.it1[i][t0[i]]
		rows1[i] = row[:]
	}
	xorsimd.Encode(t1[:], rows1)

	rowsF := make([][]byte, PlaintextLen)
	for i := 0; i < PlaintextLen; i++ {
		row := d.ft[i][t1[i]]
		rowsF[i] = row[:]
	}
	xorsimd.Encode(dst[:], rowsF)
}
