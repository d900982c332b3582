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

// NewEncryptionKeyFromTables wraps an already-compiled combined T-box set,
// typically one reloaded from persistent storage, in an EncryptionKey
// capable of Encrypt. Evaluation only ever reads ct, so the linear mixers
// and S-boxes a loaded public key never carries are left zero-valued.
func NewEncryptionKeyFromTables(ct [CombCount]CombinedTable) *EncryptionKey {
	return &EncryptionKey{state: Initialized, ct: ct}
}

// NewDecryptionKeyFromTables wraps an already-compiled inverse table set,
// typically one reloaded from persistent storage, in a DecryptionKey
// capable of Decrypt.
func NewDecryptionKeyFromTables(it2 [MixedRecord]MixedTable, it1, ft [ClearRecord]ClearTable) *DecryptionKey {
	return &DecryptionKey{state: Initialized, it2: it2, it1: it1, ft: ft}
}
