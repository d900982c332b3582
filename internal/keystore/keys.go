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

// Package keystore persists and reloads the opaque table sets produced by
// internal/wbox: a byte-exact, headerless dump/load layer.
package keystore

import (
	"os"

	"github.com/dschelkunov/wbpoc/internal/wbox"
	"github.com/pkg/errors"
)

const (
	publicKeySize  = wbox.CombCount * wbox.CombSize * wbox.MixedRecord
	it2Size        = wbox.MixedRecord * wbox.CombSize * wbox.MixedRecord
	it1Size        = wbox.ClearRecord * wbox.CombSize * wbox.ClearRecord
	ftSize         = wbox.ClearRecord * wbox.CombSize * wbox.ClearRecord
	privateKeySize = it2Size + it1Size + ftSize
)

// SavePublicKey writes the 16x256x18-byte combined T-box dump to path, in
// natural array order, with no header, version, or checksum.
func SavePublicKey(path string, ct [wbox.CombCount]wbox.CombinedTable) error {
	buf := make([]byte, 0, publicKeySize)
	for _, table := range ct {
		for _, row := range table {
			buf = append(buf, row[:]...)
		}
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return errors.Wrapf(err, "keystore: writing public key to %s", path)
	}
	return nil
}

// LoadPublicKey reads and unpacks a public key file written by
// SavePublicKey. It performs only a size check against publicKeySize; the
// format itself is opaque.
func LoadPublicKey(path string) ([wbox.CombCount]wbox.CombinedTable, error) {
	var ct [wbox.CombCount]wbox.CombinedTable

	buf, err := os.ReadFile(path)
	if err != nil {
		return ct, errors.Wrapf(err, "keystore: reading public key from %s", path)
	}
	if len(buf) != publicKeySize {
		return ct, errors.Errorf("keystore: public key %s has %d bytes, want %d", path, len(buf), publicKeySize)
	}

	off := 0
	for i := range ct {
		for j := range ct[i] {
			copy(ct[i][j][:], buf[off:off+wbox.MixedRecord])
			off += wbox.MixedRecord
		}
	}
	return ct, nil
}

// SavePrivateKey writes IT2, then IT1, then FT, concatenated with no
// separators, to path.
func SavePrivateKey(path string, it2 [wbox.MixedRecord]wbox.MixedTable, it1, ft [wbox.ClearRecord]wbox.ClearTable) error {
	buf := make([]byte, 0, privateKeySize)
	for _, table := range it2 {
		for _, row := range table {
			buf = append(buf, row[:]...)
		}
	}
	for _, table := range it1 {
		for _, row := range table {
			buf = append(buf, row[:]...)
		}
	}
	for _, table := range ft {
		for _, row := range table {
			buf = append(buf, row[:]...)
		}
	}

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return errors.Wrapf(err, "keystore: writing private key to %s", path)
	}
	return nil
}

// LoadPrivateKey reads and unpacks a private key file written by
// SavePrivateKey. It performs only the size check of privateKeySize.
func LoadPrivateKey(path string) (it2 [wbox.MixedRecord]wbox.MixedTable, it1, ft [wbox.ClearRecord]wbox.ClearTable, err error) {
	buf, readErr := os.ReadFile(path)
	if readErr != nil {
		err = errors.Wrapf(readErr, "keystore: reading private key from %s", path)
		return
	}
	if len(buf) != privateKeySize {
		err = errors.Errorf("keystore: private key %s has %d bytes, want %d", path, len(buf), privateKeySize)
		return
	}

	off := 0
	for i := range it2 {
		for j := range it2[i] {
			copy(it2[i][j][:], buf[off:off+wbox.MixedRecord])
			off += wbox.MixedRecord
		}
	}
	for i := range it1 {
		for j := range it1[i] {
			copy(it1[i][j][:], buf[off:off+wbox.ClearRecord])
			off += wbox.ClearRecord
		}
	}
	for i := range ft {
		for j := range ft[i] {
			copy(ft[i][j][:], buf[off:off+wbox.ClearRecord])
			off += wbox.ClearRecord
		}
	}
	return
}
