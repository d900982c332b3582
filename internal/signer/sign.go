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

// Package signer implements the hash-preimage signature probe: a brute-
// force counter search that finds a 24-bit suffix making a message's
// SHA-256 hash decrypt-then-re-encrypt back to itself under a white-box
// key pair. It is a demonstration scenario, not part of the core cipher
// construction.
package signer

import (
	"crypto/sha256"

	"github.com/dschelkunov/wbpoc/internal/wbox"
)

// MaxCounter bounds the brute-force search: the probe tries counters
// 0..MaxCounter-1 before giving up. Each counter is appended to the
// message as 3 little-endian bytes before hashing.
const MaxCounter = 1 << 24

// Encryptor evaluates the public forward table set. *wbox.EncryptionKey
// satisfies this.
type Encryptor interface {
	Encrypt(dst *[wbox.MixedRecord]byte, plaintext *[wbox.PlaintextLen]byte)
}

// Decryptor evaluates the private inverse table set. *wbox.DecryptionKey
// satisfies this.
type Decryptor interface {
	Decrypt(dst *[wbox.PlaintextLen]byte, cipher *[wbox.MixedRecord]byte)
}

// Sign searches for a counter c in [0, MaxCounter) such that decrypting
// sha256(msg || c) with dec and re-encrypting the result with enc
// reproduces the low MixedRecord bytes of that same hash. It reports the
// winning counter and ok=true on success, or ok=false if no counter in
// range works. msg may be any length; the counter is appended as 3
// little-endian bytes before hashing.
//
// This only makes sense because Decrypt and Encrypt operate over disjoint
// block widths (18-byte cipher in, 16-byte plaintext out for Decrypt;
// 16-byte plaintext in, 18-byte cipher out for Encrypt) and a SHA-256
// digest is 32 bytes, of which the low 18 line up with Decrypt's input
// width.
func Sign(enc Encryptor, dec Decryptor, msg []byte) (counter uint32, ok bool) {
	preimage := make([]byte, len(msg)+3)
	copy(preimage, msg)

	for c := uint32(0); c < MaxCounter; c++ {
		preimage[len(msg)] = byte(c)
		preimage[len(msg)+1] = byte(c >> 8)
		preimage[len(msg)+2] = byte(c >> 16)

		hash := sha256.Sum256(preimage)

		var cipherIn [wbox.MixedRecord]byte
		copy(cipherIn[:], hash[:wbox.MixedRecord])

		var decrypted [wbox.PlaintextLen]byte
		dec.Decrypt(&decrypted, &cipherIn)

		var reencrypted [wbox.MixedRecord]byte
		enc.Encrypt(&reencrypted, &decrypted)

		if reencrypted == cipherIn {
			return c, true
		}
	}
	return 0, false
}
