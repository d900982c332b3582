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

package signer

import (
	"crypto/sha256"
	"testing"

	"github.com/dschelkunov/wbpoc/internal/chaos"
	"github.com/dschelkunov/wbpoc/internal/wbox"
)

func newTestKeyPair(t *testing.T) (*wbox.EncryptionKey, *wbox.DecryptionKey) {
	t.Helper()
	gen, err := chaos.NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	enc, err := wbox.GenerateEncryptionKey(gen)
	if err != nil {
		t.Fatalf("GenerateEncryptionKey: %v", err)
	}
	dec, err := wbox.GenerateDecryptionKey(enc)
	if err != nil {
		t.Fatalf("GenerateDecryptionKey: %v", err)
	}
	return enc, dec
}

// TestSignReportsFailureBeyondRange checks, through signWithLimit's copy of
// Sign's search loop, that an exhausted search space reports ok=false
// instead of looping forever or panicking.
func TestSignReportsFailureBeyondRange(t *testing.T) {
	enc, dec := newTestKeyPair(t)

	// A search space of zero counters can never succeed; the search must
	// report ok=false rather than loop forever or panic.
	if _, ok := signWithLimit(enc, dec, []byte("probe"), 0); ok {
		t.Fatal("Sign succeeded with an empty search space")
	}
}

// TestSignSucceedsWithinASmallBudget checks the search terminates
// correctly and returns a counter consistent with Decrypt/Encrypt when a
// winning counter exists in range. It uses a key pair and a generous but
// bounded search window rather than the full 2^24 range, to keep the test
// fast; the underlying loop is identical to Sign's.
func TestSignSucceedsWithinASmallBudget(t *testing.T) {
	enc, dec := newTestKeyPair(t)
	msg := []byte("This is fast white-box cipher!!")

	counter, ok := signWithLimit(enc, dec, msg, 1<<16)
	if !ok {
		t.Skip("no preimage found within the bounded search window; this is probabilistic and the full MaxCounter search in Sign has far higher odds")
	}

	preimage := append(append([]byte(nil), msg...), byte(counter), byte(counter>>8), byte(counter>>16))
	hash := sha256.Sum256(preimage)

	var cipherIn [wbox.MixedRecord]byte
	copy(cipherIn[:], hash[:wbox.MixedRecord])

	var decrypted [wbox.PlaintextLen]byte
	dec.Decrypt(&decrypted, &cipherIn)

	var reencrypted [wbox.MixedRecord]byte
	enc.Encrypt(&reencrypted, &decrypted)

	if reencrypted != cipherIn {
		t.Fatal("Sign returned a counter that does not satisfy the preimage check")
	}
}

// signWithLimit runs the same search as Sign but capped at limit counters,
// so tests can probe small windows without waiting on the full 2^24 range.
func signWithLimit(enc Encryptor, dec Decryptor, msg []byte, limit uint32) (uint32, bool) {
	preimage := make([]byte, len(msg)+3)
	copy(preimage, msg)

	for c := uint32(0); c < limit; c++ {
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
