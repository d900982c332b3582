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

package keystore

import (
	"os"
	"path/filepath"
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

// TestSaveLoadRoundTrip checks that save then load yields byte-identical
// tables and a decryptor functionally equivalent to the pre-save one.
func TestSaveLoadRoundTrip(t *testing.T) {
	enc, dec := newTestKeyPair(t)
	dir := t.TempDir()
	pubPath := filepath.Join(dir, "pub.bin")
	privPath := filepath.Join(dir, "priv.bin")

	if err := SavePublicKey(pubPath, enc.CombinedTables()); err != nil {
		t.Fatalf("SavePublicKey: %v", err)
	}
	if err := SavePrivateKey(privPath, dec.InverseTables2(), dec.InverseTables1(), dec.FinalTables()); err != nil {
		t.Fatalf("SavePrivateKey: %v", err)
	}

	ct, err := LoadPublicKey(pubPath)
	if err != nil {
		t.Fatalf("LoadPublicKey: %v", err)
	}
	if ct != enc.CombinedTables() {
		t.Fatal("loaded public key tables differ from the in-memory key")
	}

	it2, it1, ft, err := LoadPrivateKey(privPath)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if it2 != dec.InverseTables2() || it1 != dec.InverseTables1() || ft != dec.FinalTables() {
		t.Fatal("loaded private key tables differ from the in-memory key")
	}

	loadedEnc := wbox.NewEncryptionKeyFromTables(ct)
	loadedDec := wbox.NewDecryptionKeyFromTables(it2, it1, ft)

	var plaintext [wbox.PlaintextLen]byte
	copy(plaintext[:], "This is fast white-box cipher!!")

	var cipher [wbox.MixedRecord]byte
	loadedEnc.Encrypt(&cipher, &plaintext)

	var got [wbox.PlaintextLen]byte
	loadedDec.Decrypt(&got, &cipher)

	if got != plaintext {
		t.Fatalf("loaded keys did not round-trip: got %x, want %x", got, plaintext)
	}
}

func TestLoadPublicKeyRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.bin")
	if err := os.WriteFile(path, make([]byte, publicKeySize-1), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadPublicKey(path); err == nil {
		t.Fatal("LoadPublicKey accepted an undersized file")
	}
}
