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

package chaos

import (
	"math/big"
	"sort"
	"testing"
)

func TestNewSeedInRange(t *testing.T) {
	one := new(big.Float).SetPrec(plcmPrecision).SetInt64(1)
	for i := 0; i < 8; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed: %v", err)
		}
		if seed.Sign() <= 0 {
			t.Fatalf("seed not positive: %v", seed)
		}
		if seed.Cmp(one) >= 0 {
			t.Fatalf("seed not below 1: %v", seed)
		}
	}
}

func TestPermutationIsBijection(t *testing.T) {
	g, err := NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	for _, n := range []int{16, 256} {
		perm, err := g.Permutation(n)
		if err != nil {
			t.Fatalf("Permutation(%d): %v", n, err)
		}
		if len(perm) != n {
			t.Fatalf("Permutation(%d) has length %d", n, len(perm))
		}
		seen := make([]int, len(perm))
		for i, v := range perm {
			seen[i] = int(v)
		}
		sort.Ints(seen)
		for i, v := range seen {
			if v != i {
				t.Fatalf("Permutation(%d) is not a bijection: sorted = %v", n, seen)
			}
		}
	}
}

// TestGeneratorFromEntropyIsDeterministic checks that two generators built
// from the same explicit entropy string draw identical permutations.
func TestGeneratorFromEntropyIsDeterministic(t *testing.T) {
	entropy := make([]byte, 32)
	for i := range entropy {
		entropy[i] = byte(i)
	}

	g1, err := NewGeneratorFromEntropy(entropy)
	if err != nil {
		t.Fatalf("NewGeneratorFromEntropy: %v", err)
	}
	g2, err := NewGeneratorFromEntropy(entropy)
	if err != nil {
		t.Fatalf("NewGeneratorFromEntropy: %v", err)
	}

	p1, err := g1.Permutation(256)
	if err != nil {
		t.Fatalf("Permutation: %v", err)
	}
	p2, err := g2.Permutation(256)
	if err != nil {
		t.Fatalf("Permutation: %v", err)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("same entropy produced different permutations at index %d: %d vs %d", i, p1[i], p2[i])
		}
	}
}

func TestGeneratorFromEntropyRejectsWrongLength(t *testing.T) {
	if _, err := NewGeneratorFromEntropy(make([]byte, 16)); err == nil {
		t.Fatal("NewGeneratorFromEntropy accepted a 16-byte entropy string")
	}
}

func TestPermutationAdvancesSeed(t *testing.T) {
	g, err := NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	first, err := g.Permutation(16)
	if err != nil {
		t.Fatalf("Permutation: %v", err)
	}
	second, err := g.Permutation(16)
	if err != nil {
		t.Fatalf("Permutation: %v", err)
	}
	equal := true
	for i := range first {
		if first[i] != second[i] {
			equal = false
			break
		}
	}
	if equal {
		t.Fatal("two successive permutation draws were identical")
	}
}

// TestBytesIndependentOfPermutationSeed checks that two generators built
// from the same entropy, and so holding the same chaotic seed, still draw
// different Bytes.
func TestBytesIndependentOfPermutationSeed(t *testing.T) {
	entropy := make([]byte, 32)
	for i := range entropy {
		entropy[i] = byte(i)
	}
	g1, err := NewGeneratorFromEntropy(entropy)
	if err != nil {
		t.Fatalf("NewGeneratorFromEntropy: %v", err)
	}
	g2, err := NewGeneratorFromEntropy(entropy)
	if err != nil {
		t.Fatalf("NewGeneratorFromEntropy: %v", err)
	}
	a, err := g1.Bytes(16)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	b, err := g2.Bytes(16)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	equal := true
	for i := range a {
		if a[i] != b[i] {
			equal = false
			break
		}
	}
	if equal {
		t.Fatal("two generators with the same chaotic seed drew identical Bytes")
	}
}
