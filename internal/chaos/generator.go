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
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const (
	permLeft  = 0.1
	permRight = 0.9
)

// Permutation is a bijection {0,...,n-1} -> {0,...,n-1}: position i holds
// the image of i.
type Permutation []byte

// Generator holds the chaotic seed explicitly, as an object passed by
// reference, rather than as process-global mutable state. Two Generators
// drawn from independent NewGenerator calls can run key generation
// concurrently without racing; a single Generator is not safe for
// concurrent use, since every permutation draw advances its seed in place.
type Generator struct {
	seed *big.Float
	p    *big.Float
}

// NewGenerator draws a fresh seed from the platform CSPRNG and normalizes
// it into (0,1) with one PLCM iteration before returning, per the RNG
// contract's "normalize before first use" requirement.
func NewGenerator() (*Generator, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	p := new(big.Float).SetPrec(plcmPrecision).SetFloat64(plcmP)
	return &Generator{seed: plcm(seed, p), p: p}, nil
}

// NewGeneratorFromEntropy builds a Generator from an explicit 32-byte
// entropy string instead of the platform CSPRNG. Deterministic: the same
// entropy yields the same sequence of permutation draws. Raw byte draws
// (Bytes) stay CSPRNG-backed regardless of how the chaotic seed was made.
func NewGeneratorFromEntropy(raw []byte) (*Generator, error) {
	seed, err := seedFromEntropy(raw)
	if err != nil {
		return nil, err
	}
	p := new(big.Float).SetPrec(plcmPrecision).SetFloat64(plcmP)
	return &Generator{seed: plcm(seed, p), p: p}, nil
}

// Permutation draws P(n), a random bijection of {0,...,n-1}, by iterating
// the chaotic map until n distinct slots in [0,n) have been filled. n must
// be at most 256, so that a drawn index fits in a byte.
func (g *Generator) Permutation(n int) (Permutation, error) {
	if n <= 0 || n > 256 {
		return nil, errors.Errorf("chaos: permutation size %d out of range (0,256]", n)
	}

	left := new(big.Float).SetPrec(plcmPrecision).SetFloat64(permLeft)
	right := new(big.Float).SetPrec(plcmPrecision).SetFloat64(permRight)
	delta := new(big.Float).SetPrec(plcmPrecision).Sub(right, left)
	delta.Quo(delta, new(big.Float).SetPrec(plcmPrecision).SetInt64(int64(n)))

	used := make([]bool, n)
	out := make(Permutation, n)
	x := g.seed

	for cnt := 0; cnt < n; {
		x = plcm(x, g.p)

		diff := new(big.Float).SetPrec(plcmPrecision).Sub(x, left)
		// Int truncates toward zero, which would round x slightly below
		// left up to slot 0; floor semantics require skipping it instead.
		if diff.Sign() < 0 {
			continue
		}
		diff.Quo(diff, delta)
		idxInt, _ := diff.Int(nil)
		if !idxInt.IsInt64() {
			continue
		}
		idx := int(idxInt.Int64())
		if idx < 0 || idx >= n || used[idx] {
			continue
		}

		used[idx] = true
		out[cnt] = byte(idx)
		cnt++
	}

	g.seed = x
	return out, nil
}

// Bytes draws n uniform random bytes directly from the platform CSPRNG,
// independent of the PLCM seed. Used by the invertible matrix sampler,
// which needs raw entropy rather than a chaotic permutation.
func (g *Generator) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "chaos: reading random bytes")
	}
	return buf, nil
}
