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

// Package chaos draws the permutations consumed by internal/wbox from a
// piecewise linear chaotic map (PLCM) iterated over a 256-bit-mantissa real,
// and the raw invertible-matrix bytes consumed by internal/bmatrix straight
// from the platform CSPRNG.
package chaos

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	seedEntropyBytes = 32
	seedSaltLabel    = "wbpoc-chaos-seed"
	seedIterations   = 4096
)

// NewSeed draws 32 bytes from the platform CSPRNG, whitens them through
// PBKDF2-HMAC-SHA256, and converts the result into a real in (0,1): the
// whitened bytes become a decimal digit string, a point is inserted after
// the 4th digit, and the whole value is scaled by 10^-4.
func NewSeed() (*big.Float, error) {
	raw := make([]byte, seedEntropyBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.Wrap(err, "chaos: reading seed entropy")
	}
	return seedFromEntropy(raw)
}

// seedFromEntropy whitens and formats an explicit 32-byte entropy string
// into a seed in (0,1). Deterministic: the same entropy always yields the
// same seed.
func seedFromEntropy(raw []byte) (*big.Float, error) {
	if len(raw) != seedEntropyBytes {
		return nil, errors.Errorf("chaos: seed entropy must be %d bytes, got %d", seedEntropyBytes, len(raw))
	}

	whitened := pbkdf2.Key(raw, []byte(seedSaltLabel), seedIterations, seedEntropyBytes, sha256.New)

	digits := new(big.Int).SetBytes(whitened).String()
	if len(digits) < 5 {
		digits = strings.Repeat("0", 5-len(digits)) + digits
	}
	mantissa := digits[:4] + "." + digits[4:]

	f, _, err := big.ParseFloat(mantissa, 10, plcmPrecision, big.ToNearestEven)
	if err != nil {
		return nil, errors.Wrap(err, "chaos: parsing seed mantissa")
	}
	scale := new(big.Float).SetPrec(plcmPrecision).SetInt64(10000)
	f.Quo(f, scale)
	return f, nil
}
