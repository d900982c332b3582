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

import "math/big"

// plcmP is the PLCM break point; the map is symmetric about x = 0.5.
const plcmP = 0.15

// plcmPrecision is the big.Float mantissa width every chaos value is held
// at. Key generation is only reproducible across builds if this stays
// fixed.
const plcmPrecision = 256

// plcm evaluates the piecewise linear chaotic map at x with parameter p:
//
//	x/p                 0  <= x <= p
//	(x-p)/(0.5-p)        p  <  x <= 0.5
//	plcm(1-x, p)         0.5 < x <= 1
//
// x and p must share precision plcmPrecision.
func plcm(x, p *big.Float) *big.Float {
	prec := x.Prec()
	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)

	if x.Cmp(p) <= 0 {
		return new(big.Float).SetPrec(prec).Quo(x, p)
	}
	if x.Cmp(half) <= 0 {
		num := new(big.Float).SetPrec(prec).Sub(x, p)
		den := new(big.Float).SetPrec(prec).Sub(half, p)
		return num.Quo(num, den)
	}
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	folded := new(big.Float).SetPrec(prec).Sub(one, x)
	return plcm(folded, p)
}
