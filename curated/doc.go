// This file is part of DMGopher.
//
// DMGopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DMGopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DMGopher.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like fmt.Errorf() it
// takes a formatting pattern and placeholder values and returns an error. The
// pattern however is retained and is what distinguishes one curated error
// from another.
//
// The Is() function checks whether an error was created by Errorf() with a
// specific pattern:
//
//	e := curated.Errorf("lcd: bad scanline (%d)", sl)
//
//	if curated.Is(e, "lcd: bad scanline (%d)") {
//		...
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// error chain, which is useful when a curated error has been wrapped inside
// another curated error. IsAny() simply answers whether the error is curated
// at all - a convenient proxy for whether the error was "expected".
//
// The Error() function normalises the message chain by removing duplicate
// adjacent parts. Parts are the substrings separated by ": ", as suggested on
// p239 of "The Go Programming Language" (Donovan, Kernighan). This means
// functions can wrap errors from deeper in the same package without the
// package prefix stuttering in the printed message.
//
// There is no special provision for sentinel errors but the same effect is
// achieved with Is()/Has() and a pattern stored as a const string.
package curated
