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

// Package registers implements the registers found in the LR35902 processor:
// the 8 bit general purpose registers A, B, C, D, E, H and L; the flags
// register; and the 16 bit program counter and stack pointer.
//
// The 8 bit registers are frequently used in high/low pairs (AF, BC, DE and
// HL) to form 16 bit values. Pair composition is handled by the cpu package;
// registers here are plain value containers with the bit level operations
// that the instruction set needs.
package registers
