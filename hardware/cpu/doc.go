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

// Package cpu emulates the LR35902 (sometimes called the SM83) found in the
// original GameBoy. It is related to both the Intel 8080 and the Zilog Z80
// but is neither. The implementation is opcode accurate and instruction-level
// cycle accurate.
//
// The CPU is driven with the ExecuteInstruction() function. The cycle
// callback passed to that function is how the rest of the emulated hardware
// keeps in step with the CPU.
//
// Interrupts are serviced with the ServiceInterrupts() function, which the
// console wiring is expected to call between instructions.
package cpu
