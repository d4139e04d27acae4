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

package memory_test

import (
	"testing"

	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/hardware/memory"
	"github.com/dmgopher/dmgopher/hardware/memory/cpubus"
	"github.com/dmgopher/dmgopher/test"
)

func TestWorkingRAM(t *testing.T) {
	mem := memory.NewMemory()
	mem.Reset()

	test.ExpectedSuccess(t, mem.Write(0xc123, 0x42))
	v, err := mem.Read(0xc123)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x42)

	// the echo area reflects working RAM in both directions
	v, err = mem.Read(0xe123)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x42)

	test.ExpectedSuccess(t, mem.Write(0xe200, 0x24))
	v, _ = mem.Read(0xc200)
	test.Equate(t, v, 0x24)
}

func TestUnusableArea(t *testing.T) {
	mem := memory.NewMemory()
	mem.Reset()

	_, err := mem.Read(0xfea0)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, cpubus.AddressError), true)

	err = mem.Write(0xfeff, 0x00)
	test.ExpectedFailure(t, err)
}

func TestNoCartridge(t *testing.T) {
	mem := memory.NewMemory()
	mem.Reset()

	_, err := mem.Read(0x0100)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, cpubus.AddressError), true)
}

func TestInterruptRegisters(t *testing.T) {
	mem := memory.NewMemory()
	mem.Reset()

	test.ExpectedSuccess(t, mem.Write(0xffff, 0x1f))
	v, err := mem.Read(0xffff)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x1f)

	mem.RaiseInterrupt(0x04)
	mem.RaiseInterrupt(0x01)
	v, _ = mem.Read(0xff0f)
	test.Equate(t, v, 0x05)
}

// recorder implements cpubus.Memory, recording the accesses made to it.
type recorder struct {
	lastAddress uint16
	lastData    uint8
	value       uint8
}

func (r *recorder) Read(address uint16) (uint8, error) {
	r.lastAddress = address
	return r.value, nil
}

func (r *recorder) Write(address uint16, data uint8) error {
	r.lastAddress = address
	r.lastData = data
	return nil
}

func TestPeripheralDispatch(t *testing.T) {
	mem := memory.NewMemory()
	mem.Reset()

	rec := &recorder{value: 0x77}
	mem.AttachPeripheral(rec, 0xff40, 0xff41)

	v, err := mem.Read(0xff40)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x77)
	test.Equate(t, rec.lastAddress, 0xff40)

	test.ExpectedSuccess(t, mem.Write(0xff41, 0x12))
	test.Equate(t, rec.lastAddress, 0xff41)
	test.Equate(t, rec.lastData, 0x12)

	// an unattached register falls through to plain storage
	test.ExpectedSuccess(t, mem.Write(0xff42, 0x34))
	v, _ = mem.Read(0xff42)
	test.Equate(t, v, 0x34)
}

func TestBootOverlay(t *testing.T) {
	mem := memory.NewMemory()

	boot := make([]uint8, 0x100)
	boot[0x00] = 0xaa
	mem.AttachBoot(boot)
	mem.Reset()

	test.Equate(t, mem.BootEnabled(), true)
	v, err := mem.Read(0x0000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xaa)

	// a write to the boot disable register removes the overlay. with no
	// cartridge attached the read now errors
	test.ExpectedSuccess(t, mem.Write(0xff50, 0x01))
	test.Equate(t, mem.BootEnabled(), false)
	_, err = mem.Read(0x0000)
	test.ExpectedFailure(t, err)
}
