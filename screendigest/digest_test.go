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

package screendigest_test

import (
	"testing"

	"github.com/dmgopher/dmgopher/hardware/screen"
	"github.com/dmgopher/dmgopher/screendigest"
	"github.com/dmgopher/dmgopher/test"
)

func TestChainedDigest(t *testing.T) {
	dig := screendigest.NewSHA1()
	fresh := dig.Hash()

	test.ExpectedSuccess(t, dig.SetPixel(10, 20, screen.Black))
	test.ExpectedSuccess(t, dig.NewFrame(1))
	test.Equate(t, dig.Frame(), 1)

	first := dig.Hash()
	if first == fresh {
		t.Error("digest did not change after a frame was rendered")
	}

	// digests chain: an identical frame produces a different fingerprint
	// because the previous digest is folded in
	test.ExpectedSuccess(t, dig.SetPixel(10, 20, screen.Black))
	test.ExpectedSuccess(t, dig.NewFrame(2))
	if dig.Hash() == first {
		t.Error("digest did not chain from the previous frame")
	}
}

func TestResetDigest(t *testing.T) {
	a := screendigest.NewSHA1()
	b := screendigest.NewSHA1()

	test.ExpectedSuccess(t, a.SetPixel(5, 5, screen.DarkGrey))
	test.ExpectedSuccess(t, a.NewFrame(1))
	test.ExpectedSuccess(t, b.SetPixel(5, 5, screen.DarkGrey))
	test.ExpectedSuccess(t, b.NewFrame(1))
	test.Equate(t, a.Hash(), b.Hash())

	// after a reset the two renderers diverge on the next frame
	a.ResetDigest()
	test.ExpectedSuccess(t, a.NewFrame(2))
	test.ExpectedSuccess(t, b.NewFrame(2))
	if a.Hash() == b.Hash() {
		t.Error("expected digests to diverge after reset")
	}
}

func TestOutOfRangePixel(t *testing.T) {
	dig := screendigest.NewSHA1()

	// pixels outside the visible screen are dropped, not a panic
	test.ExpectedSuccess(t, dig.SetPixel(0, screen.Height, screen.Black))
	test.ExpectedSuccess(t, dig.NewFrame(1))
}
