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

package logger_test

import (
	"testing"

	"github.com/dmgopher/dmgopher/logger"
	"github.com/dmgopher/dmgopher/test"
)

func TestCentral(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare(""))

	logger.Log("test", "this is a test")
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare("test: this is a test\n"))

	tw.Clear()
	logger.Logf("test", "this is test %03d", 2)
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare("test: this is a test\ntest: this is test 002\n"))

	logger.Clear()
	tw.Clear()
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare(""))
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log("test", "same detail")
	logger.Log("test", "same detail")
	logger.Log("test", "same detail")
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare("test: same detail (repeat x3)\n"))
}

func TestTail(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log("test", "one")
	logger.Log("test", "two")
	logger.Log("test", "three")

	logger.Tail(tw, 2)
	test.ExpectedSuccess(t, tw.Compare("test: two\ntest: three\n"))

	// tail count larger than the number of entries writes everything
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectedSuccess(t, tw.Compare("test: one\ntest: two\ntest: three\n"))
}

func TestBorrowLog(t *testing.T) {
	logger.Clear()

	logger.Log("test", "one")
	logger.Log("test", "two")

	logger.BorrowLog(func(entries []logger.Entry) {
		test.Equate(t, len(entries), 2)
		test.Equate(t, entries[0].String(), "test: one\n")
		test.Equate(t, entries[1].String(), "test: two\n")
	})
}
