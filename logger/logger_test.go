// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	var w strings.Builder
	logger.Tail(&w, 100)
	test.ExpectEquality(t, w.String(), "")

	logger.Log(logger.Allow, "test", "this is a test")
	w.Reset()
	logger.Tail(&w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	logger.Log(logger.Deny, "test", "this is never seen")
	w.Reset()
	logger.Tail(&w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	// repeated entries are collapsed
	logger.Log(logger.Allow, "test", "this is a test")
	w.Reset()
	logger.Tail(&w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test (repeat x2)\n")

	logger.Logf(logger.Allow, "test2", "number %d", 10)
	w.Reset()
	logger.Tail(&w, 1)
	test.ExpectEquality(t, w.String(), "test2: number 10\n")

	test.ExpectEquality(t, len(logger.Entries()), 2)
}

func TestLoggerEcho(t *testing.T) {
	logger.Clear()

	var w strings.Builder
	logger.Log(logger.Allow, "before", "echo")
	logger.SetEcho(&w, true)
	logger.Log(logger.Allow, "after", "echo")
	logger.SetEcho(nil, false)
	logger.Log(logger.Allow, "stopped", "echo")

	test.ExpectEquality(t, w.String(), "before: echo\nafter: echo\n")
}
