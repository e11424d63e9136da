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

package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// the maximum number of entries held by the central logger
const maxEntries = 256

// Entry represents a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s: %s", e.Tag, e.Detail)
	if e.Repeated > 0 {
		s = fmt.Sprintf("%s (repeat x%d)", s, e.Repeated+1)
	}
	return s
}

type logger struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

var central = &logger{
	entries: make([]Entry, 0, maxEntries),
}

func (l *logger) log(tag string, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// multi-line details are collapsed onto one line
	detail = strings.TrimSpace(detail)
	detail = strings.ReplaceAll(detail, "\n", " ")

	if len(l.entries) > 0 {
		last := &l.entries[len(l.entries)-1]
		if last.Tag == tag && last.Detail == detail {
			last.Repeated++
			return
		}
	}

	e := Entry{
		Timestamp: time.Now(),
		Tag:       tag,
		Detail:    detail,
	}

	if len(l.entries) >= maxEntries {
		l.entries = append(l.entries[:0], l.entries[1:]...)
	}
	l.entries = append(l.entries, e)

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
		io.WriteString(l.echo, "\n")
	}
}

func (l *logger) tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if output == nil {
		return
	}

	n := len(l.entries)
	if number >= 0 && number < n {
		n = number
	}

	for _, e := range l.entries[len(l.entries)-n:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

func (l *logger) setEcho(output io.Writer, replay bool) {
	l.crit.Lock()
	l.echo = output
	l.crit.Unlock()

	if replay {
		l.tail(output, -1)
	}
}

func (l *logger) clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
}

func (l *logger) copy() []Entry {
	l.crit.Lock()
	defer l.crit.Unlock()
	c := make([]Entry, len(l.entries))
	copy(c, l.entries)
	return c
}

// Log adds an entry to the central logger. The detail argument can be a
// string, an error, a fmt.Stringer or any other value that can be formatted
// with the %v verb.
func Log(perm Permission, tag string, detail any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	switch d := detail.(type) {
	case string:
		central.log(tag, d)
	case error:
		central.log(tag, d.Error())
	case fmt.Stringer:
		central.log(tag, d.String())
	default:
		central.log(tag, fmt.Sprintf("%v", d))
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag string, format string, args ...any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	central.log(tag, fmt.Sprintf(format, args...))
}

// Tail writes the last number of entries to the io.Writer. A negative number
// writes every entry.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho prints new entries to the io.Writer as they are created. If replay
// is true then existing entries are written first. A nil io.Writer stops the
// echo.
func SetEcho(output io.Writer, replay bool) {
	central.setEcho(output, replay)
}

// Clear all entries from the central logger.
func Clear() {
	central.clear()
}

// Entries returns a copy of the current entries.
func Entries() []Entry {
	return central.copy()
}
