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

// Package logger is the central logging package for the application. Log
// entries are held in a bounded ring and can be echoed to an io.Writer as
// they arrive.
//
// Every call to Log() or Logf() is accompanied by a Permission. Permission
// is an interface that allows an entry to be suppressed depending on the
// state of the caller. The Allow value can be used when an entry should
// always be logged.
//
// Repeated identical entries are collapsed into a single entry with a repeat
// count.
package logger
