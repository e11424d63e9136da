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

// Package sound connects the POKEY to an audio device. The Manager collects
// the samples produced by the chips in buffers and hands them to the device.
//
// The device consumes samples at a rate decided by the real clock while the
// chips produce samples at a rate decided by the emulated clock. The Manager
// adjusts the rate at which samples are produced so that the number of
// samples waiting to be played stays near the size of the device buffer.
//
// Tick() should be called once per scanline and UpdateSound() once per
// frame. UpdateSound() is the only function that waits. It does so by calling
// the wait function supplied by the caller.
//
// Devices that are driven by their own goroutine read from the Manager with
// Read(). Devices that must be fed from the emulation are polled on every
// Tick().
package sound
