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

// Package buffer implements the audio buffers that collect the output of the
// POKEY. A buffer is a run of bytes in one of the sample formats supported by
// the audio back-ends. The format is chosen once, when the back-end is opened,
// and does not change for the lifetime of the buffer.
//
// The POKEY produces signed 8bit samples. The buffer converts each sample to
// the format of the buffer as it is written with PutSample() and back again
// with GetSample().
//
// In the interleaved formats, the buffer has room for two chips. The first
// chip writes to the first slot of each sample and skips over the second
// slot. The second chip writes to the second slot by starting at the offset
// returned by ChannelOffset().
package buffer
