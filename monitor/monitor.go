// Package monitor prints the state of the chips and of the sound manager.
package monitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/sap"
	"github.com/jetsetilly/pokeyplay/sound"
)

// Monitor writes styled status output.
type Monitor struct {
	w      io.Writer
	styles styles
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(w io.Writer) *Monitor {
	return &Monitor{
		w:      w,
		styles: newStyles(),
	}
}

type field struct {
	label string
	value string
}

// a grid of fields. each row is rendered as a line of label/value pairs
func (m *Monitor) grid(rows [][]field) string {
	var s strings.Builder
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, f := range row {
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top,
				m.styles.label.Width(12).Render(f.label),
				m.styles.value.Width(8).Render(f.value),
			))
		}
		s.WriteString("  ")
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		s.WriteString("\n")
	}
	return s.String()
}

func hex(v uint8) string {
	return fmt.Sprintf("%02x", v)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Chip prints the status of a chip.
func (m *Monitor) Chip(s pokey.Status) {
	fmt.Fprintln(m.w, m.styles.title.Render(fmt.Sprintf(" %s Status ", s.Label)))

	var freq, ctrl, div []field
	for n, ch := range s.Channels {
		freq = append(freq, field{fmt.Sprintf("AudioFreq%d", n), hex(ch.Freq)})
		ctrl = append(ctrl, field{fmt.Sprintf("AudioCtrl%d", n), hex(ch.AUDC())})
		d := fmt.Sprintf("%d", s.Divisors[n])
		if s.Muted[n] {
			d = m.styles.muted.Render("muted")
		}
		div = append(div, field{fmt.Sprintf("Divisor%d", n), d})
	}

	fmt.Fprint(m.w, m.grid([][]field{
		freq,
		ctrl,
		div,
		{
			{"AudioCtrl", hex(s.AUDCTL)},
			{"SkStat", hex(s.SkStat)},
			{"SkCtrl", hex(s.SkCtrl)},
			{"KeyCode", hex(s.KBCode)},
		},
		{
			{"IRQStat", hex(s.IRQStat)},
			{"IRQEnable", hex(s.IRQEnable)},
			{"LevelShift", fmt.Sprintf("%d", s.LevelShift)},
		},
		{
			{"SerInDly", fmt.Sprintf("%d", s.SerInDelay)},
			{"SerOutDly", fmt.Sprintf("%d", s.SerOutDelay)},
			{"SerXmtDly", fmt.Sprintf("%d", s.SerXmtDelay)},
		},
		{
			{"SerInCnt", fmt.Sprintf("%d", s.SerInCnt)},
			{"SerOutCnt", fmt.Sprintf("%d", s.SerOutCnt)},
			{"SerXmtCnt", fmt.Sprintf("%d", s.SerXmtCnt)},
		},
		{
			{"SerInBytes", fmt.Sprintf("%d", s.SerInBytes)},
		},
	}))
}

// Sound prints the status of the sound manager.
func (m *Monitor) Sound(cfg sound.Config, s sound.Status) {
	fmt.Fprintln(m.w, m.styles.title.Render(" Audio Output Status "))

	rate := m.styles.rate.Render(fmt.Sprintf("%dHz", s.EffectiveFreq))
	if s.DifferentialAdjust != 0 {
		rate = fmt.Sprintf("%s %s", rate, m.styles.overrun.Render(fmt.Sprintf("(%+d)", s.DifferentialAdjust)))
	}

	lines := []field{
		{"Console speaker enable", onOff(cfg.ConsoleSpeaker)},
		{"Console speaker volume", fmt.Sprintf("%d", cfg.ConsoleVolume)},
		{"Sampling frequency", fmt.Sprintf("%dHz", cfg.SamplingFreq)},
		{"Fragment size exponent", fmt.Sprintf("%d", cfg.FragSize)},
		{"Number of fragments", fmt.Sprintf("%d", cfg.NumFrags)},
		{"Sample format", cfg.Format.String()},
		{"Buffered samples", fmt.Sprintf("%d", s.Buffered)},
		{"Effective frequency", rate},
		{"Overruns", m.styles.overrun.Render(fmt.Sprintf("%d", s.Overruns))},
		{"Underruns", m.styles.underrun.Render(fmt.Sprintf("%d", s.Underruns))},
		{"Silent samples", fmt.Sprintf("%d", s.Silence)},
	}
	if cfg.FixedRate {
		lines = append(lines, field{"Rate adaptation", m.styles.muted.Render("off")})
	}

	for _, f := range lines {
		fmt.Fprintf(m.w, "  %s %s\n", m.styles.label.Width(24).Render(f.label), f.value)
	}
}

// Song prints the header of a SAP file.
func (m *Monitor) Song(h sap.Header) {
	fmt.Fprintln(m.w, m.styles.title.Render(" Song "))
	for _, f := range []field{
		{"Name", h.Name},
		{"Author", h.Author},
		{"Date", h.Date},
		{"Type", string(h.Type)},
		{"Songs", fmt.Sprintf("%d", h.Songs)},
		{"Stereo", onOff(h.Stereo)},
		{"NTSC", onOff(h.NTSC)},
		{"FastPlay", fmt.Sprintf("%d", h.FastPlay)},
	} {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(m.w, "  %s %s\n", m.styles.label.Width(12).Render(f.label), m.styles.info.Render(f.value))
	}
}

// Error prints the error.
func (m *Monitor) Error(err error) {
	fmt.Fprintln(m.w, m.styles.err.Render(err.Error()))
}
