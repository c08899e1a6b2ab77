package infrastructure

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// Console renders measurements and status messages for a human operator.
// Summaries, debug dumps and status lines go to out; warnings and failures to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer

	status   *color.Color
	progress *color.Color
	warn     *color.Color
	fail     *color.Color
	tiers    map[monitorDomain.AqiTier]*color.Color
	fallback *color.Color

	frameTitle lipgloss.Style
	frameBox   lipgloss.Style
}

// IsTerminal reports whether f is an interactive terminal that accepts colour.
func IsTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Debug prints every attribute of the raw frame in a box titled with the device.
func (c *Console) Debug(device monitorDomain.Device, m monitorDomain.Measurement) {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s | %s\n", fmt.Sprintf("Header : %c %c", m.HeaderHigh, m.HeaderLow), fmt.Sprintf("Frame length : %d", m.FrameLength))
	fmt.Fprintf(&b, "%-24s | PM 1.0 : %d\n", fmt.Sprintf("PM 1.0 (CF=1) : %d", m.PM1CF1), m.PM1Atm)
	fmt.Fprintf(&b, "%-24s | PM 2.5 : %d\n", fmt.Sprintf("PM 2.5 (CF=1) : %d", m.PM25CF1), m.PM25Atm)
	fmt.Fprintf(&b, "%-24s | PM 10.0 : %d\n", fmt.Sprintf("PM 10.0 (CF=1) : %d", m.PM10CF1), m.PM10Atm)
	fmt.Fprintf(&b, "0.3um in 0.1L of air : %d\n", m.Count03)
	fmt.Fprintf(&b, "0.5um in 0.1L of air : %d\n", m.Count05)
	fmt.Fprintf(&b, "1.0um in 0.1L of air : %d\n", m.Count1)
	fmt.Fprintf(&b, "2.5um in 0.1L of air : %d\n", m.Count25)
	fmt.Fprintf(&b, "5.0um in 0.1L of air : %d\n", m.Count5)
	fmt.Fprintf(&b, "10um in 0.1L of air : %d\n", m.Count10)
	fmt.Fprintf(&b, "Reserved F : %d | Reserved B : %d\n", m.Reserved>>8, m.Reserved&0xff)
	fmt.Fprintf(&b, "CHKSUM : %d", m.Checksum)

	title := c.frameTitle.Render(fmt.Sprintf("%s (%s)", device.ID(), device.Port()))
	fmt.Fprintln(c.out, lipgloss.JoinVertical(lipgloss.Left, title, c.frameBox.Render(b.String())))
}

// Summary prints the atmospheric concentrations and the AQI category,
// coloured by severity.
func (c *Console) Summary(_ monitorDomain.Device, m monitorDomain.Measurement, category monitorDomain.AqiCategory) {
	tier := c.tierColor(category.Tier)
	fmt.Fprintf(c.out, "PM 1.0: %d  PM 2.5: %s  PM 10: %d  AQI: %s\n",
		m.PM1Atm, tier.Sprint(m.PM25Atm), m.PM10Atm, tier.Sprint(category.Description()))
}

// Status prints an informational line.
func (c *Console) Status(format string, args ...interface{}) {
	_, _ = c.status.Fprintf(c.out, format+"\n", args...)
}

// Progress prints a line marking that work has started.
func (c *Console) Progress(format string, args ...interface{}) {
	_, _ = c.progress.Fprintf(c.out, format+"\n", args...)
}

// Warn prints a non-fatal problem.
func (c *Console) Warn(format string, args ...interface{}) {
	_, _ = c.warn.Fprintf(c.errOut, format+"\n", args...)
}

// Fail prints a problem that ends the program.
func (c *Console) Fail(format string, args ...interface{}) {
	_, _ = c.fail.Fprintf(c.errOut, format+"\n", args...)
}

func (c *Console) tierColor(tier monitorDomain.AqiTier) *color.Color {
	if style, ok := c.tiers[tier]; ok {
		return style
	}
	return c.fallback
}

// NewConsole creates a Console. When colour is false all output is plain text.
func NewConsole(out, errOut io.Writer, colour bool) *Console {
	renderer := lipgloss.NewRenderer(out)
	if !colour {
		renderer.SetColorProfile(termenv.Ascii)
	}

	c := &Console{
		out:      out,
		errOut:   errOut,
		status:   color.New(color.FgBlue),
		progress: color.New(color.FgGreen),
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed),
		tiers: map[monitorDomain.AqiTier]*color.Color{
			monitorDomain.TierGood:                        color.New(color.FgGreen),
			monitorDomain.TierModerate:                    color.New(color.FgYellow),
			monitorDomain.TierUnhealthyForSensitiveGroups: color.New(color.FgHiYellow),
			monitorDomain.TierUnhealthy:                   color.New(color.FgRed),
			monitorDomain.TierVeryUnhealthy:               color.New(color.FgHiRed),
			monitorDomain.TierHazardous:                   color.New(color.FgMagenta),
		},
		fallback:   color.New(color.FgMagenta),
		frameTitle: renderer.NewStyle().Bold(true),
		frameBox:   renderer.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
	}

	styles := []*color.Color{c.status, c.progress, c.warn, c.fail, c.fallback}
	for _, style := range c.tiers {
		styles = append(styles, style)
	}
	for _, style := range styles {
		if colour {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
	}
	return c
}
