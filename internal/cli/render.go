package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/reveal"
	"github.com/rcliao/cosmic-whispers/internal/session"
	"github.com/rcliao/cosmic-whispers/internal/zodiac"
)

var (
	accent  = lipgloss.Color("220")
	purple  = lipgloss.Color("57")
	textDim = lipgloss.Color("146")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle     = lipgloss.NewStyle().Foreground(textDim)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(textDim)
	activeTab    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(accent).Background(purple)
	cursorStyle  = lipgloss.NewStyle().Background(accent)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(purple).Padding(0, 1)
)

// header renders the reading title block.
func header(r model.AstrologyReading) string {
	d := r.UserDetails
	born := "the chosen date"
	if d.BirthDate != nil {
		born = d.BirthDate.Format("January 2, 2006")
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Madame Nebula's Reading"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("For a soul born on %s at %s in %s", born, d.BirthTime, d.BirthLocation)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %s · %s",
		zodiac.Resolve(d.BirthDate), d.ReadingType.Label(), r.CreatedAt().Format("January 2, 2006"))))
	return b.String()
}

func sectionTitle(title string) string {
	return titleStyle.Render("✦ " + title)
}

// printReading writes a whole reading at once.
func printReading(w io.Writer, r model.AstrologyReading) {
	fmt.Fprintln(w, header(r))
	for _, s := range r.Sections {
		fmt.Fprintf(w, "\n%s\n\n%s\n", sectionTitle(s.Title), s.Content)
	}
}

// streamReading walks the current reading section by section, writing each
// section's text as the revealer discloses it. wake receives a signal after
// every reveal change.
func streamReading(ctx context.Context, w io.Writer, c *session.Controller, wake <-chan struct{}) error {
	v := c.View()
	if v.Reading == nil {
		return fmt.Errorf("no current reading")
	}
	r := *v.Reading

	fmt.Fprintln(w, header(r))
	for i, s := range r.Sections {
		c.JumpTo(i)
		fmt.Fprintf(w, "\n%s\n\n", sectionTitle(s.Title))

		printed := 0
		for {
			snap := c.View().Reveal
			if len(snap.Text) > printed {
				fmt.Fprint(w, snap.Text[printed:])
				printed = len(snap.Text)
			}
			if snap.Source == s.Content && snap.Phase == reveal.Complete {
				break
			}
			select {
			case <-ctx.Done():
				fmt.Fprintln(w)
				return ctx.Err()
			case <-wake:
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

// wakeOnChange returns a reveal option that signals the returned channel on
// every change without blocking the revealer.
func wakeOnChange() (reveal.Option, <-chan struct{}) {
	wake := make(chan struct{}, 1)
	return reveal.WithOnChange(func(reveal.Snapshot) {
		select {
		case wake <- struct{}{}:
		default:
		}
	}), wake
}
