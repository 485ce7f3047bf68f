// internal/console/render.go
//
// Rendering of combinations, the board history and saved-game listings.
// Pegs are coloured with fatih/color from the palette; tables are drawn with
// lipgloss/table.

package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/palette"
	"github.com/robalobadob/mastermind/internal/profile"
	"github.com/robalobadob/mastermind/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	blackPeg    = color.New(color.FgHiWhite, color.Bold)
	whitePeg    = color.New(color.FgWhite)
)

// Renderer draws game state as text.
type Renderer struct {
	pal     *palette.Palette
	noColor bool
}

// NewRenderer returns a renderer for pal. With noColor set the output has no
// escape sequences, regardless of the terminal.
func NewRenderer(pal *palette.Palette, noColor bool) *Renderer {
	return &Renderer{pal: pal, noColor: noColor}
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if r.noColor {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

// Combination renders each dot as its number in the palette colour.
func (r *Renderer) Combination(c game.Combination) string {
	parts := make([]string, c.Len())
	for i := range parts {
		v := c.At(i)
		parts[i] = r.paint(color.New(r.pal.Entry(v).Attr), strconv.Itoa(v))
	}
	return strings.Join(parts, " ")
}

// Feedback renders black and white pegs as ● and ○.
func (r *Renderer) Feedback(f game.Feedback) string {
	if f.Black+f.White == 0 {
		return "-"
	}
	return r.paint(blackPeg, strings.Repeat("●", f.Black)) + r.paint(whitePeg, strings.Repeat("○", f.White))
}

// Legend lists the colour of every value in play.
func (r *Renderer) Legend(colors int) string {
	parts := make([]string, colors)
	for v := 1; v <= colors; v++ {
		e := r.pal.Entry(v)
		parts[v-1] = r.paint(color.New(e.Attr), fmt.Sprintf("%d=%s", v, e.Label))
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Board draws the history, one row per attempt.
func (r *Renderer) Board(history []game.Entry, cfg game.Config) string {
	t := r.table("#", "Guess", "Black", "White", "Pegs")
	for i, e := range history {
		t.Row(
			fmt.Sprintf("%d/%d", i+1, cfg.MaxAttempts),
			r.Combination(e.Guess),
			strconv.Itoa(e.Feedback.Black),
			strconv.Itoa(e.Feedback.White),
			r.Feedback(e.Feedback),
		)
	}
	return t.String()
}

// Games lists saved sessions.
func (r *Renderer) Games(records []store.Record) string {
	t := r.table("ID", "Profile", "Mode", "Dimension", "Attempts", "Status", "Updated")
	for _, rec := range records {
		sn := rec.Snapshot
		profile := rec.Profile
		if profile == "" {
			profile = "guest"
		}
		t.Row(
			rec.ID,
			profile,
			string(sn.Config.Mode),
			sn.Config.Dimension(),
			fmt.Sprintf("%d/%d", len(sn.Entries), sn.Config.MaxAttempts),
			sn.WinStatus.String(),
			rec.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}

// Leaderboard ranks one day's daily results.
func (r *Renderer) Leaderboard(rows []daily.LBRow) string {
	t := r.table("Rank", "Profile", "Result", "Attempts", "Time")
	for i, row := range rows {
		result := "lost"
		if row.Won {
			result = "won"
		}
		t.Row(
			strconv.Itoa(i+1),
			row.Profile,
			result,
			strconv.Itoa(row.Attempts),
			(time.Duration(row.ElapsedMs) * time.Millisecond).Round(time.Second).String(),
		)
	}
	return t.String()
}

// Profiles lists profiles with their statistics.
func (r *Renderer) Profiles(ps []profile.Profile) string {
	t := r.table("Profile", "Games", "Wins", "Win %", "Streak", "Password")
	for _, p := range ps {
		pw := "no"
		if p.HasPassword() {
			pw = "yes"
		}
		t.Row(p.Name, strconv.Itoa(p.GamesPlayed), strconv.Itoa(p.Wins), winRate(p), strconv.Itoa(p.Streak), pw)
	}
	return t.String()
}

func winRate(p profile.Profile) string {
	if p.GamesPlayed == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(p.Wins)/float64(p.GamesPlayed))
}
