package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ametelin/linkwar/internal/director"
	"github.com/ametelin/linkwar/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	troopStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	eliteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	bossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	enemyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	feedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	wonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// laneTrackWidth is the rendered length of one lane in cells.
const laneTrackWidth = 50

func (m Model) renderDashboard() string {
	d := m.director
	var sb strings.Builder

	tierID := "default"
	if t := d.Tier(); t != nil {
		tierID = t.ID
	}
	sb.WriteString(titleStyle.Render("linkwar"))
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  tier %s  seed %d  speed x%g", tierID, m.opts.Seed, m.speed)))
	if m.paused {
		sb.WriteString(hotStyle.Render("  [paused]"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("wave %d/%d", d.WaveIndex(), d.TotalWaves()))
	if d.BetweenWaves() {
		sb.WriteString(labelStyle.Render("  (regrouping)"))
	}
	if mods := d.Plan().ModifierIDs; len(mods) > 0 {
		sb.WriteString(labelStyle.Render("  modifiers: " + strings.Join(mods, ", ")))
	}
	sb.WriteString("\n")

	if base := d.Base(); base != nil {
		sb.WriteString(hpStyle.Render(gauge("base hp", base.HP, base.MaxHP)))
		sb.WriteString("\n")
		sb.WriteString(troopStyle.Render(gauge("troops ", base.Troops, base.MaxTroops)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	m.renderLanes(&sb)

	stats := d.Stats()
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(fmt.Sprintf(
		"spawned %d  destroyed %d  leaked %d  gold %d  t=%.0fs",
		stats.PacketsSpawned, stats.PacketsDestroyed, stats.Arrivals, stats.GoldEarned, d.ClockSec(),
	)))
	sb.WriteString("\n")

	for _, line := range m.feed {
		sb.WriteString(feedStyle.Render("  " + line))
		sb.WriteString("\n")
	}

	switch d.Outcome() {
	case director.OutcomeVictory:
		sb.WriteString("\n" + wonStyle.Render("  VICTORY: all waves cleared") + "\n")
	case director.OutcomeDefeat:
		sb.WriteString("\n" + lostStyle.Render("  DEFEAT: base captured") + "\n")
	}

	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

// renderLanes draws one track per scripted lane link, with packets placed by
// their progress. A lane whose link was destroyed renders as severed.
func (m Model) renderLanes(sb *strings.Builder) {
	w := m.director.World()

	var lanes []*sim.Link
	for _, l := range w.Links() {
		if l.IsScripted && !l.HideInRender {
			lanes = append(lanes, l)
		}
	}

	for _, lane := range lanes {
		track := make([]rune, laneTrackWidth)
		for i := range track {
			track[i] = '·'
		}
		styles := make(map[int]lipgloss.Style)

		for _, p := range w.Packets() {
			if p.LinkID != lane.ID {
				continue
			}
			pos := int(p.Progress * float64(laneTrackWidth-1))
			if pos < 0 {
				pos = 0
			}
			if pos >= laneTrackWidth {
				pos = laneTrackWidth - 1
			}
			track[pos] = packetGlyph(p)
			styles[pos] = packetStyle(p)
		}

		label := labelStyle.Render(fmt.Sprintf("%-8s ", lane.ID))
		sb.WriteString(label)
		for i, r := range track {
			if style, ok := styles[i]; ok {
				sb.WriteString(style.Render(string(r)))
			} else if lane.UnderAttackTimerSec > 0 {
				sb.WriteString(hotStyle.Render(string(r)))
			} else {
				sb.WriteString(string(r))
			}
		}
		maxIntegrity := w.LinkLevel(lane.Level).MaxIntegrity
		if maxIntegrity <= 0 {
			maxIntegrity = 1
		}
		sb.WriteString(labelStyle.Render(fmt.Sprintf(" %3.0f%%", lane.Integrity/maxIntegrity*100)))
		sb.WriteString("\n")
	}
}

// packetGlyph picks the lane marker for a packet: the archetype's leading
// letter, uppercased for elites and bosses.
func packetGlyph(p *sim.UnitPacket) rune {
	glyph := 'o'
	if p.ArchetypeID != "" {
		glyph = rune(p.ArchetypeID[0])
	}
	if p.IsElite || p.IsBoss {
		if glyph >= 'a' && glyph <= 'z' {
			glyph -= 'a' - 'A'
		}
	}
	return glyph
}

func packetStyle(p *sim.UnitPacket) lipgloss.Style {
	switch {
	case p.IsBoss:
		return bossStyle
	case p.IsElite:
		return eliteStyle
	default:
		return enemyStyle
	}
}

// gauge renders a labeled bar like "base hp [=====-----] 300/600".
func gauge(label string, val, max float64) string {
	const width = 24
	if max <= 0 {
		max = 1
	}
	filled := int(val / max * width)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("%s [%s] %.0f/%.0f", label, bar, val, max)
}
