package commands

import (
	"fmt"
	"strings"
	"time"

	"LumenChat/internal/chatbot"
	"LumenChat/internal/game"
)

var Stats = Define(Definition{
	Name:        "stats",
	Usage:       "stats",
	Description: "review your player and account details",
}, func(ctx *Context) bool {
	p := ctx.Player
	var builder strings.Builder
	builder.WriteString(game.Style("\r\nPlayer overview\r\n", game.AnsiBold, game.AnsiUnderline))
	builder.WriteString(fmt.Sprintf("  Name: %s\r\n", game.HighlightName(p.Name)))
	if p.DisplayName != "" {
		builder.WriteString(fmt.Sprintf("  Display name: %s\r\n", p.DisplayName))
	}
	builder.WriteString(fmt.Sprintf("  UUID: %s\r\n", game.Style(p.UUID.String(), game.AnsiDim)))
	builder.WriteString(fmt.Sprintf("  Roles: %s\r\n", formatRoles(p)))
	builder.WriteString(fmt.Sprintf("  Game mode: %s\r\n", game.Style(strings.ToUpper(string(p.Mode)), game.AnsiCyan)))
	builder.WriteString(fmt.Sprintf("  World: %s\r\n", game.Style(p.Realm, game.AnsiCyan)))
	builder.WriteString(fmt.Sprintf("  Position: %s\r\n", game.Style(fmt.Sprintf("%.1f, %.1f, %.1f", p.Position.X, p.Position.Y, p.Position.Z), game.AnsiGreen)))
	builder.WriteString(fmt.Sprintf("  Health: %s\r\n", game.Style(fmt.Sprintf("%.1f/%.1f", p.Health, p.MaxHealth), game.AnsiGreen)))
	builder.WriteString(fmt.Sprintf("  Food: %s\r\n", game.Style(fmt.Sprintf("%d", p.Food), game.AnsiGreen)))
	builder.WriteString(fmt.Sprintf("  Level: %s\r\n", game.Style(fmt.Sprintf("%d", p.Level), game.AnsiGreen, game.AnsiBold)))

	now := time.Now().UTC()
	if stats, ok := ctx.World.AccountStats(p.Account); ok {
		builder.WriteString(fmt.Sprintf("  Created: %s\r\n", formatTimestamp(stats.CreatedAt, now)))
		builder.WriteString(fmt.Sprintf("  Last login: %s\r\n", formatTimestamp(stats.LastLogin, now)))
		builder.WriteString(fmt.Sprintf("  Total logins: %s\r\n", game.Style(fmt.Sprintf("%d", stats.TotalLogins), game.AnsiGreen, game.AnsiBold)))
	}
	builder.WriteString(fmt.Sprintf("  Server time (UTC): %s\r\n", game.Style(chatbot.FormatTime(now, time.UTC), game.AnsiBlue)))

	p.Output <- game.Ansi(builder.String())
	return false
})

func formatTimestamp(ts, now time.Time) string {
	if ts.IsZero() {
		return game.Style("never", game.AnsiYellow)
	}
	ts = ts.UTC()
	absolute := game.Style(chatbot.FormatTime(ts, time.UTC), game.AnsiGreen)
	return fmt.Sprintf("%s %s", absolute, game.Style(fmt.Sprintf("(%s)", describeRelative(ts, now)), game.AnsiDim))
}

func describeRelative(when, now time.Time) string {
	if when.IsZero() {
		return "never"
	}
	if now.Before(when) {
		now = when
	}
	diff := now.Sub(when)
	unit := func(n int, name string) string {
		if n <= 1 {
			return "1 " + name + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, name)
	}
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return unit(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return unit(int(diff/time.Hour), "hour")
	case diff < 30*24*time.Hour:
		return unit(int(diff/(24*time.Hour)), "day")
	case diff < 365*24*time.Hour:
		return unit(int(diff/(30*24*time.Hour)), "month")
	default:
		return unit(int(diff/(365*24*time.Hour)), "year")
	}
}

func formatRoles(player *game.Player) string {
	if player.IsAdmin {
		return game.Style("Player", game.AnsiGreen) + game.Style(", ", game.AnsiDim) + game.Style("Admin", game.AnsiBold, game.AnsiMagenta)
	}
	return game.Style("Player", game.AnsiGreen)
}
