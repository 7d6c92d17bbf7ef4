package commands

import (
	"fmt"
	"strings"

	"LumenChat/internal/game"
)

var BotReload = Define(Definition{
	Name:        "botreload",
	Usage:       "botreload",
	Description: "reload chatbot rules from disk (admin only)",
	Group:       GroupAdmin,
}, func(ctx *Context) bool {
	if !ctx.Player.IsAdmin {
		ctx.Player.Output <- game.Ansi(game.Style("\r\nOnly admins may reload the chatbot.", game.AnsiYellow))
		return false
	}
	report, err := ctx.World.ReloadChatBot()
	if err != nil {
		ctx.Player.Output <- game.Ansi(game.Style("\r\nChatbot reload failed: "+err.Error(), game.AnsiYellow))
		return false
	}

	var builder strings.Builder
	builder.WriteString(game.Style(fmt.Sprintf("\r\nLoaded %d rules from %d sources.", report.Rules, report.Sources), game.AnsiGreen))
	if report.Skipped > 0 {
		builder.WriteString(game.Style(fmt.Sprintf("\r\nSkipped %d malformed rules.", report.Skipped), game.AnsiYellow))
	}
	for _, failed := range report.Failed {
		builder.WriteString(game.Style("\r\nFailed: "+failed.Error(), game.AnsiYellow))
	}
	ctx.Player.Output <- game.Ansi(builder.String())
	return false
})
