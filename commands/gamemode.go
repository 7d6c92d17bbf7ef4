package commands

import (
	"fmt"
	"strings"

	"LumenChat/internal/game"
)

var GameMode = Define(Definition{
	Name:        "gamemode",
	Aliases:     []string{"gm"},
	Usage:       "gamemode <survival|creative|adventure|spectator>",
	Description: "switch your game mode",
}, func(ctx *Context) bool {
	if strings.TrimSpace(ctx.Arg) == "" {
		ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\nYour game mode is %s.", game.Style(string(ctx.Player.Mode), game.AnsiCyan)))
		return false
	}
	mode, err := game.ParseGameMode(ctx.Arg)
	if err != nil {
		ctx.Player.Output <- game.Ansi(game.Style("\r\n"+err.Error(), game.AnsiYellow))
		sendUsage(ctx)
		return false
	}
	if mode == ctx.Player.Mode {
		ctx.Player.Output <- game.Ansi(game.Style(fmt.Sprintf("\r\nYou are already in %s mode.", mode), game.AnsiYellow))
		return false
	}
	ctx.World.UpdatePlayer(ctx.Player, func(p *game.Player) {
		p.Mode = mode
	})
	ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\nGame mode set to %s.", game.Style(string(mode), game.AnsiGreen, game.AnsiBold)))
	return false
})
