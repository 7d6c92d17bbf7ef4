package commands

import "LumenChat/internal/game"

var Quit = Define(Definition{
	Name:        "quit",
	Aliases:     []string{"q"},
	Usage:       "quit",
	Description: "save your settings and disconnect",
}, func(ctx *Context) bool {
	ctx.World.PersistPlayer(ctx.Player)
	ctx.Player.Output <- game.Ansi(game.Style("\r\nSigning off. Your chatbot settings are saved.\r\n", game.AnsiCyan))
	return true
})
