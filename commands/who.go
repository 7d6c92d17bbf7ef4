package commands

import (
	"fmt"
	"strings"

	"LumenChat/internal/game"
)

var Who = Define(Definition{
	Name:        "who",
	Usage:       "who",
	Description: "list who else is connected and where",
}, func(ctx *Context) bool {
	others := game.FilterOut(ctx.World.ListPlayers(), ctx.Player.Name)
	if len(others) == 0 {
		ctx.Player.Output <- game.Ansi("\r\nNobody else is connected right now.")
		return false
	}
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("\r\nConnected (%d):", len(others)))
	for _, name := range others {
		entry := game.HighlightName(name)
		if p, ok := ctx.World.ActivePlayer(name); ok {
			entry += game.Style(fmt.Sprintf(" in %s, %s", p.Realm, p.Mode), game.AnsiDim)
		}
		builder.WriteString("\r\n  " + entry)
	}
	ctx.Player.Output <- game.Ansi(builder.String())
	return false
})
