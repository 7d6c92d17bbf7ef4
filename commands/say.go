package commands

import (
	"fmt"
	"strings"

	"LumenChat/internal/game"
)

var Say = Define(Definition{
	Name:        "say",
	Usage:       "say <message>",
	Description: "talk to everyone in your world",
}, func(ctx *Context) bool {
	msg := strings.TrimSpace(ctx.Arg)
	if msg == "" {
		ctx.Player.Output <- game.Ansi(game.Style("\r\nType a message after 'say'.", game.AnsiYellow))
		return false
	}
	realm := ctx.Player.Realm
	ctx.World.BroadcastToRealm(realm, game.Ansi(fmt.Sprintf("\r\n[%s] %s: %s", realm, game.HighlightName(ctx.Player.Name), msg)), ctx.Player)
	ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\n[%s] %s %s", realm, game.Style("you:", game.AnsiBold, game.AnsiYellow), msg))
	return false
})
