package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"LumenChat/internal/chatbot"
	"LumenChat/internal/game"
)

var Teleport = Define(Definition{
	Name:        "tp",
	Aliases:     []string{"teleport"},
	Usage:       "tp <x> <y> <z> [world]",
	Description: "move to coordinates, optionally in another world",
}, func(ctx *Context) bool {
	parts := strings.Fields(ctx.Arg)
	if len(parts) != 3 && len(parts) != 4 {
		sendUsage(ctx)
		return false
	}
	var coords [3]float64
	for i, part := range parts[:3] {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			ctx.Player.Output <- game.Ansi(game.Style(fmt.Sprintf("\r\nInvalid coordinate: %s", part), game.AnsiYellow))
			return false
		}
		coords[i] = v
	}
	realm := ctx.Player.Realm
	if len(parts) == 4 {
		realm = strings.ToLower(parts[3])
	}

	previous := ctx.Player.Realm
	ctx.World.UpdatePlayer(ctx.Player, func(p *game.Player) {
		p.Position = chatbot.Position{X: coords[0], Y: coords[1], Z: coords[2]}
		p.Realm = realm
	})
	if previous != realm {
		ctx.World.BroadcastToRealm(previous, game.Ansi(fmt.Sprintf("\r\n%s vanishes to %s.", game.HighlightName(ctx.Player.Name), realm)), ctx.Player)
		ctx.World.BroadcastToRealm(realm, game.Ansi(fmt.Sprintf("\r\n%s arrives from %s.", game.HighlightName(ctx.Player.Name), previous)), ctx.Player)
	}
	ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\nTeleported to %s in %s.",
		game.Style(fmt.Sprintf("%.1f, %.1f, %.1f", coords[0], coords[1], coords[2]), game.AnsiGreen),
		game.Style(realm, game.AnsiCyan)))
	return false
})
