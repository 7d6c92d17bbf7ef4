package commands

import (
	"fmt"
	"slices"
	"strings"

	"LumenChat/internal/chatbot"
	"LumenChat/internal/game"
)

var ChatBot = Define(Definition{
	Name:        "chatbot",
	Aliases:     []string{"bot"},
	Usage:       "chatbot [platform] [model]",
	Description: "show or choose the AI platform and model",
}, func(ctx *Context) bool {
	cfg := ctx.World.ChatBotConfig()
	completer := chatbot.NewCompleter(cfg)
	platforms := completer.Complete([]string{""})
	args := strings.Fields(ctx.Arg)
	if len(args) == 0 {
		sendChatBotStatus(ctx, cfg, platforms)
		return false
	}
	if len(args) > 2 {
		sendUsage(ctx)
		return false
	}

	idx, ok := game.UniqueMatch(args[0], platforms)
	if !ok {
		ctx.Player.Output <- game.Ansi(game.Style(fmt.Sprintf("\r\nUnknown platform: %s", args[0]), game.AnsiYellow))
		return false
	}
	platform := platforms[idx]
	models := completer.Complete([]string{platform, ""})
	if len(args) == 1 {
		ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\nModels for %s: %s",
			game.Style(platform, game.AnsiCyan), strings.Join(models, ", ")))
		return false
	}

	model := args[1]
	if !slices.Contains(models, model) {
		ctx.Player.Output <- game.Ansi(game.Style(fmt.Sprintf("\r\nUnknown model %s for platform %s.", model, platform), game.AnsiYellow))
		return false
	}
	ctx.World.UpdatePlayer(ctx.Player, func(p *game.Player) {
		p.Platform = platform
		p.Model = model
	})
	ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\nNow using %s on %s.",
		game.Style(model, game.AnsiGreen, game.AnsiBold), game.Style(platform, game.AnsiCyan)))
	return false
})

func sendChatBotStatus(ctx *Context, cfg chatbot.Config, platforms []string) {
	var builder strings.Builder
	builder.WriteString(game.Style("\r\nChatbot\r\n", game.AnsiBold, game.AnsiUnderline))
	if bot := ctx.World.ChatBot(); bot != nil {
		builder.WriteString(fmt.Sprintf("  Rules loaded: %d\r\n", bot.LoadedRuleCount()))
	}
	builder.WriteString(fmt.Sprintf("  Token: %s\r\n", game.Style(cfg.Token.Type, game.AnsiCyan)))
	selection := game.Style("none", game.AnsiYellow)
	if ctx.Player.Platform != "" && ctx.Player.Model != "" {
		selection = game.Style(ctx.Player.Platform+"/"+ctx.Player.Model, game.AnsiGreen)
	}
	builder.WriteString(fmt.Sprintf("  Selected: %s\r\n", selection))
	if len(platforms) == 0 {
		builder.WriteString("  Platforms: " + game.Style("none configured", game.AnsiDim) + "\r\n")
	} else {
		builder.WriteString("  Platforms: " + strings.Join(platforms, ", ") + "\r\n")
	}
	ctx.Player.Output <- game.Ansi(builder.String())
}
