package commands

import (
	"fmt"
	"strings"

	"LumenChat/internal/game"
)

const noAnswer = "I don't know how to answer that yet."

var Ask = Define(Definition{
	Name:        "ask",
	Usage:       "ask <question>",
	Description: "ask the chatbot a question",
}, func(ctx *Context) bool {
	bot := ctx.World.ChatBot()
	if bot == nil {
		ctx.Player.Output <- game.Ansi(game.Style("\r\n"+game.ErrNoChatBot.Error()+".", game.AnsiYellow))
		return false
	}
	question := strings.TrimSpace(ctx.Arg)
	if question == "" {
		sendUsage(ctx)
		return false
	}

	ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\n%s %s", game.Style("You ask:", game.AnsiBold, game.AnsiYellow), question))
	replies := bot.Respond(question, ctx.Player.Profile())
	if len(replies) == 0 {
		replies = []string{noAnswer}
	}
	width := ctx.Player.WindowWidth()
	for _, reply := range replies {
		text := game.WrapText(reply, width)
		text = strings.ReplaceAll(text, "\n", "\r\n")
		ctx.Player.Output <- game.Ansi(fmt.Sprintf("\r\n%s %s", game.BotLabel(), text))
	}
	return false
})
