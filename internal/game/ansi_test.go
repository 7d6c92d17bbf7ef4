package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimCleansPlayerInput(t *testing.T) {
	assert.Equal(t, "ask the bot what time is it?", Trim(" \task the bot\u200b what time is it?\x07 "))
	assert.Equal(t, "who", Trim("who\r\n"))
	assert.Equal(t, "chatbot openai gpt", Trim("chatbot openai\vgpt"))
	assert.Empty(t, Trim("\x00\x1b\r\n"))
}

func TestStyleAndAnsiReset(t *testing.T) {
	assert.Equal(t, "plain", Style("plain"))
	assert.Equal(t, AnsiBold+AnsiCyan+"Steve"+AnsiReset, HighlightName("Steve"))

	assert.Equal(t, "no colour", Ansi("no colour"))
	assert.Equal(t, AnsiYellow+"warn"+AnsiReset, Ansi(AnsiYellow+"warn"))
	styled := Style("done", AnsiGreen)
	assert.Equal(t, styled, Ansi(styled))

	assert.Contains(t, BotLabel(), "[ChatBot]")
	assert.Equal(t, []string{HighlightName("Alex"), HighlightName("Steve")}, HighlightNames([]string{"Alex", "Steve"}))
}
