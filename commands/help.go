package commands

import (
	"fmt"
	"strings"

	"LumenChat/internal/game"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"?"},
	Usage:       "help",
	Description: "show this message",
}, func(ctx *Context) bool {
	message := helpMessage("Commands:", commandsForGroup(GroupGeneral))
	if ctx.Player.IsAdmin {
		message += helpMessage("Admin Commands:", commandsForGroup(GroupAdmin))
	}
	ctx.Player.Output <- game.Ansi(message)
	return false
})

func helpMessage(title string, commands []*Command) string {
	var builder strings.Builder
	builder.WriteString(game.Style("\r\n"+title+"\r\n", game.AnsiBold, game.AnsiUnderline))
	for _, cmd := range commands {
		usage := cmd.Usage
		if strings.TrimSpace(usage) == "" {
			usage = cmd.Name
		}
		builder.WriteString(fmt.Sprintf("  %-26s - %s\r\n", usage, cmd.Description))
	}
	return builder.String()
}

func commandsForGroup(group CommandGroup) []*Command {
	all := All()
	filtered := make([]*Command, 0, len(all))
	for _, cmd := range all {
		if cmd.Group == group {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}
