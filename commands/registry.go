package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"LumenChat/internal/game"
)

// CommandGroup buckets commands for help listings.
type CommandGroup string

const (
	GroupGeneral CommandGroup = "general"
	GroupAdmin   CommandGroup = "admin"
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Group       CommandGroup
}

// Handler executes a command.
// Returning true indicates the connection should terminate.
type Handler func(*Context) bool

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	World   *game.World
	Player  *game.Player
	Raw     string
	Arg     string
	Input   string
	Command *Command
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Command)
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}
	if def.Group == "" {
		def.Group = GroupGeneral
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// Find resolves a command by name, alias or unique prefix of a primary name.
func Find(name string) (*Command, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, false
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	if cmd, ok := registry[key]; ok {
		return cmd, true
	}
	names := make([]string, len(ordered))
	for i, cmd := range ordered {
		names[i] = cmd.Name
	}
	if idx, ok := game.UniqueMatch(key, names); ok {
		return ordered[idx], true
	}
	return nil, false
}

// Dispatch parses the input line, looks up the command, and executes it.
func Dispatch(world *game.World, player *game.Player, line string) bool {
	line = strings.TrimSpace(line)
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd, ok := Find(parts[0])
	if !ok {
		player.Output <- game.Ansi(game.Style("\r\nUnknown command. Type 'help'.", game.AnsiYellow))
		return false
	}

	ctx := &Context{
		World:   world,
		Player:  player,
		Raw:     line,
		Arg:     strings.TrimSpace(strings.TrimPrefix(line, parts[0])),
		Input:   parts[0],
		Command: cmd,
	}
	return cmd.Handler(ctx)
}

func sendUsage(ctx *Context) {
	ctx.Player.Output <- game.Ansi(game.Style("\r\nUsage: "+ctx.Command.Usage, game.AnsiYellow))
}
