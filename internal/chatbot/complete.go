package chatbot

import "sort"

// ModelRegistry supplies the AI platforms and the models each one offers.
type ModelRegistry interface {
	Platforms() map[string][]string
}

// Completer suggests arguments for the chatbot command.
type Completer struct {
	registry ModelRegistry
}

// NewCompleter returns a completer backed by registry.
func NewCompleter(registry ModelRegistry) Completer {
	return Completer{registry: registry}
}

// Complete returns suggestions for the last argument. With one argument it
// offers every platform, with two it offers the models of the platform named
// by the first argument. Deeper positions and unknown platforms get nothing.
func (c Completer) Complete(args []string) []string {
	if c.registry == nil {
		return []string{}
	}
	platforms := c.registry.Platforms()
	switch len(args) {
	case 1:
		names := make([]string, 0, len(platforms))
		for name := range platforms {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	case 2:
		models, ok := platforms[args[0]]
		if !ok {
			return []string{}
		}
		out := append(make([]string, 0, len(models)), models...)
		sort.Strings(out)
		return dedupeSorted(out)
	default:
		return []string{}
	}
}

func dedupeSorted(in []string) []string {
	if len(in) < 2 {
		return in
	}
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
