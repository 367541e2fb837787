package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/robalobadob/hangman-bot/internal/game"
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	// Menu puts the command into the chat client's command menu.
	Menu bool
}

// Handler executes a command.
type Handler func(*Context)

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	Ctx     context.Context
	Bot     *Bot
	User    game.UserID
	Name    string
	Arg     string
	Session *session
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
		panic("bot: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("bot: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("bot: duplicate registration for %q", name))
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

// Menu returns the definitions flagged for the client command menu.
func Menu() []Definition {
	var out []Definition
	for _, c := range All() {
		if c.Menu {
			out = append(out, c.Definition)
		}
	}
	return out
}

func lookup(name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[strings.ToLower(name)]
	return cmd, ok
}

// parseCommand splits "/join@HangBot abc12" into ("join", "abc12").
// ok is false for text that does not start with a slash.
func parseCommand(text string) (name, arg string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", "", false
	}
	name = strings.TrimPrefix(parts[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	arg = strings.TrimSpace(strings.TrimPrefix(text, parts[0]))
	return strings.ToLower(name), arg, true
}
