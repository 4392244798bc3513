package tui

import "strings"

// Command is a parsed ':' prompt line.
type Command struct {
	Name string
	Args string
}

// CommandNames are the prompt commands, in completion order.
var CommandNames = []string{
	"chat", "contacts", "debug", "tap", "all", "reset",
	"defaults", "dark", "light", "film", "help", "quit",
}

var commandAliases = map[string]string{
	"q":    "quit",
	"h":    "help",
	"o":    "chat",
	"open": "chat",
	"rec":  "film",
}

// ParseCommand splits a prompt line (without the leading ':') into a
// lowercased, alias-resolved name and the remaining words.
func ParseCommand(input string) Command {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}
	}
	name := strings.ToLower(fields[0])
	if full, ok := commandAliases[name]; ok {
		name = full
	}
	return Command{Name: name, Args: strings.Join(fields[1:], " ")}
}
