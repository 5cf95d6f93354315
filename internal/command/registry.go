package command

import (
	"strings"

	"golang.org/x/exp/slices"
)

var tree = NewTree()

// RegisterCommand adds a command to the global tree
func RegisterCommand(cmd Command) {
	tree.Register(cmd)
}

// ResolveCommand finds a command from args
func ResolveCommand(args []string) (*Node, []string, error) {
	return tree.Resolve(args)
}

// GetCommand returns a top-level command by name or alias
func GetCommand(name string) (Command, bool) {
	return tree.Get(name)
}

// AllCommands returns every registered command once, sorted by name.
func AllCommands() []Command {
	var cmds []Command
	seen := make(map[*Node]struct{})

	var walk func(node *Node)
	walk = func(node *Node) {
		for _, sub := range node.Subcommands {
			if _, ok := seen[sub]; ok {
				continue
			}
			seen[sub] = struct{}{}
			cmds = append(cmds, sub.Cmd)
			walk(sub)
		}
	}
	walk(tree.root)

	slices.SortFunc(cmds, func(a, b Command) int { return strings.Compare(a.Name(), b.Name()) })
	return cmds
}
