package command

import (
	"errors"
)

// ErrUnknownCommand is returned when args name no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// Node represents a node in the command tree.
type Node struct {
	Cmd         Command
	Subcommands map[string]*Node
}

// CommandTree manages all commands and subcommands.
type CommandTree struct {
	root *Node
}

// NewTree creates a new empty command tree.
func NewTree() *CommandTree {
	return &CommandTree{
		root: &Node{Subcommands: make(map[string]*Node)},
	}
}

// Register inserts a command and all its subcommands recursively.
func (t *CommandTree) Register(cmd Command) {
	t.insert(t.root, cmd)
}

// Get returns a command by name.
func (t *CommandTree) Get(name string) (Command, bool) {
	node, ok := t.root.Subcommands[name]
	if !ok {
		return nil, false
	}
	return node.Cmd, true
}

func (t *CommandTree) insert(node *Node, cmd Command) {
	if node.Subcommands == nil {
		node.Subcommands = make(map[string]*Node)
	}
	// aliases share one node so subcommands are registered once
	sub := &Node{Cmd: cmd, Subcommands: make(map[string]*Node)}
	for _, n := range append([]string{cmd.Name()}, cmd.Aliases()...) {
		node.Subcommands[n] = sub
	}
	for _, subcmd := range cmd.Subcommands() {
		t.insert(sub, subcmd)
	}
}

// Resolve walks down the command tree following args.
func (t *CommandTree) Resolve(args []string) (*Node, []string, error) {
	node := t.root
	for len(args) > 0 {
		next, ok := node.Subcommands[args[0]]
		if !ok {
			break
		}
		node = next
		args = args[1:]
	}
	if node.Cmd == nil {
		return nil, nil, ErrUnknownCommand
	}
	return node, args, nil
}
