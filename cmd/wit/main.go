package main

import (
	"os"

	"github.com/keshon/wit/internal/command"

	_ "github.com/keshon/wit/internal/command/add"
	_ "github.com/keshon/wit/internal/command/branch"
	_ "github.com/keshon/wit/internal/command/checkout"
	_ "github.com/keshon/wit/internal/command/commit"
	_ "github.com/keshon/wit/internal/command/help"
	_ "github.com/keshon/wit/internal/command/init"
	_ "github.com/keshon/wit/internal/command/log"
	_ "github.com/keshon/wit/internal/command/merge"
	_ "github.com/keshon/wit/internal/command/mount"
	_ "github.com/keshon/wit/internal/command/rm"
	_ "github.com/keshon/wit/internal/command/status"
)

func main() {
	os.Exit(command.RunCLI(os.Args[1:]))
}
