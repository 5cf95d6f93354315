package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

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

const defaultTemplate = `# wit

A small snapshot-based version control system.

## Commands

{{.CommandSections}}`

func main() {
	tplPath := flag.String("template", "", "README template (built-in when empty)")
	outPath := flag.String("out", "README.md", "output file")
	flag.Parse()

	src := defaultTemplate
	if *tplPath != "" {
		data, err := os.ReadFile(*tplPath)
		if err != nil {
			fmt.Printf("Failed to read template: %v\n", err)
			os.Exit(1)
		}
		src = string(data)
	}

	outFile, err := os.Create(*outPath)
	if err != nil {
		fmt.Printf("Failed to create %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := render(outFile, src, command.AllCommands()); err != nil {
		fmt.Printf("Failed to render template: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s generated successfully\n", *outPath)
}

// render fills the template with one section per command, in the order given.
func render(w io.Writer, src string, commands []command.Command) error {
	tpl, err := template.New("readme").Parse(src)
	if err != nil {
		return err
	}

	var sections strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&sections, "### %s\n```\nwit %s\n\n%s\n```\n\n", cmd.Name(), cmd.Usage(), cmd.Help())
	}

	return tpl.Execute(w, map[string]string{"CommandSections": sections.String()})
}
