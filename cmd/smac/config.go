package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/orizon-lang/smac/internal/cli"
	"github.com/orizon-lang/smac/internal/profile"
)

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 || args[0] != "init" {
		fmt.Fprintf(stderr, "Error: unknown config action\n\n")
		cli.PrintCommandUsage(stderr, toolName, commands[len(commands)-1])
		return 2
	}

	flags := flag.NewFlagSet("config init", flag.ContinueOnError)
	flags.SetOutput(stderr)
	path := flags.String("config", cli.DefaultConfigFile, "config file to write")
	profileName := flags.String("profile", "smac", "built-in profile name or profile file")
	force := flags.Bool("force", false, "overwrite an existing config file")
	if err := flags.Parse(args[1:]); err != nil {
		return 2
	}

	if !*force {
		if _, err := os.Stat(*path); err == nil {
			fmt.Fprintf(stderr, "Error: %s already exists (use -force to overwrite)\n", *path)
			return 1
		} else if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if _, err := profile.Load(*profileName); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := cli.LoadConfig("")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.Profile = *profileName
	if err := cfg.SaveConfig(*path); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", *path)
	return 0
}
