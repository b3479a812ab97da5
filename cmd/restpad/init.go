package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"

	"github.com/unkn0wn-root/restpad/internal/config"
)

// handleInitSubcommand intercepts `restpad init`, which writes a commented
// starter settings file and exits.
func handleInitSubcommand(args []string) (bool, error) {
	if len(args) == 0 || args[0] != "init" {
		return false, nil
	}
	return true, runInit(args[1:])
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			Usage: restpad init [flags]

			Writes a starter settings file into the config directory. Every
			setting ships commented out; an existing file is never touched.

			Flags:
		`))
		fs.PrintDefaults()
	}

	var path string
	fs.StringVar(&path, "path", "", "Write the settings file here instead of the config directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("init: unexpected args: %s", strings.Join(fs.Args(), " "))
	}

	handle := config.DefaultSettingsHandle()
	if path != "" {
		handle = config.SettingsHandle{Path: path, Format: settingsFormatFor(path)}
	}
	if err := config.WriteStarterSettings(handle); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", handle.Path)
	return nil
}

func settingsFormatFor(path string) config.SettingsFormat {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return config.SettingsFormatYAML
	}
	return config.SettingsFormatTOML
}
