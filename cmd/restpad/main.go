package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/unkn0wn-root/restpad/internal/config"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
	"github.com/unkn0wn-root/restpad/internal/relay"
	"github.com/unkn0wn-root/restpad/internal/request"
	"github.com/unkn0wn-root/restpad/internal/telemetry"
	"github.com/unkn0wn-root/restpad/internal/theme"
	"github.com/unkn0wn-root/restpad/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if handled, err := handleInitSubcommand(os.Args[1:]); handled {
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var (
		urlArg      string
		method      string
		headers     string
		body        string
		draftPath   string
		useRelay    bool
		timeout     time.Duration
		insecure    bool
		follow      bool
		proxyURL    string
		themeName   string
		debug       bool
		showVersion bool
	)

	follow = true

	flag.StringVar(&urlArg, "url", "", "Request URL to prefill")
	flag.StringVar(&method, "method", "", "HTTP method to prefill")
	flag.StringVar(&headers, "headers", "", "Headers JSON object to prefill")
	flag.StringVar(&body, "body", "", "Request body to prefill")
	flag.StringVar(&draftPath, "draft", "", "YAML draft file to prefill the form from")
	flag.BoolVar(&useRelay, "relay", false, "Start with the relay toggle on")
	flag.DurationVar(&timeout, "timeout", 0, "Request timeout, 0 waits indefinitely")
	flag.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	flag.BoolVar(&follow, "follow", true, "Follow redirects")
	flag.StringVar(&proxyURL, "proxy", "", "HTTP proxy URL")
	flag.StringVar(&themeName, "theme", "auto", "Color theme: auto, dark or light")
	flag.BoolVar(&debug, "debug", false, "Write a debug log to restpad-debug.log")
	flag.BoolVar(&showVersion, "version", false, "Show restpad version")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("restpad %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if urlArg == "" && flag.NArg() > 0 {
		urlArg = flag.Arg(0)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "restpad needs an interactive terminal")
		os.Exit(1)
	}

	if debug {
		logFile, err := tea.LogToFile("restpad-debug.log", "restpad")
		if err != nil {
			fmt.Fprintf(os.Stderr, "open debug log: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	settings, err := config.LoadSettings(config.DefaultSettingsHandle())
	if err != nil {
		log.Printf("settings load error: %v", err)
		settings = config.Settings{}
	}

	httpOpts, err := settings.HTTPOptions()
	if err != nil {
		log.Printf("settings error: %v", err)
		httpOpts = httpclient.Options{FollowRedirects: true}
	}
	relayBase, err := settings.RelayBase()
	if err != nil {
		log.Printf("settings error: %v", err)
		relayBase = relay.DefaultBase
	}

	// Flags given on the command line win over the settings file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			httpOpts.Timeout = timeout
		case "insecure":
			httpOpts.InsecureSkipVerify = insecure
		case "follow":
			httpOpts.FollowRedirects = follow
		case "proxy":
			httpOpts.ProxyURL = proxyURL
		}
	})

	draft := request.Draft{}
	if draftPath != "" {
		loaded, err := request.LoadDraftFile(draftPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		draft = loaded
	}

	// Individual flags refine whatever the draft file set.
	if urlArg != "" {
		draft.URL = urlArg
	}
	if method != "" {
		draft.Method = method
	}
	if headers != "" {
		draft.HeadersText = headers
	}
	if body != "" {
		draft.BodyText = body
	}
	if useRelay {
		draft.UseRelay = true
	}
	if draft.Method == "" {
		draft.Method = settings.DefaultMethod
	}

	ctx := context.Background()
	telemetryCfg := telemetry.ConfigFromEnv(os.Getenv)
	telemetryCfg.Version = version
	provider, err := telemetry.Setup(ctx, telemetryCfg)
	if err != nil {
		log.Printf("telemetry setup error: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown error: %v", err)
		}
	}()

	th := pickTheme(themeName)
	model := ui.New(ui.Config{
		Draft:       draft,
		Client:      httpclient.NewClient(),
		HTTPOptions: httpOpts,
		RelayBase:   relayBase,
		Theme:       &th,
		Tracer:      provider.Tracer(),
		Version:     version,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func pickTheme(name string) theme.Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return theme.DefaultTheme()
	case "light":
		return theme.LightTheme()
	default:
		return theme.Auto()
	}
}

func usage() {
	fmt.Fprint(os.Stderr, heredoc.Doc(`
		restpad composes one HTTP request, sends it, and renders the
		response into body, headers, timing and diff tabs. Ctrl+R routes
		the request through a CORS-style relay for hosts that refuse
		direct cross-origin calls.

		Usage:
		  restpad [flags] [url]
		  restpad init [flags]

		Flags:
	`))
	flag.PrintDefaults()
	fmt.Fprint(os.Stderr, heredoc.Doc(`

		Environment:
		  RESTPAD_CONFIG_DIR            Overrides the config directory
		  RESTPAD_TRACE_OTEL_ENDPOINT   OTLP collector; enables trace export
	`))
}
