package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/vault-tui/internal/app"
	"github.com/atomicstack/vault-tui/internal/config"
	"github.com/atomicstack/vault-tui/internal/logging"
	"github.com/atomicstack/vault-tui/internal/logging/events"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(newStartupTrace(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTrace is the app.start payload: how the editor was invoked and
// what it is about to open.
type startupTrace struct {
	Argv       []string          `json:"argv"`
	ConfigFile string            `json:"config_file,omitempty"`
	Flags      map[string]string `json:"flags"`
	Trace      bool              `json:"trace"`
	LogFile    string            `json:"log_file,omitempty"`
	Config     app.Config        `json:"config"`
	Executable string            `json:"executable,omitempty"`
	Cwd        string            `json:"cwd,omitempty"`
	Target     targetInfo        `json:"target"`
	Terminal   terminalInfo      `json:"terminal"`
}

type targetInfo struct {
	Root  string `json:"root,omitempty"`
	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

type terminalInfo struct {
	Source string        `json:"source,omitempty"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
	Probes []streamProbe `json:"probes"`
}

type streamProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newStartupTrace(cfg config.Config) startupTrace {
	trace := startupTrace{
		Argv:       cfg.Args,
		ConfigFile: cfg.File,
		Flags:      cfg.Flags,
		Trace:      cfg.Logging.Trace,
		LogFile:    cfg.Logging.FilePath,
		Config:     cfg.App,
		Target:     probeTarget(cfg.App.Target),
		Terminal:   probeTerminal(),
	}
	trace.Executable, _ = os.Executable()
	trace.Cwd, _ = os.Getwd()
	return trace
}

func probeTarget(target string) targetInfo {
	root, file, err := app.ResolveTarget(target)
	if err != nil {
		return targetInfo{Error: err.Error()}
	}
	return targetInfo{Root: root, File: file}
}

// probeTerminal reports which standard streams are terminals. The first one
// with a readable size supplies Width and Height.
func probeTerminal() terminalInfo {
	streams := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	info := terminalInfo{Probes: make([]streamProbe, 0, len(streams))}
	for _, s := range streams {
		probe := streamProbe{Name: s.name}
		fd := int(s.file.Fd())
		if term.IsTerminal(fd) {
			probe.Terminal = true
			w, h, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = w, h
				if info.Source == "" {
					info.Source, info.Width, info.Height = s.name, w, h
				}
			}
		}
		info.Probes = append(info.Probes, probe)
	}
	return info
}
