package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/atomicstack/vault-tui/internal/app"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// File is the config file that was loaded, empty when none was found.
	File string
}

type Logging struct {
	FilePath string `yaml:"log_file" json:"log_file"`
	Trace    bool   `yaml:"trace" json:"trace"`
}

// ErrHelp is returned when the arguments asked for usage text instead of a
// run.
var ErrHelp = errors.New("help requested")

const (
	envConfigFile      = "VAULT_TUI_CONFIG"
	envVault           = "VAULT_TUI_VAULT"
	envWidth           = "VAULT_TUI_WIDTH"
	envHeight          = "VAULT_TUI_HEIGHT"
	envShowFooter      = "VAULT_TUI_FOOTER"
	envWatch           = "VAULT_TUI_WATCH"
	envClipboard       = "VAULT_TUI_CLIPBOARD"
	envExtension       = "VAULT_TUI_EXTENSION"
	envNotePrefix      = "VAULT_TUI_NOTE_PREFIX"
	envTemplates       = "VAULT_TUI_TEMPLATES"
	envNewNoteTemplate = "VAULT_TUI_NEW_NOTE_TEMPLATE"
	envUndoLimit       = "VAULT_TUI_UNDO_LIMIT"
	envTrace           = "VAULT_TUI_TRACE"
	envLogFile         = "VAULT_TUI_LOG_FILE"
)

var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9_-]+$`)

// output receives usage text; tests swap it out.
var output io.Writer = os.Stdout

// Defaults returns the configuration used before any file, environment
// variable or flag is applied.
func Defaults() Config {
	return Config{
		App: app.Config{
			Extension:    ".md",
			NotePrefix:   "YYYYMMDDHHmm",
			TemplatesDir: "templates",
			UndoLimit:    200,
		},
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs builds the configuration from args. Values layer as defaults,
// then the YAML config file, then environment variables and flags.
func LoadArgs(args []string) (Config, error) {
	var (
		cfg Config
		ran bool
	)
	cmd := &cli.Command{
		Name:      "vault-tui",
		Usage:     "Modal terminal editor for a directory of notes",
		ArgsUsage: "[vault-dir | note-file]",
		Writer:    output,
		ErrWriter: output,
		Flags:     flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			ran = true
			built, err := fromCommand(cmd)
			if err != nil {
				return err
			}
			cfg = built
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"vault-tui"}, args...)); err != nil {
		return Config{}, err
	}
	if !ran {
		return Config{}, ErrHelp
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML config file (defaults to the user config dir)",
			Sources: cli.EnvVars(envConfigFile),
		},
		&cli.StringFlag{
			Name:    "vault",
			Usage:   "vault directory used when no positional target is given",
			Sources: cli.EnvVars(envVault),
		},
		&cli.IntFlag{
			Name:    "width",
			Usage:   "desired viewport width in cells (0 uses terminal width)",
			Sources: cli.EnvVars(envWidth),
		},
		&cli.IntFlag{
			Name:    "height",
			Usage:   "desired viewport height in rows (0 uses terminal height)",
			Sources: cli.EnvVars(envHeight),
		},
		&cli.BoolFlag{
			Name:    "footer",
			Usage:   "enable footer hint row",
			Sources: cli.EnvVars(envShowFooter),
		},
		&cli.BoolFlag{
			Name:    "watch",
			Usage:   "track notes created or removed outside the editor",
			Sources: cli.EnvVars(envWatch),
		},
		&cli.BoolFlag{
			Name:    "clipboard",
			Usage:   "share yanks with the system clipboard",
			Sources: cli.EnvVars(envClipboard),
		},
		&cli.StringFlag{
			Name:    "extension",
			Usage:   "note file extension used for links and new notes",
			Sources: cli.EnvVars(envExtension),
		},
		&cli.StringFlag{
			Name:    "note-prefix",
			Usage:   "date layout prefixed to new note names",
			Sources: cli.EnvVars(envNotePrefix),
		},
		&cli.StringFlag{
			Name:    "templates",
			Usage:   "vault directory holding insertable templates",
			Sources: cli.EnvVars(envTemplates),
		},
		&cli.StringFlag{
			Name:    "new-note-template",
			Usage:   "template that seeds every new note",
			Sources: cli.EnvVars(envNewNoteTemplate),
		},
		&cli.IntFlag{
			Name:    "undo-limit",
			Usage:   "maximum undo steps kept per document",
			Sources: cli.EnvVars(envUndoLimit),
		},
		&cli.BoolFlag{
			Name:    "trace",
			Usage:   "enable verbose JSON trace logging",
			Sources: cli.EnvVars(envTrace),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "path to the log file",
			Sources: cli.EnvVars(envLogFile),
		},
	}
}

func fromCommand(cmd *cli.Command) (Config, error) {
	cfg := Defaults()
	file, err := configFile(cmd.String("config"))
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		if err := loadFile(file, &cfg); err != nil {
			return Config{}, err
		}
		cfg.File = file
	}

	a := &cfg.App
	if cmd.IsSet("vault") {
		a.VaultPath = cmd.String("vault")
	}
	if cmd.IsSet("width") {
		a.Width = int(cmd.Int("width"))
	}
	if cmd.IsSet("height") {
		a.Height = int(cmd.Int("height"))
	}
	if cmd.IsSet("footer") {
		a.ShowFooter = cmd.Bool("footer")
	}
	if cmd.IsSet("watch") {
		a.Watch = cmd.Bool("watch")
	}
	if cmd.IsSet("clipboard") {
		a.Clipboard = cmd.Bool("clipboard")
	}
	if cmd.IsSet("extension") {
		a.Extension = cmd.String("extension")
	}
	if cmd.IsSet("note-prefix") {
		a.NotePrefix = cmd.String("note-prefix")
	}
	if cmd.IsSet("templates") {
		a.TemplatesDir = cmd.String("templates")
	}
	if cmd.IsSet("new-note-template") {
		a.NewNoteTemplate = cmd.String("new-note-template")
	}
	if cmd.IsSet("undo-limit") {
		a.UndoLimit = int(cmd.Int("undo-limit"))
	}
	if cmd.IsSet("trace") {
		cfg.Logging.Trace = cmd.Bool("trace")
	}
	if cmd.IsSet("log-file") {
		cfg.Logging.FilePath = cmd.String("log-file")
	}

	switch {
	case cmd.Args().Present():
		a.Target = cmd.Args().First()
	case a.VaultPath != "":
		a.Target = a.VaultPath
	default:
		a.Target = "."
	}

	cfg.Flags = map[string]string{
		"config":          cfg.File,
		"vault":           a.VaultPath,
		"target":          a.Target,
		"width":           strconv.Itoa(a.Width),
		"height":          strconv.Itoa(a.Height),
		"footer":          strconv.FormatBool(a.ShowFooter),
		"watch":           strconv.FormatBool(a.Watch),
		"clipboard":       strconv.FormatBool(a.Clipboard),
		"extension":       a.Extension,
		"notePrefix":      a.NotePrefix,
		"templates":       a.TemplatesDir,
		"newNoteTemplate": a.NewNoteTemplate,
		"undoLimit":       strconv.Itoa(a.UndoLimit),
	}
	return cfg, nil
}

// configFile picks the explicit path, or the per-user default when it
// exists.
func configFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", nil
	}
	candidate := filepath.Join(dir, "vault-tui", "config.yaml")
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat config file: %w", err)
	}
	return candidate, nil
}

type fileDocument struct {
	app.Config `yaml:",inline"`
	Logging    `yaml:",inline"`
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	doc := fileDocument{Config: cfg.App, Logging: cfg.Logging}
	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.App = doc.Config
	cfg.Logging = doc.Logging
	return nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	a := &cfg.App
	return validation.ValidateStruct(a,
		validation.Field(&a.Extension, validation.Required, validation.Match(extensionPattern)),
		validation.Field(&a.Width, validation.Min(0)),
		validation.Field(&a.Height, validation.Min(0)),
		validation.Field(&a.UndoLimit, validation.Required, validation.Min(1), validation.Max(10000)),
		validation.Field(&a.NotePrefix, validation.Required),
	)
}
