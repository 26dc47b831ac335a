package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/filter"
	"github.com/studiowebux/keydeck/internal/keysource"
	"github.com/studiowebux/keydeck/internal/shortcuts"
	"github.com/studiowebux/keydeck/internal/usage"
	"github.com/studiowebux/keydeck/internal/version"
	"gopkg.in/yaml.v3"
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleDisabled = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
)

// LoadRegistry initializes a registry over src and applies the shortcut
// file resolved from configPath.
// Init must run first since it only loads the defaults into an empty
// registry, so src is attached before the file is applied: events arriving
// in between match the default bindings.
func LoadRegistry(src shortcuts.Source, configPath string, log zerolog.Logger) (*shortcuts.Registry, error) {
	reg := shortcuts.NewRegistry(src, shortcuts.WithLogger(log))
	if err := reg.Init(); err != nil {
		return nil, fmt.Errorf("failed to attach shortcut registry: %w", err)
	}

	path := config.GetShortcutsFilePath(configPath)
	if err := shortcuts.LoadOrDefault(reg, path); err != nil {
		reg.Destroy()
		return nil, err
	}

	log.Debug().Str("path", path).Int("shortcuts", reg.Len()).Msg("shortcuts loaded")
	return reg, nil
}

// shortcutView is the serialisable form of a shortcut
type shortcutView struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Keys        []string `json:"keys" yaml:"keys"`
	Combo       string   `json:"combo" yaml:"combo"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string   `json:"category" yaml:"category"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
}

func views(list []shortcuts.Shortcut) []shortcutView {
	out := make([]shortcutView, 0, len(list))
	for _, s := range list {
		out = append(out, shortcutView{
			ID:          s.ID,
			Name:        s.Name,
			Keys:        s.Keys,
			Combo:       shortcuts.FormatShortcut(s.Keys),
			Description: s.Description,
			Category:    string(s.Category),
			Enabled:     s.Enabled,
		})
	}
	return out
}

// ListOptions contains options for the list command
type ListOptions struct {
	Category string
	Output   string // table, json, yaml
	Query    string // JMESPath, always printed as JSON
}

// List prints the shortcuts of reg
func List(w io.Writer, reg *shortcuts.Registry, opts ListOptions) error {
	list := reg.GetAll()
	if opts.Category != "" {
		c := shortcuts.Category(opts.Category)
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", opts.Category)
		}
		list = reg.GetByCategory(c)
	}
	rows := views(list)

	if opts.Query != "" {
		if !filter.IsValidJMESPath(opts.Query) {
			return fmt.Errorf("invalid query %q: not a JMESPath expression", opts.Query)
		}
		out, err := filter.ApplyValue(rows, opts.Query)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}

	switch opts.Output {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))

	case "table", "":
		fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("%-18s %-16s %-11s %-8s %s", "ID", "KEYS", "CATEGORY", "ENABLED", "NAME")))
		for _, r := range rows {
			line := fmt.Sprintf("%-18s %-16s %-11s %-8t %s", r.ID, r.Combo, r.Category, r.Enabled, r.Name)
			if !r.Enabled {
				line = styleDisabled.Render(line)
			}
			fmt.Fprintln(w, line)
		}

	default:
		return fmt.Errorf("unknown output format %q (table/json/yaml)", opts.Output)
	}

	return nil
}

// Format prints the display label of a combination given either as
// separate tokens (ctrl shift z) or as one string (ctrl+shift+z)
func Format(w io.Writer, args []string) error {
	keys := args
	if len(args) == 1 && strings.Contains(args[0], "+") && args[0] != "+" {
		parsed, err := shortcuts.ParseCombo(args[0])
		if err != nil {
			return err
		}
		keys = parsed
	}

	fmt.Fprintln(w, shortcuts.FormatShortcut(keys))
	return nil
}

// Create prints the key list built from a combination as JSON
func Create(w io.Writer, combo shortcuts.Combo) error {
	if combo.Key == "" {
		return fmt.Errorf("a base key is required")
	}

	data, err := json.Marshal(shortcuts.CreateShortcut(combo))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// Validate checks a shortcut file, or the active registry when path is
// empty. It returns an error when the result contains errors.
func Validate(w io.Writer, reg *shortcuts.Registry, path string) error {
	v := shortcuts.NewValidator()

	var result *shortcuts.ValidationResult
	if path != "" {
		cfg, err := shortcuts.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		result = v.ValidateConfig(cfg)
	} else {
		result = v.ValidateRegistry(reg)
	}

	for _, line := range strings.Split(result.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "error:"):
			line = color.RedString("%s", line)
		case strings.HasPrefix(line, "warning:"):
			line = color.YellowString("%s", line)
		default:
			line = color.GreenString("%s", line)
		}
		fmt.Fprintln(w, line)
	}

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	return nil
}

// Export writes the registry as a shortcut file, to path or as YAML to w
func Export(w io.Writer, reg *shortcuts.Registry, path string) error {
	cfg := shortcuts.ExportConfig(reg)

	if path != "" {
		if err := shortcuts.SaveConfig(cfg, path); err != nil {
			return fmt.Errorf("failed to export shortcuts: %w", err)
		}
		fmt.Fprintf(w, "Exported %d shortcuts to %s\n", len(cfg.Shortcuts), path)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(data))
	return nil
}

// ServeOptions contains options for the serve command
type ServeOptions struct {
	Addr       string
	ConfigPath string
	Usage      *usage.Manager // nil disables recording
	Log        zerolog.Logger
	Ready      func(addr string)
}

// Serve runs the browser key bridge until ctx is done, printing each fired
// shortcut to w
func Serve(ctx context.Context, w io.Writer, opts ServeOptions) error {
	// Subscribers run on the bridge's connection goroutines
	w = &lockedWriter{w: w}

	bridge := keysource.NewWebSocket(opts.Addr, opts.Log)

	reg, err := LoadRegistry(bridge, opts.ConfigPath, opts.Log)
	if err != nil {
		return err
	}
	defer reg.Destroy()

	for _, s := range reg.GetAll() {
		s := s
		unsub := reg.Subscribe(s.ID, func() {
			fmt.Fprintf(w, "%s %s\n", shortcuts.FormatShortcut(s.Keys), s.ID)
		})
		defer unsub()
	}

	if opts.Usage != nil {
		defer usage.Track(reg, opts.Usage, "websocket")()
	}

	addr := bridge.Addr()
	fmt.Fprintf(w, "Listening on %s\n", color.CyanString("ws://%s%s", addr, keysource.KeysPath))
	if opts.Ready != nil {
		opts.Ready(addr)
	}

	<-ctx.Done()
	return nil
}

// lockedWriter serialises writes to w
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// StatsOptions contains options for the stats command
type StatsOptions struct {
	Clear  bool
	Recent int // list the newest fires instead of per-shortcut totals
}

// Stats prints recorded usage per shortcut, the most recent fires, or
// clears it
func Stats(w io.Writer, mgr *usage.Manager, opts StatsOptions) error {
	if opts.Clear {
		if err := mgr.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Usage cleared")
		return nil
	}

	if opts.Recent > 0 {
		entries, err := mgr.Recent(opts.Recent)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "No usage recorded")
			return nil
		}
		fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("%-19s  %-18s %-16s %s", "FIRED", "ID", "KEYS", "SOURCE")))
		for _, e := range entries {
			fmt.Fprintf(w, "%-19s  %-18s %-16s %s\n", e.FiredAt.Format("2006-01-02 15:04:05"), e.ShortcutID, e.Keys, e.Source)
		}
		return nil
	}

	stats, err := mgr.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, "No usage recorded")
		return nil
	}

	fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("%-18s %-16s %6s  %-19s  %-19s", "ID", "KEYS", "COUNT", "FIRST", "LAST")))
	for _, s := range stats {
		fmt.Fprintf(w, "%-18s %-16s %6d  %-19s  %-19s\n",
			s.ShortcutID,
			s.Keys,
			s.Count,
			s.FirstFired.Format("2006-01-02 15:04:05"),
			s.LastFired.Format("2006-01-02 15:04:05"),
		)
	}
	return nil
}

// Version prints the version and optionally checks for a newer release
func Version(ctx context.Context, w io.Writer, checker *version.Checker, check bool) error {
	fmt.Fprintf(w, "keydeck %s\n", version.Version)
	if !check {
		return nil
	}

	update, err := checker.Check(ctx, version.Version)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if update.Available {
		fmt.Fprintf(w, "New version available: %s (%s)\n", color.GreenString(update.Latest), update.URL)
	} else {
		fmt.Fprintln(w, "Up to date")
	}
	return nil
}
