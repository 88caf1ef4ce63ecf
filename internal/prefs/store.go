package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/pelletier/go-toml/v2"
)

// DefaultTheme is used until the user picks another.
const DefaultTheme = "dark"

// Themes lists the themes the front end knows how to draw.
var Themes = []string{"dark", "light"}

// Prefs is the persisted preference set.
type Prefs struct {
	Density view.Density `toml:"density"`
	Theme   string       `toml:"theme"`
}

// Defaults returns card density with the dark theme.
func Defaults() Prefs {
	return Prefs{Density: view.DensityCard, Theme: DefaultTheme}
}

func (p Prefs) normalized() Prefs {
	p.Density = view.ParseDensity(string(p.Density))
	if !validTheme(p.Theme) {
		p.Theme = DefaultTheme
	}
	return p
}

func validTheme(theme string) bool {
	return slices.Contains(Themes, theme)
}

// CheckDensity rejects layouts the front end cannot draw.
func CheckDensity(d view.Density) error {
	if d != view.DensityCard && d != view.DensityCompact {
		return fmt.Errorf("unknown density %q", d)
	}
	return nil
}

// CheckTheme rejects themes not listed in Themes.
func CheckTheme(theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return nil
}

// Store reads and writes Prefs at a fixed path. An empty path keeps
// preferences in memory only.
type Store struct {
	path string

	mu      sync.Mutex
	current Prefs
}

// Open loads the store at path. A missing file yields defaults; unknown or
// invalid values fall back to their defaults.
func Open(path string) (*Store, error) {
	s := &Store{path: path, current: Defaults()}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return s, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	s.current = p.normalized()
	return s, nil
}

// Path returns the backing file, or "".
func (s *Store) Path() string {
	return s.path
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetDensity persists a new density.
func (s *Store) SetDensity(d view.Density) error {
	if err := CheckDensity(d); err != nil {
		return err
	}
	return s.update(func(p *Prefs) { p.Density = d })
}

// SetTheme persists a new theme.
func (s *Store) SetTheme(theme string) error {
	if err := CheckTheme(theme); err != nil {
		return err
	}
	return s.update(func(p *Prefs) { p.Theme = theme })
}

func (s *Store) update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	fn(&next)
	if err := s.write(next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// write replaces the file atomically so a crash never leaves half a file.
func (s *Store) write(p Prefs) error {
	if s.path == "" {
		return nil
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
