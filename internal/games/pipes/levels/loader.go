// Package levels provides stage loading for the pipes game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete stage definition.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Pipes    [][]core.PipeSpec
	Metadata map[string]string
	FilePath string
}

// Stage returns the level as a core stage snapshot.
func (l *Level) Stage() core.Stage {
	return core.Stage{
		ID:     l.ID,
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Pipes:  l.Pipes,
	}
}

// ToGrid builds a playable grid, repairing malformed data.
func (l *Level) ToGrid() (*core.Grid, []core.Anomaly) {
	return core.FromStage(l.Stage())
}

// FromFormat builds a Level from parsed file data.
func FromFormat(parsed formats.Level, filePath string) Level {
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Pipes:    parsed.Pipes,
		Metadata: parsed.Metadata,
		FilePath: filePath,
	}
}

// Loader handles loading levels from a file tree.
type Loader struct {
	Root   string
	Logger *log.Logger

	fsys fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Builtin returns a loader over the stages compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: builtin stages missing: %v", err))
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping stage file", "path", p, "err", err)
			}
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
// Files without an id take their base name.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	ext := path.Ext(p)
	parsed, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}
	if parsed.ID == "" {
		parsed.ID = strings.TrimSuffix(path.Base(p), ext)
	}
	if parsed.Name == "" {
		parsed.Name = parsed.ID
	}

	return FromFormat(parsed, filepath.Join(l.Root, filepath.FromSlash(p))), nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// ReadFile parses a stage file from disk outside any loader root.
func ReadFile(filePath string) (Level, error) {
	dir, name := filepath.Split(filePath)
	if dir == "" {
		dir = "."
	}
	return NewLoader(dir).LoadFile(name)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
