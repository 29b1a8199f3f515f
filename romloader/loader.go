// Package romloader identifies arcade romsets from a filesystem path.
//
// The engine loads romset contents itself from its rom paths; this package
// only works out which game a path names and where its files live. A
// romset is a zip or 7z archive named after the game, or a CHD disk image
// stored in a directory named after the game.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicCHD    = []byte("MComprHD")
)

// Extensions lists the romset file extensions, without dots.
var Extensions = []string{"zip", "chd", "7z"}

// ErrNoGameFiles is returned when an archive contains no files.
var ErrNoGameFiles = errors.New("no game files in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoGameName is returned when no game name can be derived from a path.
var ErrNoGameName = errors.New("cannot derive game name from path")

// Format is a romset container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatZIP
	Format7z
	FormatCHD
)

// String returns the format's usual file extension.
func (f Format) String() string {
	switch f {
	case FormatZIP:
		return "zip"
	case Format7z:
		return "7z"
	case FormatCHD:
		return "chd"
	default:
		return "unknown"
	}
}

// Member is one file inside a romset archive.
type Member struct {
	Name  string
	Size  uint64
	CRC32 uint32
}

// Game is an identified romset.
type Game struct {
	// Name is the engine's short game name, e.g. "pacman".
	Name string
	// RomDir is the directory the engine should search for the romset.
	RomDir string
	Path   string
	Format Format
	// Members is empty for CHD images.
	Members []Member
}

// Identify works out the game a romset path refers to. The format is
// detected from magic bytes, falling back to the file extension.
func Identify(path string) (Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return Game{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return Game{}, fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	g := Game{
		Path:   path,
		Format: detectFormat(header, path),
		RomDir: filepath.Dir(path),
	}

	switch g.Format {
	case FormatZIP:
		g.Members, err = listZIP(path)
	case Format7z:
		g.Members, err = list7z(path)
	case FormatCHD:
		// MAME keeps disks at <rompath>/<game>/<disk>.chd, so the game is
		// the parent directory and the rom path is one level further up.
		g.Name = filepath.Base(g.RomDir)
		g.RomDir = filepath.Dir(g.RomDir)
		if g.Name == "." || g.Name == string(filepath.Separator) || g.Name == "" {
			return Game{}, fmt.Errorf("%w: %s", ErrNoGameName, path)
		}
		return g, nil
	default:
		return Game{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Game{}, err
	}
	if len(g.Members) == 0 {
		return Game{}, fmt.Errorf("%w: %s", ErrNoGameFiles, path)
	}

	g.Name = baseName(path)
	if g.Name == "" {
		return Game{}, fmt.Errorf("%w: %s", ErrNoGameName, path)
	}
	return g, nil
}

// baseName returns the file name of path without its extension.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// detectFormat determines the file format based on magic bytes and extension.
func detectFormat(header []byte, path string) Format {
	// Check magic bytes first (more reliable)
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return FormatZIP
		}
	}
	if bytes.HasPrefix(header, magic7z) {
		return Format7z
	}
	if bytes.HasPrefix(header, magicCHD) {
		return FormatCHD
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FormatZIP
	case ".7z":
		return Format7z
	case ".chd":
		return FormatCHD
	}
	return FormatUnknown
}

// HasExtension reports whether name ends in one of the romset extensions.
func HasExtension(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
