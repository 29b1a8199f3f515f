package romloader

import (
	"archive/zip"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
)

// createTestZipFile creates a romset zip in dir with the given members
func createTestZipFile(t *testing.T, dir, name string, members map[string][]byte) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for member, data := range members {
		fw, err := w.Create(member)
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

func TestIdentify_Zip(t *testing.T) {
	dir := t.TempDir()
	rom := []byte{0x01, 0x02, 0x03, 0x04}
	path := createTestZipFile(t, dir, "pacman.zip", map[string][]byte{"pacman.6e": rom})

	g, err := Identify(path)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if g.Name != "pacman" {
		t.Errorf("Name = %q, want pacman", g.Name)
	}
	if g.RomDir != dir {
		t.Errorf("RomDir = %q, want %q", g.RomDir, dir)
	}
	if g.Format != FormatZIP {
		t.Errorf("Format = %v, want zip", g.Format)
	}
	if len(g.Members) != 1 {
		t.Fatalf("Members = %+v", g.Members)
	}
	m := g.Members[0]
	if m.Name != "pacman.6e" || m.Size != 4 || m.CRC32 != crc32.ChecksumIEEE(rom) {
		t.Errorf("member = %+v", m)
	}
}

func TestIdentify_ZipUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	path := createTestZipFile(t, dir, "galaga.ZIP", map[string][]byte{"gg1_1b.3p": {0xAA}})

	g, err := Identify(path)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if g.Name != "galaga" {
		t.Errorf("Name = %q, want galaga", g.Name)
	}
}

func TestIdentify_ZipSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	path := createTestZipFile(t, dir, "dkong.zip", map[string][]byte{
		"sub/":            nil,
		"sub/c_5et_g.bin": {0x01, 0x02},
	})

	g, err := Identify(path)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if len(g.Members) != 1 || g.Members[0].Name != "sub/c_5et_g.bin" {
		t.Errorf("Members = %+v", g.Members)
	}
}

func TestIdentify_EmptyZip(t *testing.T) {
	dir := t.TempDir()
	path := createTestZipFile(t, dir, "empty.zip", nil)

	_, err := Identify(path)
	if !errors.Is(err, ErrNoGameFiles) {
		t.Errorf("Expected ErrNoGameFiles, got %v", err)
	}
}

func TestIdentify_CHD(t *testing.T) {
	root := t.TempDir()
	gameDir := filepath.Join(root, "kinst")
	if err := os.Mkdir(gameDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(gameDir, "kinst.chd")
	if err := os.WriteFile(path, append(magicCHD, make([]byte, 8)...), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := Identify(path)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if g.Name != "kinst" || g.RomDir != root || g.Format != FormatCHD {
		t.Errorf("game = %+v", g)
	}
	if len(g.Members) != 0 {
		t.Errorf("CHD should have no members, got %+v", g.Members)
	}
}

func TestIdentify_FileNotFound(t *testing.T) {
	_, err := Identify("/nonexistent/path/pacman.zip")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestIdentify_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacman.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Identify(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestIdentify_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Identify(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		path   string
		want   Format
	}{
		{"zip magic", magicZIP, "file.dat", FormatZIP},
		{"empty zip magic", magicZIPEnd, "file.dat", FormatZIP},
		{"7z magic", magic7z, "file.dat", Format7z},
		{"chd magic", magicCHD, "file.dat", FormatCHD},
		{"zip extension", nil, "pacman.zip", FormatZIP},
		{"7z extension", nil, "pacman.7z", Format7z},
		{"chd extension", nil, "disk.CHD", FormatCHD},
		{"magic wins over extension", magic7z, "pacman.zip", Format7z},
		{"partial magic", []byte{0x37, 0x7A, 0xBC}, "file.dat", FormatUnknown},
		{"unknown", []byte("hello"), "readme.txt", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.header, tt.path); got != tt.want {
				t.Errorf("detectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasExtension(t *testing.T) {
	tests := map[string]bool{
		"pacman.zip":  true,
		"PACMAN.ZIP":  true,
		"kinst.chd":   true,
		"galaga.7z":   true,
		"pacman.rar":  false,
		"pacman":      false,
		"zip":         false,
		"dir.zip/rom": false,
	}
	for name, want := range tests {
		if got := HasExtension(name); got != want {
			t.Errorf("HasExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFormatString(t *testing.T) {
	tests := map[Format]string{
		FormatZIP:     "zip",
		Format7z:      "7z",
		FormatCHD:     "chd",
		FormatUnknown: "unknown",
	}
	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}
