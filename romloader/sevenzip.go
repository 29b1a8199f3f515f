package romloader

import (
	"fmt"

	"github.com/bodgit/sevenzip"
)

// list7z lists the files in a 7z romset.
func list7z(path string) ([]Member, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	var members []Member
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		members = append(members, Member{
			Name:  f.Name,
			Size:  f.UncompressedSize,
			CRC32: f.CRC32,
		})
	}
	return members, nil
}
