package romloader

import (
	"archive/zip"
	"fmt"
)

// listZIP lists the files in a ZIP romset.
func listZIP(path string) ([]Member, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	var members []Member
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		members = append(members, Member{
			Name:  f.Name,
			Size:  f.UncompressedSize64,
			CRC32: f.CRC32,
		})
	}
	return members, nil
}
