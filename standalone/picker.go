//go:build !libretro

package standalone

import (
	"errors"

	"github.com/sqweek/dialog"
)

// ErrNoRomset is returned when the user dismisses the romset picker.
var ErrNoRomset = errors.New("no romset selected")

// PickRomset asks the user for a romset with a native file dialog.
func PickRomset() (string, error) {
	path, err := dialog.File().
		Title("Select Arcade Romset").
		Filter("Arcade romsets", "zip", "7z", "chd").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrNoRomset
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
