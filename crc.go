package cdg

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vchimishuk/chub/cue"
)

// crcFile computes the CRC-32 of a file, the identity used to match a
// track across renames.
func crcFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}

// cueMetadata extracts title and performer for a track from a cue
// sheet. CD+G rips usually ship one per disc; the sheet-level values
// are used unless the first audio track overrides them.
func cueMetadata(file string) (title, artist string, err error) {
	sheet, err := cue.ParseFile(file)
	if err != nil {
		return "", "", err
	}

	title, artist = sheet.Title, sheet.Performer

	for _, f := range sheet.Files {
		for _, track := range f.Tracks {
			if track.DataType != cue.DataTypeAudio {
				continue
			}
			if track.Title != "" {
				title = track.Title
			}
			if track.Performer != "" {
				artist = track.Performer
			}
			return title, artist, nil
		}
	}

	return title, artist, nil
}

// songMetadata resolves title and artist for a .cdg file: a cue sheet
// with the same basename wins, otherwise an "Artist - Title" filename
// is split, otherwise the bare filename becomes the title.
func songMetadata(file string) (title, artist string) {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	if sheet := strings.TrimSuffix(file, filepath.Ext(file)) + ".cue"; fileExists(sheet) {
		if t, a, err := cueMetadata(sheet); err == nil && t != "" {
			return t, a
		}
	}

	if i := strings.Index(base, " - "); i > 0 {
		return base[i+3:], base[:i]
	}

	return base, ""
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && info.Mode().IsRegular()
}
