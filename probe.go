package cdg

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/bodgit/cdg/graphics"
	"github.com/bodgit/cdg/player"
)

// Info describes a single CDG file without touching the database.
type Info struct {
	Title         string
	Artist        string
	Packets       int64
	Duration      time.Duration
	CRC           string
	Audio         string
	AudioDuration time.Duration
}

// Probe inspects a .cdg file and its companion audio, if any.
func Probe(file string) (*Info, error) {
	stat, err := os.Stat(file)
	if err != nil {
		return nil, err
	}

	crc, err := crcFile(file)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Packets:  stat.Size() / graphics.PacketSize,
		Duration: player.Duration(stat.Size()),
		CRC:      crc,
	}
	info.Title, info.Artist = songMetadata(file)

	if audio, err := findAudio(file); err == nil && audio != "" {
		info.Audio = audio
		info.AudioDuration, _ = audioDuration(audio)
	}

	return info, nil
}

// Extensions tried when looking for the companion audio track, in
// order of preference.
var audioExts = []string{".wav", ".ogg", ".mp3"}

// findAudio locates the audio file belonging to a .cdg file: same
// basename, matched case-insensitively against the directory listing.
// It returns an empty string when there is none, which is not an
// error; graphics-only playback is valid.
func findAudio(cdgFile string) (string, error) {
	dir := filepath.Dir(cdgFile)
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(cdgFile), filepath.Ext(cdgFile)))

	d, err := os.Open(dir)
	if err != nil {
		return "", err
	}
	defer d.Close()

	names, err := d.Readdirnames(0)
	if err != nil {
		return "", err
	}

	for _, ext := range audioExts {
		for _, name := range names {
			if strings.ToLower(name) == base+ext {
				return filepath.Join(dir, name), nil
			}
		}
	}

	return "", nil
}

// audioDuration probes the playing time of an audio file. Formats it
// cannot parse yield zero rather than an error; the duration is
// advisory library metadata.
func audioDuration(file string) (time.Duration, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return 0, err
		}
		// The decoded stream is always 16-bit stereo, so four bytes
		// per sample.
		length := dec.Length()
		if length < 0 {
			return 0, nil
		}
		return time.Duration(length/4) * time.Second / time.Duration(dec.SampleRate()), nil
	case ".wav":
		dec := wav.NewDecoder(f)
		if dec == nil || !dec.IsValidFile() {
			return 0, nil
		}
		return dec.Duration()
	}

	return 0, nil
}
