package cdg

import (
	"bytes"
	"image"
	"image/gif"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cdgStream synthesizes a stream of the given packet count: a color
// table load and a memory preset, padded out with packets from other
// subcode channels.
func cdgStream(packets int) []byte {
	b := make([]byte, packets*24)

	b[0], b[1] = 0x09, 30 // load color table low
	copy(b[4:20], []byte{
		0x3f, 0x3f, // white
		0x3c, 0x00, // red
	})

	b[24], b[25] = 0x09, 1 // memory preset
	b[28] = 1              // red

	return b
}

func TestScanRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Simon and Garfunkel - The Boxer.cdg")

	// 600 packets is two seconds of graphics.
	require.NoError(t, os.WriteFile(file, cdgStream(600), 0o644))

	l, err := New(filepath.Join(dir, "songs.db"), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Scan(dir))

	songs, err := l.DB().Songs()
	require.NoError(t, err)
	require.Len(t, songs, 1)

	s := songs[0]
	assert.Equal(t, file, s.Path)
	assert.Equal(t, "The Boxer", s.Title)
	assert.Equal(t, "Simon and Garfunkel", s.Artist)
	assert.Equal(t, 2*time.Second, s.Duration)
	assert.Zero(t, s.AudioDuration)
	assert.NotEmpty(t, s.CRC)

	found, err := l.DB().FindSongByCRC(s.CRC)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, s, *found)

	thumb, err := l.DB().Thumbnail(file)
	require.NoError(t, err)
	require.NotEmpty(t, thumb)

	m, err := gif.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 147, 102), m.Bounds())
}

func TestScanRescan(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "theboxer.cdg")
	require.NoError(t, os.WriteFile(file, cdgStream(300), 0o644))

	l, err := New(filepath.Join(dir, "songs.db"), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	defer l.Close()

	// Scanning twice refreshes entries rather than duplicating them.
	require.NoError(t, l.Scan(dir))
	require.NoError(t, l.Scan(dir))

	songs, err := l.DB().Songs()
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "theboxer", songs[0].Title)
	assert.Empty(t, songs[0].Artist)
	assert.Equal(t, time.Second, songs[0].Duration)
}
