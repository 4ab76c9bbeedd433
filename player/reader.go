/*
Package player paces a CDG stream against an audio clock.

The caller polls Player.Advance with the elapsed playback position,
ideally at least every 100ms; each call decodes however many packets
have become due since the last one, so irregular polling never drifts
from the audio. Nothing here reads a clock or touches audio hardware;
the position comes from whatever owns playback.
*/
package player

import (
	"io"

	"github.com/bodgit/cdg/graphics"
)

// PacketReader reads 24-byte subcode packets sequentially from a CDG
// stream.
type PacketReader struct {
	r io.ReadSeeker
}

func NewPacketReader(r io.ReadSeeker) *PacketReader {
	return &PacketReader{r: r}
}

// ReadNext returns the next packet, or io.EOF once the stream is
// exhausted. A truncated trailing packet is normal for CDG rips and is
// reported as io.EOF rather than an error.
func (pr *PacketReader) ReadNext() (graphics.Packet, error) {
	var p graphics.Packet
	if _, err := io.ReadFull(pr.r, p[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return graphics.Packet{}, err
	}
	return p, nil
}

// Rewind repositions the reader at the first packet. It is idempotent.
func (pr *PacketReader) Rewind() error {
	_, err := pr.r.Seek(0, io.SeekStart)
	return err
}
