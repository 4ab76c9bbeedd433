package player

import (
	"io"
	"time"

	"github.com/bodgit/cdg/graphics"
)

// PacketsPerSecond is the fixed CDG packet rate relative to the audio
// track.
const PacketsPerSecond = 300

// Player drives a Decoder from a packet stream, keeping the number of
// decoded packets in step with an externally supplied playback
// position.
type Player struct {
	reader   *PacketReader
	decoder  *graphics.Decoder
	consumed int
}

func New(r io.ReadSeeker) *Player {
	return &Player{
		reader:  NewPacketReader(r),
		decoder: graphics.NewDecoder(),
	}
}

// Decoder exposes the screen state for rendering. Read it only between
// calls to Advance.
func (p *Player) Decoder() *graphics.Decoder {
	return p.decoder
}

// Consumed returns the number of packets decoded since the last
// rewind.
func (p *Player) Consumed() int {
	return p.consumed
}

// Advance decodes every packet due at the given playback position,
// catching up in one burst. Positions at or behind the current state
// are a no-op; the decoder never runs backwards. It returns io.EOF
// once the stream is exhausted, at which point the caller should stop
// playback; packets read before exhaustion have still been applied.
func (p *Player) Advance(pos time.Duration) error {
	if pos < 0 {
		return nil
	}

	target := int(pos * PacketsPerSecond / time.Second)

	for p.consumed < target {
		pkt, err := p.reader.ReadNext()
		if err != nil {
			return err
		}
		p.decoder.Decode(pkt)
		p.consumed++
	}

	return nil
}

// Rewind resets the stream to the first packet. Graphics state is left
// alone; replayed packets will repaint the screen, normally starting
// with a Memory Preset.
func (p *Player) Rewind() error {
	if err := p.reader.Rewind(); err != nil {
		return err
	}
	p.consumed = 0
	return nil
}

// Duration returns the playing time of a CDG stream of the given size
// in bytes.
func Duration(size int64) time.Duration {
	return time.Duration(size/graphics.PacketSize) * time.Second / PacketsPerSecond
}
