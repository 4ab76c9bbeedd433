package graphics

// PacketSize is the size in bytes of one subcode packet.
const PacketSize = 24

// cdgCommand identifies a packet belonging to the CDG graphics channel
// once the command byte has been masked to its low six bits.
const cdgCommand = 0x09

// Packet is one raw subcode packet. Only the low six bits of each byte
// carry CDG data; the top two bits belong to other subcode channels and
// are masked off before use.
type Packet [PacketSize]byte

func (p *Packet) command() byte     { return p[0] & 0x3f }
func (p *Packet) instruction() byte { return p[1] & 0x3f }

// data returns the 16-byte instruction payload.
func (p *Packet) data() []byte { return p[4:20] }

// IsGraphics reports whether the packet belongs to the CDG graphics
// channel. Packets from other subcode channels are consumed to keep
// the stream aligned but carry nothing for the decoder.
func (p *Packet) IsGraphics() bool { return p.command() == cdgCommand }
