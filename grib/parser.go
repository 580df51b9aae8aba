package grib

import (
	"bytes"
	"encoding/binary"
)

// indicatorLength is the size of the GRIB2 indicator section (section 0),
// which contains the magic bytes, discipline/edition octets, and the total
// message length.
const indicatorLength = 16

// maxMessageLength is a sanity ceiling on the declared message length.
// A length field above this is treated as a false marker match rather
// than a real message.
const maxMessageLength = 1000000000

var (
	gribMagic = []byte("GRIB")
	endMarker = []byte("7777")
)

// Message holds the raw bytes of one complete GRIB2 message, including
// the indicator section and the trailing end marker.
type Message []byte

// StreamParser accumulates incoming bytes and extracts complete GRIB2
// messages from them. It tolerates arbitrary chunking of its input and
// skips over any bytes that do not belong to a well-framed message.
//
// A StreamParser is not safe for concurrent use; feed one parser from
// a single goroutine.
type StreamParser struct {
	buffer []byte
}

// NewStreamParser creates a StreamParser ready to accept data.
func NewStreamParser() *StreamParser {
	return &StreamParser{
		buffer: make([]byte, 0, 64*1024),
	}
}

// Feed appends data to the parser's buffer and returns every complete
// message that can now be extracted, in the order in which they appear
// in the stream. It returns an empty slice when no message is complete
// yet. Feed never fails; malformed input is skipped rather than
// reported.
func (p *StreamParser) Feed(data []byte) []Message {
	p.buffer = append(p.buffer, data...)
	messages := make([]Message, 0)
	for {
		before := len(p.buffer)
		message := p.extractMessage()
		if message != nil {
			messages = append(messages, message)
			continue
		}
		if len(p.buffer) == before {
			break
		}
	}
	return messages
}

// Buffered returns the number of bytes held back awaiting more data.
func (p *StreamParser) Buffered() int {
	return len(p.buffer)
}

// extractMessage makes a single attempt to remove one message from the
// head of the buffer. It returns nil when no complete message is
// available, which does not necessarily mean no progress was made:
// garbage before a marker, a false marker match, or a corrupted
// candidate are all consumed so that a later attempt can move on.
func (p *StreamParser) extractMessage() Message {
	position := bytes.Index(p.buffer, gribMagic)
	if position < 0 {
		return nil
	}
	// Discard any noise preceding the marker.
	if position > 0 {
		p.buffer = p.buffer[position:]
	}
	if len(p.buffer) < indicatorLength {
		return nil
	}
	messageLength := binary.BigEndian.Uint64(p.buffer[8:16])
	if messageLength > maxMessageLength {
		// The marker match was a false positive inside other data.
		// Skip the marker itself and let the next attempt rescan.
		p.buffer = p.buffer[len(gribMagic):]
		return nil
	}
	if uint64(len(p.buffer)) < messageLength {
		return nil
	}
	candidate := make([]byte, messageLength)
	copy(candidate, p.buffer[:messageLength])
	p.buffer = p.buffer[messageLength:]
	if len(candidate) < len(endMarker) || !bytes.Equal(candidate[len(candidate)-len(endMarker):], endMarker) {
		// Corrupted message: the declared length did not land on an
		// end marker. The candidate bytes are dropped without
		// rescanning inside them.
		return nil
	}
	return Message(candidate)
}
