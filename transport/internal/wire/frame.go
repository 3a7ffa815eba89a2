package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// MemType is the fabric's internal memory-type enumeration, carried on every
// frame so the receiving side can pick the matching data-movement path.
type MemType uint8

const (
	MemHost    MemType = 0
	MemCUDA    MemType = 1
	MemROCm    MemType = 2
	MemUnknown MemType = 255
)

// Frame is one tagged message on the wire.
type Frame struct {
	Payload []byte
	Tag     uint64
	Mem     MemType
}

// frame header past the u32 length prefix: u64 tag + u8 mem type
const headerSize = 9

// WriteFrame encodes f onto w with a u32 little-endian length prefix.
func WriteFrame(w *bufio.Writer, f *Frame, maxPayload int) error {
	if len(f.Payload) > maxPayload {
		return fmt.Errorf("frame payload %d exceeds limit %d", len(f.Payload), maxPayload)
	}

	var hdr [4 + headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(headerSize+len(f.Payload)))
	binary.LittleEndian.PutUint64(hdr[4:12], f.Tag)
	hdr[12] = byte(f.Mem)

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(f.Payload); err != nil {
		return err
	}
	return w.Flush()
}

// ReadFrame decodes one frame from r. The returned payload is freshly
// allocated and owned by the caller.
func ReadFrame(r *bufio.Reader, maxPayload int) (*Frame, error) {
	var lenbuf [4]byte
	if _, err := io.ReadFull(r, lenbuf[:]); err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(lenbuf[:]))
	if n < headerSize || n > headerSize+maxPayload {
		return nil, fmt.Errorf("invalid frame size %d", n)
	}

	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}

	f := &Frame{
		Tag: binary.LittleEndian.Uint64(hdr[0:8]),
		Mem: MemType(hdr[8]),
	}

	payload := make([]byte, n-headerSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	f.Payload = payload
	return f, nil
}
