package wire

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// maxFrameLen guards against a corrupt or hostile length prefix causing an
// unbounded allocation; no real Request/Response this protocol defines
// comes close to it.
const maxFrameLen = 64 << 20 // 64 MiB

// writeFrame writes one self-describing record to w, preceded by its
// length: a 4-byte big-endian length prefix followed by the JSON
// encoding of v.
func writeFrame(w io.Writer, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: encode frame: %w", err)
	}
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(payload)))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return fmt.Errorf("wire: write frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: write frame payload: %w", err)
	}
	return nil
}

// readFrame reads one self-describing record from r into v.
func readFrame(r io.Reader, v interface{}) error {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	if n > maxFrameLen {
		return fmt.Errorf("wire: frame length %d exceeds max %d", n, maxFrameLen)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("wire: read frame payload: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("wire: decode frame: %w", err)
	}
	return nil
}

// Encoder writes Requests or Responses as length-prefixed frames to a
// buffered writer.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder wraps w in a buffered, frame-writing Encoder.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// EncodeRequest writes one Request frame and flushes it.
func (e *Encoder) EncodeRequest(req Request) error {
	if err := writeFrame(e.w, req); err != nil {
		return err
	}
	return e.w.Flush()
}

// EncodeResponse writes one Response frame and flushes it.
func (e *Encoder) EncodeResponse(resp Response) error {
	if err := writeFrame(e.w, resp); err != nil {
		return err
	}
	return e.w.Flush()
}

// Decoder reads Requests or Responses from length-prefixed frames on a
// buffered reader.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r in a buffered, frame-reading Decoder.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// DecodeRequest reads one Request frame. Returns the bare io.EOF (as
// io.ReadFull reports it, unwrapped) when the peer has closed the
// connection cleanly between frames.
func (d *Decoder) DecodeRequest() (Request, error) {
	var req Request
	err := readFrame(d.r, &req)
	return req, err
}

// DecodeResponse reads one Response frame.
func (d *Decoder) DecodeResponse() (Response, error) {
	var resp Response
	err := readFrame(d.r, &resp)
	return resp, err
}
