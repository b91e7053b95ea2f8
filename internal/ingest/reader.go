package ingest

import (
	"bufio"
	"io"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

// Line pairs a decoded request with the error encountered decoding or
// validating it, so a bad line can be logged and skipped without killing
// the reader: decode failures are untrusted-input errors, not invariant
// breaches.
type Line struct {
	Request *OrderRequest
	Err     error
}

// Reader drains newline-delimited JSON requests from src onto Lines,
// supervised by a tomb.v2 tomb: a scanner failure kills the tomb with a
// cause instead of silently stalling the channel's only producer.
type Reader struct {
	src   io.Reader
	Lines chan Line
	log   zerolog.Logger
}

// NewReader wires a Reader over src. Pair-matching and full order validation
// happen downstream, in OrderRequest.ToOrder.
func NewReader(src io.Reader, log zerolog.Logger) *Reader {
	return &Reader{
		src:   src,
		Lines: make(chan Line, 256),
		log:   log,
	}
}

// Run scans src line by line until EOF or the tomb is dying, emitting one
// Line per non-empty input line; empty lines are skipped. It closes Lines on return, so callers range over
// Lines until the channel closes rather than polling the tomb directly.
func (r *Reader) Run(t *tomb.Tomb) error {
	defer close(r.Lines)

	scanner := bufio.NewScanner(r.src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-t.Dying():
			return nil
		default:
		}

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		req, err := Decode(raw)
		if err != nil {
			r.log.Warn().Err(err).Msg("skipping malformed line")
			select {
			case r.Lines <- Line{Err: err}:
			case <-t.Dying():
				return nil
			}
			continue
		}

		select {
		case r.Lines <- Line{Request: req}:
		case <-t.Dying():
			return nil
		}
	}
	return scanner.Err()
}
