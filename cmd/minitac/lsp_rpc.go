package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
)

// errMalformedMessage marks a frame that was read completely but whose body
// is not JSON. The stream is still in sync, so the server skips it.
var errMalformedMessage = errors.New("malformed message")

// rpcConn frames JSON-RPC messages with Content-Length headers.
type rpcConn struct {
	in  *textproto.Reader
	out *bufio.Writer
}

func newRPCConn(r io.Reader, w io.Writer) *rpcConn {
	return &rpcConn{
		in:  textproto.NewReader(bufio.NewReader(r)),
		out: bufio.NewWriter(w),
	}
}

func (c *rpcConn) read(v any) error {
	header, err := c.in.ReadMIMEHeader()
	if err != nil {
		if errors.Is(err, io.EOF) && len(header) == 0 {
			return io.EOF
		}
		return err
	}
	raw := header.Get("Content-Length")
	if raw == "" {
		return fmt.Errorf("missing Content-Length header")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid Content-Length %q", raw)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(c.in.R, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}
	return nil
}

func (c *rpcConn) write(v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.out, "Content-Length: %d\r\n\r\n", len(body)); err != nil {
		return err
	}
	if _, err := c.out.Write(body); err != nil {
		return err
	}
	return c.out.Flush()
}
