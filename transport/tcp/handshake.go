// File: transport/tcp/handshake.go
//
// Minimal RFC 6455 server-side handshake.

package tcp

import (
	"bufio"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// wsGUID is the fixed GUID, per RFC 6455, concatenated with the client key
// in handshake computations.
const wsGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// Upgrade reads an HTTP upgrade request from rw and answers with 101
// Switching Protocols. It validates only what the handshake needs.
//
// Clients routinely pipeline the first frame behind the upgrade request
// in the same segment, so those bytes may already sit in the handshake's
// read buffer. The returned reader yields them first and then continues
// with rw; frame traffic must be read from it, not from rw directly.
func Upgrade(rw io.ReadWriter) (io.Reader, error) {
	br := bufio.NewReader(rw)

	reqLine, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read request line: %w", err)
	}
	if !strings.HasPrefix(reqLine, "GET") {
		return nil, fmt.Errorf("not an upgrade request: %q", strings.TrimSpace(reqLine))
	}

	headers := map[string]string{}
	for {
		line, err := br.ReadString('\n')
		if err != nil || line == "\r\n" {
			break
		}
		if sep := strings.Index(line, ":"); sep > 0 {
			key := strings.ToLower(strings.TrimSpace(line[:sep]))
			headers[key] = strings.TrimSpace(line[sep+1:])
		}
	}

	if !strings.EqualFold(headers["upgrade"], "websocket") {
		return nil, fmt.Errorf("missing upgrade header")
	}
	secKey, ok := headers["sec-websocket-key"]
	if !ok {
		return nil, fmt.Errorf("missing sec-websocket-key header")
	}

	response := fmt.Sprintf("HTTP/1.1 101 Switching Protocols\r\n"+
		"Upgrade: websocket\r\n"+
		"Connection: Upgrade\r\n"+
		"Sec-WebSocket-Accept: %s\r\n\r\n", AcceptKey(secKey))
	if _, err := rw.Write([]byte(response)); err != nil {
		return nil, fmt.Errorf("write response: %w", err)
	}
	return br, nil
}

// AcceptKey computes the Sec-WebSocket-Accept value for a client key.
func AcceptKey(secWebSocketKey string) string {
	h := sha1.New()
	h.Write([]byte(strings.TrimSpace(secWebSocketKey) + wsGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
