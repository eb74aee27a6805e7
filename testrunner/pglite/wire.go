package pglite

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// startupMessage builds a Postgres startup packet for the given
// parameters (user, database, ...), the first frame pglite expects on
// a fresh connection.
func startupMessage(params map[string]string) []byte {
	var body bytes.Buffer
	binary.Write(&body, binary.BigEndian, int32(196608)) // protocol 3.0
	for k, v := range params {
		body.WriteString(k)
		body.WriteByte(0)
		body.WriteString(v)
		body.WriteByte(0)
	}
	body.WriteByte(0)

	var frame bytes.Buffer
	binary.Write(&frame, binary.BigEndian, int32(body.Len()+4))
	frame.Write(body.Bytes())
	return frame.Bytes()
}

// simpleQuery builds a 'Q' simple-query message.
func simpleQuery(sql string) []byte {
	var body bytes.Buffer
	body.WriteString(sql)
	body.WriteByte(0)

	var frame bytes.Buffer
	frame.WriteByte('Q')
	binary.Write(&frame, binary.BigEndian, int32(body.Len()+4))
	frame.Write(body.Bytes())
	return frame.Bytes()
}

// backendMessage is one decoded frame from the wire.
type backendMessage struct {
	kind byte
	body []byte
}

// row is one DataRow's column values, each either nil (SQL NULL) or the
// raw text-format bytes.
type row [][]byte

// readBackendMessages splits a buffer of concatenated backend messages
// into individual frames. It tolerates a trailing partial frame (the
// frame-boundary hiccups spec.md §4.F's retry loop exists to absorb) by
// returning what it could parse plus the count of bytes consumed.
func readBackendMessages(buf []byte) ([]backendMessage, int) {
	var out []backendMessage
	pos := 0
	for pos+5 <= len(buf) {
		kind := buf[pos]
		length := int(binary.BigEndian.Uint32(buf[pos+1 : pos+5]))
		if length < 4 || pos+1+length > len(buf) {
			break
		}
		out = append(out, backendMessage{kind: kind, body: buf[pos+5 : pos+1+length]})
		pos += 1 + length
	}
	return out, pos
}

// parseRowDescription extracts column count; column names/types aren't
// needed since every assertion kind only consumes column values.
func parseRowDescription(body []byte) int {
	if len(body) < 2 {
		return 0
	}
	return int(binary.BigEndian.Uint16(body[:2]))
}

// parseDataRow extracts each column's raw text-format value (nil for a
// SQL NULL, signalled on the wire by a -1 length).
func parseDataRow(body []byte) row {
	if len(body) < 2 {
		return nil
	}
	n := int(binary.BigEndian.Uint16(body[:2]))
	pos := 2
	out := make(row, 0, n)
	for i := 0; i < n; i++ {
		if pos+4 > len(body) {
			break
		}
		length := int(int32(binary.BigEndian.Uint32(body[pos : pos+4])))
		pos += 4
		if length < 0 {
			out = append(out, nil)
			continue
		}
		out = append(out, body[pos:pos+length])
		pos += length
	}
	return out
}

// parseErrorResponse extracts the human-readable message (field 'M')
// from an ErrorResponse body.
func parseErrorResponse(body []byte) string {
	fields := bytes.Split(body, []byte{0})
	for _, f := range fields {
		if len(f) > 1 && f[0] == 'M' {
			return string(f[1:])
		}
	}
	return "query failed"
}

// parseNotificationResponse extracts channel and payload from an 'A'
// NotificationResponse body: pid(4) + channel\0 + payload\0.
func parseNotificationResponse(body []byte) (channel, payload string) {
	if len(body) < 4 {
		return "", ""
	}
	rest := body[4:]
	parts := bytes.SplitN(rest, []byte{0}, 3)
	if len(parts) >= 1 {
		channel = string(parts[0])
	}
	if len(parts) >= 2 {
		payload = string(parts[1])
	}
	return channel, payload
}

func requireNoError(messages []backendMessage) error {
	for _, m := range messages {
		if m.kind == 'E' {
			return fmt.Errorf("%s", parseErrorResponse(m.body))
		}
	}
	return nil
}
