package pglite

import (
	"bytes"
	"testing"
)

func TestSimpleQueryFrameShape(t *testing.T) {
	frame := simpleQuery("SELECT 1")
	if frame[0] != 'Q' {
		t.Fatalf("expected 'Q' tag, got %q", frame[0])
	}
	msgs, consumed := readBackendMessages(frame)
	if consumed != len(frame) {
		t.Fatalf("consumed %d of %d bytes", consumed, len(frame))
	}
	if len(msgs) != 1 || msgs[0].kind != 'Q' {
		t.Fatalf("unexpected parse: %+v", msgs)
	}
}

func TestReadBackendMessagesToleratesTrailingPartialFrame(t *testing.T) {
	full := simpleQuery("X")
	buf := append(append([]byte{}, full...), 'Z', 0, 0) // incomplete trailing frame
	msgs, consumed := readBackendMessages(buf)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 complete message, got %d", len(msgs))
	}
	if consumed != len(full) {
		t.Fatalf("consumed = %d, want %d", consumed, len(full))
	}
}

func TestParseDataRowHandlesNullColumn(t *testing.T) {
	body := []byte{0, 2, 0, 0, 0, 1, 'x', 0xFF, 0xFF, 0xFF, 0xFF}
	r := parseDataRow(body)
	if len(r) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(r))
	}
	if !bytes.Equal(r[0], []byte("x")) {
		t.Fatalf("first column = %q", r[0])
	}
	if r[1] != nil {
		t.Fatalf("expected null second column, got %q", r[1])
	}
}

func TestParseErrorResponseExtractsMessageField(t *testing.T) {
	body := []byte("SERROR\x00C23505\x00Mduplicate key value\x00\x00")
	msg := parseErrorResponse(body)
	if msg != "duplicate key value" {
		t.Fatalf("parseErrorResponse = %q", msg)
	}
}

func TestParseNotificationResponseExtractsChannelAndPayload(t *testing.T) {
	body := append([]byte{0, 0, 0, 1}, []byte("orders\x00shipped\x00")...)
	channel, payload := parseNotificationResponse(body)
	if channel != "orders" || payload != "shipped" {
		t.Fatalf("channel=%q payload=%q", channel, payload)
	}
}
