package world

import (
	"bytes"
	"encoding/binary"
	"testing"

	"swarmisle/internal/sim/world/kernel/model"
)

func TestDigestAgent_LengthPrefixesID(t *testing.T) {
	var buf bytes.Buffer
	var tmp [8]byte
	digestAgent(&buf, &tmp, &model.Agent{ID: "r01", Type: model.TypeG, Status: model.StatusAlive})

	b := buf.Bytes()
	if n := binary.LittleEndian.Uint64(b[:8]); n != 3 {
		t.Fatalf("id length prefix=%d want 3", n)
	}
	if string(b[8:11]) != "r01" {
		t.Fatalf("id bytes=%q", b[8:11])
	}
}
