package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

type fixedStats Stats

func (f fixedStats) Stats() Stats { return Stats(f) }

func TestStatusReporter_Report(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")
	m.Join("b", "r1")
	m.Join("c", "r2")

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	rep := StatusReporter{
		Source: fixedStats{Connections: 4, Rooms: m.List()},
		Logger: &logger,
	}
	rep.Report()

	var got struct {
		Message     string         `json:"message"`
		Connections int            `json:"connections"`
		Rooms       int            `json:"rooms"`
		Members     map[string]int `json:"members"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Message != "relay status" || got.Connections != 4 || got.Rooms != 2 {
		t.Fatalf("got=%+v", got)
	}
	if got.Members["r1"] != 2 || got.Members["r2"] != 1 {
		t.Fatalf("members=%v", got.Members)
	}
}
