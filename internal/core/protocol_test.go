package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dkeye/Signal/internal/domain"
)

func TestDecodeInbound_Variants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Inbound
	}{
		{
			name: "join",
			in:   `{"type":"join","roomId":"r1"}`,
			want: Join{RoomID: "r1"},
		},
		{
			name: "leave inferred",
			in:   `{"type":"leave"}`,
			want: Leave{},
		},
		{
			name: "leave explicit",
			in:   `{"type":"leave","roomId":"r1"}`,
			want: Leave{RoomID: "r1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInbound([]byte(tt.in))
			if err != nil {
				t.Fatalf("DecodeInbound: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got=%#v, want=%#v", got, tt.want)
			}
		})
	}
}

func TestDecodeInbound_NegotiationKeepsPayloadOpaque(t *testing.T) {
	for _, typ := range []MessageType{TypeOffer, TypeAnswer, TypeCandidate, TypeICECandidate} {
		raw := `{"type":"` + string(typ) + `","targetId":"peer","payload":{"sdp":"v=0","x":[1,2]}}`
		got, err := DecodeInbound([]byte(raw))
		if err != nil {
			t.Fatalf("%s: DecodeInbound: %v", typ, err)
		}
		n, ok := got.(Negotiation)
		if !ok {
			t.Fatalf("%s: got %T, want Negotiation", typ, got)
		}
		if n.Kind() != typ {
			t.Fatalf("Kind=%q, want %q", n.Kind(), typ)
		}
		if n.TargetID != "peer" || n.RoomID != "" {
			t.Fatalf("%s: target=%q room=%q", typ, n.TargetID, n.RoomID)
		}
		if string(n.Payload) != `{"sdp":"v=0","x":[1,2]}` {
			t.Fatalf("%s: payload=%s", typ, n.Payload)
		}
	}
}

func TestDecodeInbound_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"not json", `hello`, ErrMalformedMessage},
		{"array", `[1,2]`, ErrMalformedMessage},
		{"missing type", `{"roomId":"r1"}`, ErrMalformedMessage},
		{"join without room", `{"type":"join"}`, ErrMalformedMessage},
		{"wrong field type", `{"type":"join","roomId":5}`, ErrMalformedMessage},
		{"unknown type", `{"type":"whoami"}`, ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInbound([]byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestOutboundShapes(t *testing.T) {
	f, err := Encode(NewRoomInfo("r1", nil, domain.RoleHost))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(f), `{"type":"room-info","roomId":"r1","participants":[],"role":"host"}`; got != want {
		t.Fatalf("room-info=%s, want %s", got, want)
	}

	f, _ = Encode(NewParticipantJoined("r1", "c", domain.RoleParticipant))
	if got, want := string(f), `{"type":"participant-joined","roomId":"r1","participantId":"c","role":"participant"}`; got != want {
		t.Fatalf("participant-joined=%s, want %s", got, want)
	}

	f, _ = Encode(NewParticipantLeft("r1", "b"))
	if got, want := string(f), `{"type":"participant-left","roomId":"r1","participantId":"b"}`; got != want {
		t.Fatalf("participant-left=%s, want %s", got, want)
	}

	n := Negotiation{Type: TypeOffer, Payload: json.RawMessage(`{"sdp":"x"}`)}
	f, _ = Encode(NewForwarded(n, "r1", "a"))
	if got, want := string(f), `{"type":"offer","roomId":"r1","fromUserId":"a","payload":{"sdp":"x"}}`; got != want {
		t.Fatalf("forwarded=%s, want %s", got, want)
	}

	f, _ = Encode(NewForwarded(Negotiation{Type: TypeAnswer}, "r1", "a"))
	if got, want := string(f), `{"type":"answer","roomId":"r1","fromUserId":"a","payload":null}`; got != want {
		t.Fatalf("forwarded without payload=%s, want %s", got, want)
	}
}
