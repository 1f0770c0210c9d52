package core

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/Signal/internal/domain"
)

type MessageType string

const (
	TypeJoin      MessageType = "join"
	TypeLeave     MessageType = "leave"
	TypeOffer     MessageType = "offer"
	TypeAnswer    MessageType = "answer"
	TypeCandidate MessageType = "candidate"

	// TypeICECandidate is what older browser clients send. It is routed
	// exactly like TypeCandidate.
	TypeICECandidate MessageType = "ice-candidate"

	TypeRoomInfo          MessageType = "room-info"
	TypeParticipantJoined MessageType = "participant-joined"
	TypeParticipantLeft   MessageType = "participant-left"
)

// Inbound is one of Join, Leave or Negotiation.
type Inbound interface {
	Kind() MessageType
}

type Join struct {
	RoomID domain.RoomID
}

// Leave with an empty RoomID leaves whatever room the sender is in.
type Leave struct {
	RoomID domain.RoomID
}

// Negotiation carries an offer, answer or candidate. Payload is opaque to the
// relay and is forwarded byte for byte.
type Negotiation struct {
	Type     MessageType
	RoomID   domain.RoomID
	TargetID domain.ConnID
	Payload  json.RawMessage
}

func (Join) Kind() MessageType          { return TypeJoin }
func (Leave) Kind() MessageType         { return TypeLeave }
func (n Negotiation) Kind() MessageType { return n.Type }

type envelope struct {
	Type     MessageType     `json:"type"`
	RoomID   domain.RoomID   `json:"roomId"`
	TargetID domain.ConnID   `json:"targetId"`
	Payload  json.RawMessage `json:"payload"`
}

// DecodeInbound parses one text frame. Frames that are not JSON objects, lack
// a type, or are a join without a room fail with ErrMalformedMessage; a well
// formed frame with an unrecognised type fails with ErrUnknownType.
func DecodeInbound(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch env.Type {
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	case TypeJoin:
		if env.RoomID == "" {
			return nil, fmt.Errorf("%w: join without roomId", ErrMalformedMessage)
		}
		return Join{RoomID: env.RoomID}, nil
	case TypeLeave:
		return Leave{RoomID: env.RoomID}, nil
	case TypeOffer, TypeAnswer, TypeCandidate, TypeICECandidate:
		return Negotiation{
			Type:     env.Type,
			RoomID:   env.RoomID,
			TargetID: env.TargetID,
			Payload:  env.Payload,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

// RoomInfoMessage goes to the joining client only.
type RoomInfoMessage struct {
	Type         MessageType     `json:"type"`
	RoomID       domain.RoomID   `json:"roomId"`
	Participants []domain.ConnID `json:"participants"`
	Role         domain.Role     `json:"role"`
}

type ParticipantJoinedMessage struct {
	Type          MessageType   `json:"type"`
	RoomID        domain.RoomID `json:"roomId"`
	ParticipantID domain.ConnID `json:"participantId"`
	Role          domain.Role   `json:"role"`
}

type ParticipantLeftMessage struct {
	Type          MessageType   `json:"type"`
	RoomID        domain.RoomID `json:"roomId"`
	ParticipantID domain.ConnID `json:"participantId"`
}

type ForwardedMessage struct {
	Type       MessageType     `json:"type"`
	RoomID     domain.RoomID   `json:"roomId"`
	FromUserID domain.ConnID   `json:"fromUserId"`
	Payload    json.RawMessage `json:"payload"`
}

func NewRoomInfo(room domain.RoomID, participants []domain.ConnID, role domain.Role) RoomInfoMessage {
	if participants == nil {
		participants = []domain.ConnID{}
	}
	return RoomInfoMessage{Type: TypeRoomInfo, RoomID: room, Participants: participants, Role: role}
}

func NewParticipantJoined(room domain.RoomID, who domain.ConnID, role domain.Role) ParticipantJoinedMessage {
	return ParticipantJoinedMessage{Type: TypeParticipantJoined, RoomID: room, ParticipantID: who, Role: role}
}

func NewParticipantLeft(room domain.RoomID, who domain.ConnID) ParticipantLeftMessage {
	return ParticipantLeftMessage{Type: TypeParticipantLeft, RoomID: room, ParticipantID: who}
}

func NewForwarded(n Negotiation, room domain.RoomID, from domain.ConnID) ForwardedMessage {
	payload := n.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return ForwardedMessage{Type: n.Type, RoomID: room, FromUserID: from, Payload: payload}
}

// Encode marshals an outbound message into a frame.
func Encode(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}
