package messages

import (
	"time"

	"pet-marketplace/internal/domain/users"
)

// Message es inmutable una vez creado. Read se guarda en false y ningún endpoint lo cambia.
type Message struct {
	ID          string
	PetID       string
	SenderID    string
	RecipientID string
	Content     string
	Read        bool
	CreatedAt   time.Time
}

// Pair es el par canónico de participantes: A <= B.
// (x, y) y (y, x) producen el mismo Pair, así hay un solo hilo por par de usuarios.
type Pair struct {
	A string
	B string
}

func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Other devuelve el otro participante; ok=false si id no es parte del par.
func (p Pair) Other(id string) (string, bool) {
	switch id {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	default:
		return "", false
	}
}

// Thread es una entrada del índice: ids de mensajes del par en orden de envío.
type Thread struct {
	Pair       Pair
	MessageIDs []string
}

// Summary resume una conversación para el listado. OtherUser/LastMessage son best-effort.
type Summary struct {
	OtherUserID string
	OtherUser   *users.Profile
	LastMessage *Message
	UnreadCount int
}
