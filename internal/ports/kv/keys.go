package kv

import (
	"sort"
	"strings"
)

// Prefijos del namespace plano.
const (
	PrefixUser         = "user:"
	PrefixPet          = "pet:"
	PrefixMessage      = "message:"
	PrefixConversation = "conversation:"
	PrefixIdentity     = "identity:"
)

func UserKey(id string) string    { return PrefixUser + id }
func PetKey(id string) string     { return PrefixPet + id }
func MessageKey(id string) string { return PrefixMessage + id }

// ConversationKey arma la key canónica del par: los ids se ordenan antes de unirlos,
// así (A,B) y (B,A) caen en el mismo hilo.
func ConversationKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return PrefixConversation + strings.Join(pair, ":")
}

// ConversationParticipants hace el camino inverso de ConversationKey.
func ConversationParticipants(key string) (string, string, bool) {
	rest, ok := strings.CutPrefix(key, PrefixConversation)
	if !ok {
		return "", "", false
	}
	a, b, ok := strings.Cut(rest, ":")
	if !ok || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
