package messages

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, guard *users.Guard) {
	r.Post("/messages", sendMessageHandler(svc, guard))
	r.Get("/messages/{otherUserID}", getThreadHandler(svc, guard))
	r.Get("/conversations", listConversationsHandler(svc, guard))
}

type sendMessageRequest struct {
	PetID       string `json:"petId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

type messageResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"petId"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

type conversationResponse struct {
	OtherUserID string                 `json:"otherUserId"`
	OtherUser   *users.ProfileResponse `json:"otherUser"`
	LastMessage *messageResponse       `json:"lastMessage"`
	UnreadCount int                    `json:"unreadCount"`
}

type messageEnvelope struct {
	Message messageResponse `json:"message"`
}

type messagesEnvelope struct {
	Messages []messageResponse `json:"messages"`
}

type conversationsEnvelope struct {
	Conversations []conversationResponse `json:"conversations"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje
// @Tags messages
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body sendMessageRequest true "petId, recipientId y content son obligatorios"
// @Success 201 {object} messageEnvelope
// @Failure 400 {object} map[string]string "campos faltantes"
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /messages [post]
func sendMessageHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
		if err := users.RequireUser(caller, "Unauthorized - please sign in to send messages"); err != nil {
			respond.Error(w, err)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.Send(r.Context(), caller, SendInput{
			PetID:       req.PetID,
			RecipientID: req.RecipientID,
			Content:     req.Content,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, messageEnvelope{Message: toMessageResponse(m)})
	}
}

// getThreadHandler godoc
// @Summary Conversación con otro usuario
// @Description Mensajes del par en orden ascendente por createdAt.
// @Tags messages
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param otherUserID path string true "ID del otro usuario"
// @Success 200 {object} messagesEnvelope
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /messages/{otherUserID} [get]
func getThreadHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}

		items, err := svc.GetThread(r.Context(), caller, chi.URLParam(r, "otherUserID"))
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]messageResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMessageResponse(m))
		}
		respond.JSON(w, http.StatusOK, messagesEnvelope{Messages: out})
	}
}

// listConversationsHandler godoc
// @Summary Conversaciones del usuario
// @Tags messages
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} conversationsEnvelope
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /conversations [get]
func listConversationsHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}

		items, err := svc.ListConversations(r.Context(), caller)
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]conversationResponse, 0, len(items))
		for _, s := range items {
			c := conversationResponse{OtherUserID: s.OtherUserID, UnreadCount: s.UnreadCount}
			if s.OtherUser != nil {
				p := users.ToProfileResponse(*s.OtherUser)
				c.OtherUser = &p
			}
			if s.LastMessage != nil {
				m := toMessageResponse(*s.LastMessage)
				c.LastMessage = &m
			}
			out = append(out, c)
		}
		respond.JSON(w, http.StatusOK, conversationsEnvelope{Conversations: out})
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:          m.ID,
		PetID:       m.PetID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}
