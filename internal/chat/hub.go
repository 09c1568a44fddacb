// Package chat relays messages between a buyer and a vendor who speak different
// languages, translating each message for every listener.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mandi-mitra/internal/services/translate"
)

var (
	ErrRoomNotFound = errors.New("chat room not found")
	ErrInvalidRole  = errors.New("role must be user or vendor")
)

const (
	RoleUser   = "user"
	RoleVendor = "vendor"
)

const sendBuffer = 16

// roomTTL is how long a room may sit with nobody in it before it is dropped.
const roomTTL = 10 * time.Minute

// Message is one utterance as delivered to a listener.
type Message struct {
	ID             string `json:"id"`
	Speaker        string `json:"speaker"`
	OriginalText   string `json:"originalText"`
	OriginalLang   string `json:"originalLang"`
	TranslatedText string `json:"translatedText"`
	TranslatedLang string `json:"translatedLang"`
}

// Member is one connected participant.
type Member struct {
	Role string
	Lang string
	send chan Message
}

// Messages delivers the member's inbound messages. It is closed when the member leaves.
func (m *Member) Messages() <-chan Message {
	return m.send
}

// Room is a conversation between members.
type Room struct {
	ID string

	created    time.Time
	translator translate.Translator
	mu         sync.Mutex
	members    map[*Member]struct{}
}

func (r *Room) join(role, lang string) (*Member, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != RoleUser && role != RoleVendor {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	lang = translate.Normalize(lang)
	if lang == "" {
		lang = "en"
	}

	m := &Member{Role: role, Lang: lang, send: make(chan Message, sendBuffer)}
	r.mu.Lock()
	r.members[m] = struct{}{}
	r.mu.Unlock()
	return m, nil
}

func (r *Room) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

func (r *Room) leave(m *Member) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m]; ok {
		delete(r.members, m)
		close(m.send)
	}
	return len(r.members)
}

// Say translates text from the speaker's language into each listener's language and
// delivers it. The speaker gets an echo carrying the first translation made.
func (r *Room) Say(ctx context.Context, from *Member, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	r.mu.Lock()
	listeners := make([]*Member, 0, len(r.members))
	for m := range r.members {
		if m != from {
			listeners = append(listeners, m)
		}
	}
	r.mu.Unlock()

	id := uuid.NewString()
	translations := make(map[string]string)
	echo := Message{ID: id, Speaker: from.Role, OriginalText: text, OriginalLang: from.Lang, TranslatedText: text, TranslatedLang: from.Lang}
	for i, m := range listeners {
		translated, ok := translations[m.Lang]
		if !ok {
			translated = r.translate(ctx, text, from.Lang, m.Lang)
			translations[m.Lang] = translated
		}
		msg := Message{ID: id, Speaker: from.Role, OriginalText: text, OriginalLang: from.Lang, TranslatedText: translated, TranslatedLang: m.Lang}
		if i == 0 {
			echo.TranslatedText, echo.TranslatedLang = translated, m.Lang
		}
		r.deliver(m, msg)
	}
	r.deliver(from, echo)
}

func (r *Room) translate(ctx context.Context, text, source, target string) string {
	if source == target {
		return text
	}
	out, err := r.translator.Translate(ctx, text, source, target)
	if err != nil {
		log.Printf("chat %s: translation %s->%s failed: %v", r.ID, source, target, err)
		return text
	}
	return out
}

func (r *Room) deliver(m *Member, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m]; !ok {
		return
	}
	select {
	case m.send <- msg:
	default:
		log.Printf("chat %s: dropping message for slow %s listener", r.ID, m.Role)
	}
}

// Hub owns the open rooms.
type Hub struct {
	translator translate.Translator
	origins    []string
	now        func() time.Time

	mu        sync.RWMutex
	rooms     map[string]*Room
	lastSweep time.Time
}

// NewHub creates a hub. origins restricts websocket Origin headers; empty allows any.
func NewHub(translator translate.Translator, origins []string) *Hub {
	if translator == nil {
		translator = translate.Passthrough{}
	}
	return &Hub{
		translator: translator,
		origins:    origins,
		now:        time.Now,
		rooms:      make(map[string]*Room),
	}
}

// CreateRoom opens a new empty room. Rooms nobody joined within roomTTL are dropped.
func (h *Hub) CreateRoom() *Room {
	now := h.now()
	room := &Room{
		ID:         uuid.NewString(),
		created:    now,
		translator: h.translator,
		members:    make(map[*Member]struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if now.Sub(h.lastSweep) > roomTTL {
		for id, r := range h.rooms {
			if now.Sub(r.created) > roomTTL && r.size() == 0 {
				delete(h.rooms, id)
				log.Printf("chat %s: expired unused", id)
			}
		}
		h.lastSweep = now
	}
	h.rooms[room.ID] = room
	return room
}

// Room looks up an open room.
func (h *Hub) Room(id string) (*Room, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.room(id)
}

func (h *Hub) room(id string) (*Room, error) {
	room, ok := h.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	return room, nil
}

// Join adds a member to a room.
func (h *Hub) Join(roomID, role, lang string) (*Room, *Member, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, err := h.room(roomID)
	if err != nil {
		return nil, nil, err
	}
	m, err := room.join(role, lang)
	if err != nil {
		return nil, nil, err
	}
	return room, m, nil
}

// Leave removes a member and closes the room once it is empty.
func (h *Hub) Leave(room *Room, m *Member) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room.leave(m) > 0 {
		return
	}
	if h.rooms[room.ID] == room {
		delete(h.rooms, room.ID)
		log.Printf("chat %s: closed", room.ID)
	}
}
