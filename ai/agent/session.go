package agent

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	// maxTurnsPerSession bounds the conversation history kept per session.
	maxTurnsPerSession = 10

	defaultIdleTimeout     = 30 * time.Minute
	defaultCleanupInterval = 5 * time.Minute
)

// Turn is one completed exchange in a session.
type Turn struct {
	UserMessage string
	Reply       string
	Timestamp   time.Time
}

// Session holds the short-term conversation history for one user.
type Session struct {
	ID         string
	UserID     string
	mu         sync.Mutex
	turns      []Turn
	lastActive time.Time
	createdAt  time.Time
}

// AddTurn appends a completed exchange, evicting the oldest when full.
func (s *Session) AddTurn(userMessage, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{
		UserMessage: userMessage,
		Reply:       reply,
		Timestamp:   time.Now(),
	})
	if len(s.turns) > maxTurnsPerSession {
		s.turns = s.turns[len(s.turns)-maxTurnsPerSession:]
	}
	s.lastActive = time.Now()
}

// History renders recent turns as conversation context for the LLM.
// Empty when the session has no prior turns.
func (s *Session) History() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent conversation:\n")
	for _, turn := range s.turns {
		b.WriteString("User: ")
		b.WriteString(turn.UserMessage)
		b.WriteString("\nAssistant: ")
		b.WriteString(turn.Reply)
		b.WriteString("\n")
	}
	return b.String()
}

// TurnCount returns the number of retained turns.
func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// SessionManager tracks active sessions and evicts idle ones in the
// background.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewSessionManager creates a manager and starts the idle cleanup loop.
// idleTimeout <= 0 uses the default of 30 minutes.
func NewSessionManager(idleTimeout time.Duration) *SessionManager {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &SessionManager{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		cancel:      cancel,
	}
	m.wg.Add(1)
	go m.cleanupLoop(ctx)
	return m
}

// GetOrCreate returns the session with the given id, creating it when the
// id is empty or unknown. The returned session always belongs to userID.
func (m *SessionManager) GetOrCreate(userID, sessionID string) *Session {
	m.mu.RLock()
	if s, ok := m.sessions[sessionID]; ok && s.UserID == userID {
		m.mu.RUnlock()
		return s
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok && s.UserID == userID {
		return s
	}

	now := time.Now()
	s := &Session{
		ID:         shortuuid.New(),
		UserID:     userID,
		lastActive: now,
		createdAt:  now,
	}
	m.sessions[s.ID] = s
	slog.Debug("session created", "session_id", s.ID, "user_id", userID)
	return s
}

// Count returns the number of tracked sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup loop.
func (m *SessionManager) Close() {
	m.cancel()
	m.wg.Wait()
}

func (m *SessionManager) cleanupLoop(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *SessionManager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTimeout {
			delete(m.sessions, id)
			slog.Debug("session evicted", "session_id", id, "user_id", s.UserID)
		}
	}
}
