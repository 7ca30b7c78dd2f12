package registration

import (
	"sync"

	"github.com/t1ery/AssistBot/internal/user"
)

// State - текущий шаг регистрации.
type State int

const (
	StateAwaitingName State = iota + 1
	StateAwaitingGender
	StateAwaitingAge
	StateAwaitingStatus
	StateAwaitingCity
	StateAwaitingConfirm
)

// Session - незавершённая регистрация одного пользователя. Живёт только в
// памяти: в хранилище анкета попадает единственный раз, при подтверждении.
type Session struct {
	State    State
	Name     string
	Gender   string
	Age      string // сырой текст; приводится к числу при подтверждении
	Status   string
	City     *string
	Location user.Location
}

// Store держит сессии регистрации по идентификатору пользователя и выдаёт
// пер-пользовательские мьютексы: события одного пользователя обрабатываются
// строго по одному, чтобы два почти одновременных сообщения не затёрли
// сессию друг друга.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Get возвращает сессию пользователя или nil, если регистрация не идёт.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// Put сохраняет сессию пользователя.
func (s *Store) Put(userID int64, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Remove удаляет сессию пользователя.
func (s *Store) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// UserLock возвращает мьютекс, сериализующий обработку событий одного
// пользователя. Мьютексы не удаляются: их столько же, сколько пользователей
// писало боту за время жизни процесса.
func (s *Store) UserLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}
