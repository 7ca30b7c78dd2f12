package storage

import (
	"strconv"
	"sync"

	"github.com/t1ery/AssistBot/internal/user"
)

// MemoryStorage - хранилище анкет в памяти. Используется в тестах и как
// запасной вариант, когда файл недоступен.
type MemoryStorage struct {
	data map[string]user.Profile
	mu   sync.Mutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string]user.Profile),
	}
}

func (s *MemoryStorage) Load() (map[string]user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]user.Profile, len(s.data))
	for k, v := range s.data {
		users[k] = v
	}
	return users, nil
}

func (s *MemoryStorage) Save(users map[string]user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]user.Profile, len(users))
	for k, v := range users {
		s.data[k] = v
	}
	return nil
}

func (s *MemoryStorage) GetProfile(userID int64) (*user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, found := s.data[strconv.FormatInt(userID, 10)]
	if !found {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

func (s *MemoryStorage) SaveProfile(profile *user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[profile.Key()] = *profile
	return nil
}

func (s *MemoryStorage) Exists(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found := s.data[strconv.FormatInt(userID, 10)]
	return found, nil
}
