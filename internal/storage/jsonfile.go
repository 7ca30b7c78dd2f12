package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/t1ery/AssistBot/internal/user"
)

// JSONStorage хранит анкеты в одном JSON-файле: ключ — строковый
// идентификатор пользователя, значение — анкета. Файл перезаписывается
// целиком при каждом сохранении; запись идёт во временный файл с
// последующим переименованием, чтобы параллельный Load не увидел
// недописанную коллекцию. Все мутации сериализуются одним мьютексом.
type JSONStorage struct {
	path string
	mu   sync.Mutex
}

func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Load загружает всю коллекцию анкет. Отсутствующий файл — пустая коллекция.
func (s *JSONStorage) Load() (map[string]user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save полностью перезаписывает коллекцию анкет.
func (s *JSONStorage) Save(users map[string]user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(users)
}

// GetProfile получает анкету пользователя.
func (s *JSONStorage) GetProfile(userID int64) (*user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}

	profile, found := users[strconv.FormatInt(userID, 10)]
	if !found {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

// SaveProfile добавляет или заменяет анкету пользователя. Чтение и запись
// выполняются под одним мьютексом, поэтому два подтверждения регистрации
// не потеряют записи друг друга.
func (s *JSONStorage) SaveProfile(profile *user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	users[profile.Key()] = *profile
	return s.save(users)
}

// Exists сообщает, есть ли анкета у пользователя.
func (s *JSONStorage) Exists(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	_, found := users[strconv.FormatInt(userID, 10)]
	return found, nil
}

func (s *JSONStorage) load() (map[string]user.Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]user.Profile{}, nil
		}
		return nil, err
	}

	users := map[string]user.Profile{}
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *JSONStorage) save(users map[string]user.Profile) error {
	// Кириллица и эмодзи в файле остаются как есть — файл должен
	// читаться человеком.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(users); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "users-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
