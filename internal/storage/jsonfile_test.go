package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/t1ery/AssistBot/internal/user"
)

func newTestStorage(t *testing.T) *JSONStorage {
	t.Helper()
	return NewJSONStorage(filepath.Join(t.TempDir(), "data", "users.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStorage(t)

	users, err := s.Load()
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("ожидалась пустая коллекция, получено %d записей", len(users))
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	s := newTestStorage(t)

	city := "Москва"
	lat, lon := 55.7558, 37.6176
	profile := &user.Profile{
		ID:     42,
		Name:   "Анна",
		Age:    17,
		Gender: user.GenderFemale,
		City:   &city,
		Location: user.Location{
			Lat: &lat,
			Lon: &lon,
		},
		Status:      user.StatusStudent,
		Preferences: user.DefaultPreferences(),
	}

	if err := s.SaveProfile(profile); err != nil {
		t.Fatalf("сохранение не удалось: %v", err)
	}

	got, err := s.GetProfile(42)
	if err != nil {
		t.Fatalf("чтение не удалось: %v", err)
	}
	if got.Name != "Анна" || got.Age != 17 || got.Status != user.StatusStudent {
		t.Fatalf("анкета прочитана с искажениями: %+v", got)
	}
	if got.City == nil || *got.City != "Москва" {
		t.Fatalf("город прочитан с искажениями: %+v", got.City)
	}
	if got.Location.Lat == nil || *got.Location.Lat != lat {
		t.Fatalf("координаты прочитаны с искажениями: %+v", got.Location)
	}
	if !got.Preferences.Notifications || got.Preferences.Language != "ru" {
		t.Fatalf("настройки прочитаны с искажениями: %+v", got.Preferences)
	}
}

// Файл должен оставаться читаемым человеком: кириллица не экранируется,
// ключи — строковые идентификаторы.
func TestFileIsHumanReadable(t *testing.T) {
	s := newTestStorage(t)

	profile := &user.Profile{ID: 42, Name: "Анна", Preferences: user.DefaultPreferences()}
	if err := s.SaveProfile(profile); err != nil {
		t.Fatalf("сохранение не удалось: %v", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("чтение файла не удалось: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"Анна"`) {
		t.Errorf("кириллица экранирована: %s", content)
	}
	if !strings.Contains(content, `"42"`) {
		t.Errorf("нет строкового ключа пользователя: %s", content)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.GetProfile(99); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("ожидалась ErrProfileNotFound, получено: %v", err)
	}

	found, err := s.Exists(99)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if found {
		t.Fatal("Exists вернул true для отсутствующей анкеты")
	}
}

// Два одновременных подтверждения разных пользователей не должны терять
// записи друг друга.
func TestConcurrentSaveProfile(t *testing.T) {
	s := newTestStorage(t)

	var wg sync.WaitGroup
	for i := int64(1); i <= 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			profile := &user.Profile{ID: i, Name: "Пользователь", Preferences: user.DefaultPreferences()}
			if err := s.SaveProfile(profile); err != nil {
				t.Errorf("сохранение %d не удалось: %v", i, err)
			}
		}()
	}
	wg.Wait()

	users, err := s.Load()
	if err != nil {
		t.Fatalf("чтение не удалось: %v", err)
	}
	if len(users) != 10 {
		t.Fatalf("потеряны записи: ожидалось 10, получено %d", len(users))
	}
}
