package storage

import (
	"errors"

	"github.com/t1ery/AssistBot/internal/user"
)

// ErrProfileNotFound возвращается, когда анкеты пользователя нет в хранилище.
var ErrProfileNotFound = errors.New("profile not found")

type Storage interface {
	Load() (map[string]user.Profile, error)        // Загружает всю коллекцию анкет
	Save(users map[string]user.Profile) error      // Полностью перезаписывает коллекцию
	GetProfile(userID int64) (*user.Profile, error) // Получает анкету пользователя
	SaveProfile(profile *user.Profile) error        // Сохраняет анкету (load-mutate-save одним блоком)
	Exists(userID int64) (bool, error)              // Есть ли анкета у пользователя
}
