package user

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Метки пола, которые видит пользователь и которые уходят в хранилище.
const (
	GenderMale   = "Мужской"
	GenderFemale = "Женский"
)

// Метки социального статуса.
const (
	StatusSchoolboy  = "Школьник"
	StatusStudent    = "Студент"
	StatusWorker     = "Рабочий"
	StatusUnemployed = "Безработный"
	StatusOther      = "Другое"
	StatusUnknown    = "Неизвестно" // для неопознанных значений кнопок
)

// Location - координаты пользователя. Оба поля либо заданы, либо nil вместе.
type Location struct {
	Lat *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
}

// Preferences - настройки пользователя.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
}

// DefaultPreferences возвращает настройки по умолчанию для нового пользователя.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		Language:      "ru",
		Timezone:      "",
	}
}

// Profile - структура для анкеты пользователя
type Profile struct {
	ID          int64       `json:"id"`                              // Идентификатор пользователя
	Name        string      `json:"name" validate:"required"`        // Имя
	Age         int         `json:"age" validate:"gte=0,lte=150"`    // Возраст
	Gender      string      `json:"gender"`                          // Пол
	City        *string     `json:"city"`                            // Город (nil, если не указан)
	Location    Location    `json:"location"`                        // Координаты (nil/nil, если не указаны)
	Status      string      `json:"status"`                          // Социальный статус
	Preferences Preferences `json:"preferences"`                     // Настройки
}

var validate = validator.New()

// Validate проверяет правдоподобность собранной анкеты перед сохранением.
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// Key возвращает ключ записи в хранилище (строковый идентификатор).
func (p *Profile) Key() string {
	return strconv.FormatInt(p.ID, 10)
}
