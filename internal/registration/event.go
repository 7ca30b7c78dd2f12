package registration

// EventKind различает виды входящих событий от транспорта. Машина состояний
// ветвится по виду события, а не по сравнению строк: так "пользователь нажал
// кнопку «Пропустить»" и "пользователь написал текст, совпавший с её
// подписью" различаются на границе транспорта.
type EventKind int

const (
	EventCommand EventKind = iota // команда вида /start
	EventText                     // произвольный текст
	EventButton                   // нажатие кнопки (inline или reply)
	EventLocation                 // присланная геолокация
)

// Event - входящее событие от пользователя.
type Event struct {
	Kind   EventKind
	UserID int64
	Text   string  // текст сообщения или команды
	Button string  // значение нажатой кнопки
	Lat    float64 // координаты для EventLocation
	Lon    float64
}

// Значения кнопок регистрации. Транспорт строит по ним клавиатуры,
// машина состояний — ветвится.
const (
	ButtonGenderMale       = "gender_m"
	ButtonGenderFemale     = "gender_f"
	ButtonStatusSchoolboy  = "social_status_schoolboy"
	ButtonStatusStudent    = "social_status_student"
	ButtonStatusWorker     = "social_status_worker"
	ButtonStatusUnemployed = "social_status_unemployed"
	ButtonStatusOther      = "social_status_other"
	ButtonCitySkip         = "city_skip"
	ButtonConfirmYes       = "confirm_yes"
	ButtonConfirmEdit      = "confirm_edit"
)

// SkipLabel - подпись reply-кнопки «Пропустить». Reply-клавиатура Telegram
// присылает подпись кнопки обычным текстом, поэтому транспорт сверяет текст
// с этой константой и превращает точное совпадение в EventButton.
const SkipLabel = "➡️ Пропустить"

// ChoiceSet - закрытый набор клавиатур, которые машина может попросить
// показать вместе с сообщением.
type ChoiceSet int

const (
	ChoicesNone     ChoiceSet = iota // без клавиатуры
	ChoicesRemove                    // убрать reply-клавиатуру
	ChoicesGender                    // выбор пола
	ChoicesStatus                    // выбор социального статуса
	ChoicesLocation                  // отправить геолокацию / пропустить
	ChoicesConfirm                   // подтвердить / изменить
	ChoicesMainMenu                  // главное меню
)

// Transport доставляет сообщения пользователю.
type Transport interface {
	Send(userID int64, text string, choices ChoiceSet) error
}
