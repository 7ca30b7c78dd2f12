package registration

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/t1ery/AssistBot/internal/storage"
	"github.com/t1ery/AssistBot/internal/user"
)

// Geocoder определяет название города по координатам.
type Geocoder interface {
	ResolveCity(ctx context.Context, lat, lon float64) (string, error)
}

// Тексты диалога регистрации.
const (
	promptFirstTime = "Привет 👋 Вижу ты тут впервые. Давай познакомимся! Как тебя зовут?"
	promptGender    = "Отлично! 🚀 Укажи свой пол:"
	promptAge       = "Теперь введи свой возраст:"
	promptStatus    = "Какой у тебя социальный статус?"
	promptCity      = "🌍 Укажи, пожалуйста, город проживания.\n" +
		"— Нажми кнопку «Отправить местоположение», если хочешь автоматически определить город (работает на мобильных).\n" +
		"— Или нажми «Пропустить», чтобы настроить город позже."
	promptCityRetry = "Пожалуйста, используйте кнопки ниже:\n\n" +
		"• 📍 Отправить местоположение - для автоматического определения города\n" +
		"• ➡️ Пропустить - если не хотите указывать сейчас\n\n" +
		"Вы всегда сможете изменить настройки позже."
	promptEdit = "✏ Окей, давай начнём заново. Введи своё имя:"

	msgGreetingBack = "👋 С возвращением!\n" +
		"Я — твой персональный ассистент.\n" +
		"Помогаю следить за задачами, подсказывать погоду, и у меня есть встроенный AI.\n" +
		"Выбери действие:"
	msgCityResolved    = "Отлично, определил ваш город %s"
	msgCityNotResolved = "Не удалось определить город по координатам. Пожалуйста, попробуйте заново отправить локацию. Если ничего не помогает, то вы сможете настроить город позже"
	msgCityGeoError    = "⚠️ Ошибка при определении местоположения. Вы можете пропустить этот шаг."
	msgCitySkipped     = "Вы пропустили указание города. Вы всегда можете настроить его через команду /settings"
	msgAgeNotNumeric   = "⚠️ Возраст должен быть числом. Введи свой возраст ещё раз:"
	msgProfileInvalid  = "⚠️ Данные анкеты выглядят неправдоподобно. Введи свой возраст ещё раз:"
	msgSaveFailed      = "⚠️ Не удалось сохранить анкету. Попробуй ещё раз."
	msgInternalError   = "⚠️ Что-то пошло не так. Попробуй ещё раз чуть позже."
	msgRegistered      = "✅ Отлично! Ты зарегистрирован!"
	msgMainMenu        = "Теперь доступно главное меню 👇"

	notSetMark = "❌ Не определено"
)

// Machine ведёт диалог регистрации: по одному вопросу на шаг, с проверкой
// ответов и подтверждением в конце. В хранилище анкета записывается ровно
// один раз — при подтверждении; до этого все данные живут в сессии.
type Machine struct {
	sessions  *Store
	storage   storage.Storage
	geocoder  Geocoder
	transport Transport
}

func NewMachine(sessions *Store, dataStorage storage.Storage, geocoder Geocoder, transport Transport) *Machine {
	return &Machine{
		sessions:  sessions,
		storage:   dataStorage,
		geocoder:  geocoder,
		transport: transport,
	}
}

// Active сообщает, идёт ли у пользователя регистрация.
func (m *Machine) Active(userID int64) bool {
	return m.sessions.Get(userID) != nil
}

// Start обрабатывает команду /start: зарегистрированному пользователю
// показывает главное меню, незнакомому — начинает регистрацию.
func (m *Machine) Start(ctx context.Context, userID int64) error {
	lock := m.sessions.UserLock(userID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := m.storage.Exists(userID)
	if err != nil {
		log.Printf("Ошибка чтения хранилища анкет: %v", err)
		return m.transport.Send(userID, msgInternalError, ChoicesNone)
	}

	if exists {
		return m.transport.Send(userID, msgGreetingBack, ChoicesMainMenu)
	}

	m.sessions.Put(userID, &Session{State: StateAwaitingName})
	return m.transport.Send(userID, promptFirstTime, ChoicesNone)
}

// HandleEvent прогоняет событие через текущий шаг регистрации пользователя.
// Если регистрация не идёт, событие игнорируется.
func (m *Machine) HandleEvent(ctx context.Context, ev Event) error {
	lock := m.sessions.UserLock(ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	session := m.sessions.Get(ev.UserID)
	if session == nil {
		return nil
	}

	switch session.State {
	case StateAwaitingName:
		return m.handleName(session, ev)
	case StateAwaitingGender:
		return m.handleGender(session, ev)
	case StateAwaitingAge:
		return m.handleAge(session, ev)
	case StateAwaitingStatus:
		return m.handleStatus(session, ev)
	case StateAwaitingCity:
		return m.handleCity(ctx, session, ev)
	case StateAwaitingConfirm:
		return m.handleConfirm(session, ev)
	}
	return nil
}

// Имя: любой непустой текст. Пустые сообщения (стикеры и т.п.)
// переспрашиваются, чтобы не записать пустое имя.
func (m *Machine) handleName(session *Session, ev Event) error {
	if ev.Kind != EventText || strings.TrimSpace(ev.Text) == "" {
		return m.transport.Send(ev.UserID, promptFirstTime, ChoicesNone)
	}

	session.Name = ev.Text
	session.State = StateAwaitingGender
	return m.transport.Send(ev.UserID, promptGender, ChoicesGender)
}

// Пол: только кнопки; всё остальное молча игнорируется до валидного выбора.
func (m *Machine) handleGender(session *Session, ev Event) error {
	if ev.Kind != EventButton {
		return nil
	}

	switch ev.Button {
	case ButtonGenderMale:
		session.Gender = user.GenderMale
	case ButtonGenderFemale:
		session.Gender = user.GenderFemale
	default:
		return nil
	}

	session.State = StateAwaitingAge
	return m.transport.Send(ev.UserID, promptAge, ChoicesNone)
}

// Возраст: текст сохраняется как есть, число из него делается только при
// подтверждении. Нечисловой возраст всплывёт там же.
func (m *Machine) handleAge(session *Session, ev Event) error {
	if ev.Kind != EventText {
		return nil
	}

	session.Age = ev.Text
	session.State = StateAwaitingStatus
	return m.transport.Send(ev.UserID, promptStatus, ChoicesStatus)
}

// Статус: неопознанное значение кнопки записывается как "Неизвестно",
// а не отклоняется. TODO: решить с продуктом, не стоит ли такие значения
// отклонять — сейчас сюда попадает любой мусорный callback в этом состоянии.
func (m *Machine) handleStatus(session *Session, ev Event) error {
	if ev.Kind != EventButton {
		return nil
	}

	statusMap := map[string]string{
		ButtonStatusSchoolboy:  user.StatusSchoolboy,
		ButtonStatusStudent:    user.StatusStudent,
		ButtonStatusWorker:     user.StatusWorker,
		ButtonStatusUnemployed: user.StatusUnemployed,
		ButtonStatusOther:      user.StatusOther,
	}

	status, ok := statusMap[ev.Button]
	if !ok {
		status = user.StatusUnknown
	}
	session.Status = status

	session.State = StateAwaitingCity
	return m.transport.Send(ev.UserID, promptCity, ChoicesLocation)
}

// Город: три ветки. Локация — геокодируем; кнопка «Пропустить» — город
// остаётся пустым; всё остальное переспрашивается. Набранное текстом
// название города не сохраняется — пользователя возвращают к кнопкам.
// TODO: обсудить с продуктом приём города текстом; подсказка в исходном
// диалоге его обещает, но ветки для него нет.
func (m *Machine) handleCity(ctx context.Context, session *Session, ev Event) error {
	switch {
	case ev.Kind == EventLocation:
		city, err := m.geocoder.ResolveCity(ctx, ev.Lat, ev.Lon)
		if err != nil {
			log.Printf("Ошибка геокодирования (%f, %f): %v", ev.Lat, ev.Lon, err)
			// остаёмся в том же состоянии — ждём корректного ввода
			return m.transport.Send(ev.UserID, msgCityNotResolved, ChoicesLocation)
		}

		lat, lon := ev.Lat, ev.Lon
		session.City = &city
		session.Location = user.Location{Lat: &lat, Lon: &lon}

		if err := m.transport.Send(ev.UserID, fmt.Sprintf(msgCityResolved, city), ChoicesRemove); err != nil {
			return err
		}

	case ev.Kind == EventButton && ev.Button == ButtonCitySkip:
		session.City = nil
		session.Location = user.Location{}

		if err := m.transport.Send(ev.UserID, msgCitySkipped, ChoicesRemove); err != nil {
			return err
		}

	default:
		// остаёмся в том же состоянии — ждём корректного ввода
		return m.transport.Send(ev.UserID, promptCityRetry, ChoicesLocation)
	}

	session.State = StateAwaitingConfirm
	return m.transport.Send(ev.UserID, summary(session), ChoicesConfirm)
}

// Подтверждение: "да" собирает анкету, проверяет её и записывает в
// хранилище; "изменить" возвращает к имени, не стирая накопленные данные.
func (m *Machine) handleConfirm(session *Session, ev Event) error {
	if ev.Kind != EventButton {
		return nil
	}

	switch ev.Button {
	case ButtonConfirmYes:
		age, err := strconv.Atoi(strings.TrimSpace(session.Age))
		if err != nil {
			session.State = StateAwaitingAge
			return m.transport.Send(ev.UserID, msgAgeNotNumeric, ChoicesNone)
		}

		profile := &user.Profile{
			ID:          ev.UserID,
			Name:        session.Name,
			Age:         age,
			Gender:      session.Gender,
			City:        session.City,
			Location:    session.Location,
			Status:      session.Status,
			Preferences: user.DefaultPreferences(),
		}

		if err := profile.Validate(); err != nil {
			// из свободного ввода в анкету попадает только возраст,
			// поэтому возвращаем именно к нему
			session.State = StateAwaitingAge
			return m.transport.Send(ev.UserID, msgProfileInvalid, ChoicesNone)
		}

		if err := m.storage.SaveProfile(profile); err != nil {
			log.Printf("Ошибка сохранения анкеты пользователя %d: %v", ev.UserID, err)
			return m.transport.Send(ev.UserID, msgSaveFailed, ChoicesNone)
		}

		m.sessions.Remove(ev.UserID)

		if err := m.transport.Send(ev.UserID, msgRegistered, ChoicesNone); err != nil {
			return err
		}
		return m.transport.Send(ev.UserID, msgMainMenu, ChoicesMainMenu)

	case ButtonConfirmEdit:
		// накопленные значения остаются в сессии и будут перезаписаны
		session.State = StateAwaitingName
		return m.transport.Send(ev.UserID, promptEdit, ChoicesNone)
	}

	return nil
}

// summary собирает сводку анкеты; незаполненные поля показываются явной
// пометкой, а не пустым местом.
func summary(session *Session) string {
	city := notSetMark
	if session.City != nil {
		city = *session.City
	}

	return fmt.Sprintf(
		"📋 Проверь данные:\n\n"+
			"Имя: %s\n"+
			"Пол: %s\n"+
			"Возраст: %s\n"+
			"Статус: %s\n"+
			"Город: %s\n\n"+
			"Всё верно? Если нет, то ты можешь заново пройти регистрацию.",
		orNotSet(session.Name),
		orNotSet(session.Gender),
		orNotSet(session.Age),
		orNotSet(session.Status),
		city,
	)
}

func orNotSet(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSetMark
	}
	return value
}
