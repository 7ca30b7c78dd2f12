package bot

import (
	"github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/t1ery/AssistBot/internal/registration"
)

// Sender реализует registration.Transport поверх Telegram API: машина
// состояний просит показать набор вариантов, Sender превращает его в
// конкретную клавиатуру.
type Sender struct {
	api *tgbotapi.BotAPI
}

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

func (s *Sender) Send(userID int64, text string, choices registration.ChoiceSet) error {
	message := tgbotapi.NewMessage(userID, text)

	switch choices {
	case registration.ChoicesRemove:
		message.ReplyMarkup = tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true}
	case registration.ChoicesGender:
		message.ReplyMarkup = genderKeyboard()
	case registration.ChoicesStatus:
		message.ReplyMarkup = statusKeyboard()
	case registration.ChoicesLocation:
		message.ReplyMarkup = locationKeyboard()
	case registration.ChoicesConfirm:
		message.ReplyMarkup = confirmKeyboard()
	case registration.ChoicesMainMenu:
		message.ReplyMarkup = mainMenuKeyboard()
	}

	_, err := s.api.Send(message)
	return err
}
