package bot

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/t1ery/AssistBot/internal/registration"
	"github.com/t1ery/AssistBot/internal/weather"
)

const weatherMenuPrompt = "Выберите, какой прогноз погоды вы хотите получить:"

// AssistBot принимает обновления Telegram, превращает их в события и
// раздаёт обработчикам: регистрации, погоде и справке.
type AssistBot struct {
	api     *tgbotapi.BotAPI
	machine *registration.Machine
	weather *weather.Handler
}

// NewBot создает новый экземпляр бота.
func NewBot(api *tgbotapi.BotAPI, machine *registration.Machine, weatherHandler *weather.Handler) *AssistBot {
	return &AssistBot{
		api:     api,
		machine: machine,
		weather: weatherHandler,
	}
}

// Run запускает обработку обновлений и работает до отмены контекста.
func (b *AssistBot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates, err := b.api.GetUpdatesChan(updateConfig)
	if err != nil {
		return err
	}

	log.Printf("Бот запущен: @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *AssistBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *AssistBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := int64(message.From.ID)

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			if err := b.machine.Start(ctx, userID); err != nil {
				log.Printf("Ошибка при обработке /start: %v", err)
			}
		case "help":
			if err := b.sendHelp(message.Chat.ID); err != nil {
				log.Printf("Ошибка при отправке справки: %v", err)
			}
		case "weather":
			if err := b.sendWeatherMenu(message.Chat.ID); err != nil {
				log.Printf("Ошибка при отправке меню погоды: %v", err)
			}
		default:
			reply := tgbotapi.NewMessage(message.Chat.ID, "Не знаю такой команды. Посмотри /help 🙂")
			if _, err := b.api.Send(reply); err != nil {
				log.Printf("Ошибка при отправке сообщения: %v", err)
			}
		}
		return
	}

	// Не команда — значит, это ввод для диалога регистрации.
	event := registration.Event{Kind: registration.EventText, UserID: userID, Text: message.Text}
	switch {
	case message.Location != nil:
		event = registration.Event{
			Kind:   registration.EventLocation,
			UserID: userID,
			Lat:    message.Location.Latitude,
			Lon:    message.Location.Longitude,
		}
	case message.Text == registration.SkipLabel:
		// точное совпадение с подписью reply-кнопки считаем её нажатием
		event = registration.Event{
			Kind:   registration.EventButton,
			UserID: userID,
			Button: registration.ButtonCitySkip,
		}
	}

	if err := b.machine.HandleEvent(ctx, event); err != nil {
		log.Printf("Ошибка при обработке события регистрации: %v", err)
	}
}

func (b *AssistBot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// снимаем «часики» с нажатой кнопки
	if _, err := b.api.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Ошибка при подтверждении callback: %v", err)
	}

	if callback.Message == nil {
		return
	}

	userID := int64(callback.From.ID)
	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case strings.HasPrefix(data, "weather_"):
		text := b.weather.Answer(ctx, userID, data)
		edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, text)
		if _, err := b.api.Send(edit); err != nil {
			log.Printf("Ошибка при обновлении сообщения с погодой: %v", err)
		}

	case strings.HasPrefix(data, "help_"):
		b.handleHelpCallback(callback)

	case data == "menu_weather":
		if err := b.sendWeatherMenu(chatID); err != nil {
			log.Printf("Ошибка при отправке меню погоды: %v", err)
		}

	case data == "menu_todo" || data == "menu_ai":
		stub := tgbotapi.NewMessage(chatID, "🛠 Этот раздел пока в разработке.")
		if _, err := b.api.Send(stub); err != nil {
			log.Printf("Ошибка при отправке сообщения: %v", err)
		}

	default:
		// всё остальное — кнопки диалога регистрации
		event := registration.Event{Kind: registration.EventButton, UserID: userID, Button: data}
		if err := b.machine.HandleEvent(ctx, event); err != nil {
			log.Printf("Ошибка при обработке события регистрации: %v", err)
		}
	}
}

func (b *AssistBot) sendWeatherMenu(chatID int64) error {
	message := tgbotapi.NewMessage(chatID, weatherMenuPrompt)
	message.ReplyMarkup = weatherMenuKeyboard()
	_, err := b.api.Send(message)
	return err
}
