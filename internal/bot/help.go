package bot

import (
	"log"
	"strings"

	"github.com/go-telegram-bot-api/telegram-bot-api"
)

const helpMainText = `🤖 <b>Я — твой персональный помощник</b>

Я умею:
- Подсказывать погоду 🌦
- Помогать в учебе 📚
- Работать как встроенный ИИ 🧠
- Напоминать о делах и быть планировщиком ⏰

Выберите интересующую функцию ниже, чтобы узнать подробности.`

var helpDetails = map[string]string{
	"weather": `🌦 <b>Функция: Погода</b>

Команда /weather открывает меню прогноза: на сегодня, на завтра, на 3 дня и на неделю.

Я беру данные с OpenWeather API и подсказываю погоду в твоем городе.`,
	"ai": `🧠 <b>Функция: Встроенный ИИ</b>

Я смогу отвечать на вопросы, помогать с учебой и объяснять сложные темы простыми словами.

⚡ Интеграция пока в разработке.`,
	"planner": `📅 <b>Функция: Планировщик</b>

Я смогу напоминать о делах и помогать планировать день.

(В разработке: ежедневные задачи, напоминания, уведомления)`,
}

func (b *AssistBot) sendHelp(chatID int64) error {
	message := tgbotapi.NewMessage(chatID, helpMainText)
	message.ReplyMarkup = helpMenuKeyboard()
	message.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(message)
	return err
}

// handleHelpCallback листает разделы справки, редактируя одно и то же
// сообщение.
func (b *AssistBot) handleHelpCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	action := strings.TrimPrefix(callback.Data, "help_")

	text := helpMainText
	keyboard := helpMenuKeyboard()
	if action != "back" {
		detail, ok := helpDetails[action]
		if !ok {
			detail = "❌ Описание пока недоступно."
		}
		text = detail
		keyboard = helpBackKeyboard()
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &keyboard
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Ошибка при обновлении справки: %v", err)
	}
}
