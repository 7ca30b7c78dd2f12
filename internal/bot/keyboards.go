package bot

import (
	"github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/t1ery/AssistBot/internal/registration"
	"github.com/t1ery/AssistBot/internal/weather"
)

// genderKeyboard - выбор пола при регистрации.
func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♂ Мужской", registration.ButtonGenderMale),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♀ Женский", registration.ButtonGenderFemale),
		),
	)
}

// statusKeyboard - выбор социального статуса. Набор кнопок совпадает со
// списком статусов в анкете.
func statusKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Школьник", registration.ButtonStatusSchoolboy),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Студент", registration.ButtonStatusStudent),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Рабочий", registration.ButtonStatusWorker),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Безработный", registration.ButtonStatusUnemployed),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Другое", registration.ButtonStatusOther),
		),
	)
}

// locationKeyboard - reply-клавиатура шага города: запрос геолокации
// или пропуск. Подпись кнопки «Пропустить» придёт обычным текстом.
func locationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("📍 Отправить местоположение"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(registration.SkipLabel),
		),
	)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

// confirmKeyboard - подтверждение данных регистрации.
func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Всё верно", registration.ButtonConfirmYes),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏ Изменить", registration.ButtonConfirmEdit),
		),
	)
}

// mainMenuKeyboard - главное меню после регистрации.
func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌤 Погода", "menu_weather"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Планировщик", "menu_todo"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤖 AI помощник", "menu_ai"),
		),
	)
}

// weatherMenuKeyboard - выбор вида прогноза погоды.
func weatherMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Погода на сегодня", weather.ButtonToday),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Погода на завтра", weather.ButtonTomorrow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Погода на 3 дня", weather.ButtonThreeDays),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Погода на неделю", weather.ButtonWeek),
		),
	)
}

// helpMenuKeyboard - разделы справки.
func helpMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌦 Погода", "help_weather"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧠 ИИ", "help_ai"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Планировщик", "help_planner"),
		),
	)
}

// helpBackKeyboard - возврат из раздела справки в её главное меню.
func helpBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅ Назад", "help_back"),
		),
	)
}
