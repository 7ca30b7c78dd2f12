package weather

import (
	"context"
	"log"

	"github.com/t1ery/AssistBot/internal/storage"
)

// Значения callback-кнопок меню погоды.
const (
	ButtonToday     = "weather_for_today"
	ButtonTomorrow  = "weather_for_tomorrow"
	ButtonThreeDays = "weather_for_3_days"
	ButtonWeek      = "weather_for_week"
)

// Apology отправляется пользователю вместо любой ошибки получения погоды.
const Apology = "Произошла ошибка при получении данных 😢"

const unknownQuery = "Неизвестный тип прогноза."

// Handler отвечает на запросы прогноза из меню погоды. Координаты берутся
// из анкеты пользователя, а если их там нет — используются координаты
// по умолчанию.
type Handler struct {
	client     *Client
	storage    storage.Storage
	defaultLat float64
	defaultLon float64
}

func NewHandler(client *Client, dataStorage storage.Storage, defaultLat, defaultLon float64) *Handler {
	return &Handler{
		client:     client,
		storage:    dataStorage,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
	}
}

// Answer возвращает текст ответа на кнопку меню погоды. Ошибки внешнего
// API не покидают обработчик: пользователь видит извинение, детали
// уходят в лог.
func (h *Handler) Answer(ctx context.Context, userID int64, query string) string {
	lat, lon := h.coordinates(userID)

	switch query {
	case ButtonToday:
		current, err := h.client.Current(ctx, lat, lon)
		if err != nil {
			log.Printf("Ошибка при получении текущей погоды: %v", err)
			return Apology
		}
		return FormatCurrent(current)

	case ButtonTomorrow:
		forecast, err := h.client.Forecast(ctx, lat, lon)
		if err != nil {
			log.Printf("Ошибка при получении прогноза: %v", err)
			return Apology
		}
		return FormatTomorrow(forecast)

	case ButtonThreeDays:
		forecast, err := h.client.Forecast(ctx, lat, lon)
		if err != nil {
			log.Printf("Ошибка при получении прогноза: %v", err)
			return Apology
		}
		return FormatDaily(forecast, 3)

	case ButtonWeek:
		forecast, err := h.client.Forecast(ctx, lat, lon)
		if err != nil {
			log.Printf("Ошибка при получении прогноза: %v", err)
			return Apology
		}
		// API отдаёт максимум 5 дней — показываем сколько есть
		return FormatDaily(forecast, 7)

	default:
		return unknownQuery
	}
}

func (h *Handler) coordinates(userID int64) (float64, float64) {
	profile, err := h.storage.GetProfile(userID)
	if err != nil || profile.Location.Lat == nil || profile.Location.Lon == nil {
		return h.defaultLat, h.defaultLon
	}
	return *profile.Location.Lat, *profile.Location.Lon
}
