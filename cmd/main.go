package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/t1ery/AssistBot/config"
	"github.com/t1ery/AssistBot/internal/bot"
	"github.com/t1ery/AssistBot/internal/geo"
	"github.com/t1ery/AssistBot/internal/registration"
	"github.com/t1ery/AssistBot/internal/storage"
	"github.com/t1ery/AssistBot/internal/weather"
)

func main() {

	// Здесь мы запрашиваем токены и другие значения из файла конфигурации
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Panic(err)
	}

	// Создаем бота с использованием значений из конфигурации
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Panic(err)
	}
	botAPI.Debug = cfg.Debug

	// Хранилище анкет - один JSON-файл
	dataStorage := storage.NewJSONStorage(cfg.UsersFile)

	// Общий HTTP-клиент для исходящих запросов к внешним API
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	geocoder := geo.NewClient(httpClient, cfg.OpenWeatherAPIKey)
	weatherClient := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey)
	weatherHandler := weather.NewHandler(weatherClient, dataStorage, cfg.DefaultLat, cfg.DefaultLon)

	// Машина состояний регистрации поверх Telegram-транспорта
	sender := bot.NewSender(botAPI)
	machine := registration.NewMachine(registration.NewStore(), dataStorage, geocoder, sender)

	b := bot.NewBot(botAPI, machine, weatherHandler)

	// Останавливаемся по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		log.Panic(err)
	}

	log.Println("Бот остановлен")
}
