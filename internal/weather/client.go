package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/t1ery/AssistBot/internal/httpclient"
)

// ConditionInfo - словесное описание погоды из ответа API.
type ConditionInfo struct {
	Description string `json:"description"`
}

// MainInfo - температура и влажность.
type MainInfo struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

// WindInfo - ветер.
type WindInfo struct {
	Speed float64 `json:"speed"`
}

// CurrentWeather - ответ OpenWeather на запрос текущей погоды.
type CurrentWeather struct {
	Name    string          `json:"name"`
	Weather []ConditionInfo `json:"weather"`
	Main    MainInfo        `json:"main"`
	Wind    WindInfo        `json:"wind"`
}

// ForecastEntry - одна точка прогноза (шаг 3 часа).
type ForecastEntry struct {
	DtTxt   string          `json:"dt_txt"`
	Weather []ConditionInfo `json:"weather"`
	Main    MainInfo        `json:"main"`
	Wind    WindInfo        `json:"wind"`
}

// Forecast - прогноз на 5 дней с шагом 3 часа.
type Forecast struct {
	List []ForecastEntry `json:"list"`
}

// Client ходит в OpenWeather за текущей погодой и прогнозом.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: httpclient.Config{
			Client:  client,
			Backoff: httpclient.DefaultBackoff(),
		},
		circuit: httpclient.NewBreaker("openweather"),
	}
}

// Current возвращает текущую погоду по координатам.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	resp, err := c.fetch(ctx, "weather", lat, lon)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload CurrentWeather
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Forecast возвращает прогноз на 5 дней с шагом 3 часа.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	resp, err := c.fetch(ctx, "forecast", lat, lon)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload Forecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, lat, lon float64) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, errors.New("openweather api key is not configured")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid coordinates: %f, %f", lat, lon)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("units", "metric")
		values.Set("lang", "ru")
		values.Set("appid", c.apiKey)

		u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	return httpclient.Do(ctx, c.httpCfg, c.circuit, buildRequest)
}
