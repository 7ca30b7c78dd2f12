package geo

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

// ErrNoResult возвращается, когда по координатам не нашлось населённого пункта.
var ErrNoResult = errors.New("no geocoding result")

// Place - населённый пункт, найденный по координатам.
type Place struct {
	Name    string
	RuName  string
	EnName  string
	State   string
	Country string
	Lat     float64
	Lon     float64
}

// Client выполняет обратное геокодирование через OpenWeather Geocoding API.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "http://api.openweathermap.org/geo/1.0/reverse",
		httpCfg: httpclient.Config{
			Client:  client,
			Backoff: httpclient.DefaultBackoff(),
		},
		circuit: httpclient.NewBreaker("geocoder"),
	}
}

// Resolve определяет населённый пункт по координатам. Пустой ответ API
// считается отсутствием результата, не ошибкой сети.
func (c *Client) Resolve(ctx context.Context, lat, lon float64) (Place, error) {
	if c.apiKey == "" {
		return Place{}, errors.New("openweather api key is not configured")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Place{}, fmt.Errorf("invalid coordinates: %f, %f", lat, lon)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("limit", "1")
		values.Set("appid", c.apiKey)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpclient.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return Place{}, err
	}
	defer resp.Body.Close()

	var payload []struct {
		Name       string            `json:"name"`
		LocalNames map[string]string `json:"local_names"`
		State      string            `json:"state"`
		Country    string            `json:"country"`
		Lat        float64           `json:"lat"`
		Lon        float64           `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, err
	}
	if len(payload) == 0 {
		return Place{}, ErrNoResult
	}

	first := payload[0]
	place := Place{
		Name:    first.Name,
		RuName:  first.LocalNames["ru"],
		EnName:  first.LocalNames["en"],
		State:   first.State,
		Country: first.Country,
		Lat:     first.Lat,
		Lon:     first.Lon,
	}
	// Локализованного имени может не быть — падаем обратно на основное.
	if place.RuName == "" {
		place.RuName = first.Name
	}
	if place.EnName == "" {
		place.EnName = first.Name
	}
	return place, nil
}

// ResolveCity возвращает русское название города по координатам.
// Именно в таком виде город попадает в анкету.
func (c *Client) ResolveCity(ctx context.Context, lat, lon float64) (string, error) {
	place, err := c.Resolve(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	if place.RuName == "" {
		return "", ErrNoResult
	}
	return place.RuName, nil
}
