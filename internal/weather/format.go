package weather

import (
	"fmt"
	"strings"
)

const (
	noCurrentData  = "Нет данных о погоде."
	noForecastData = "Нет данных о прогнозе погоды."
	noTomorrowData = "Нет данных о погоде на завтра."
)

// dt_txt приходит в формате "2006-01-02 15:04:05"; дата — первые 10 символов.
func entryDate(e ForecastEntry) string {
	if len(e.DtTxt) < 10 {
		return ""
	}
	return e.DtTxt[:10]
}

func description(items []ConditionInfo) string {
	if len(items) == 0 || items[0].Description == "" {
		return "Нет описания"
	}
	return items[0].Description
}

// FormatCurrent собирает карточку текущей погоды.
func FormatCurrent(data *CurrentWeather) string {
	if data == nil {
		return noCurrentData
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ Погода: %s\n", description(data.Weather))
	fmt.Fprintf(&b, "🌡️ Температура: %.1f°C\n", data.Main.Temp)
	fmt.Fprintf(&b, "💨 Ощущается как: %.1f°C\n", data.Main.FeelsLike)
	fmt.Fprintf(&b, "💧 Влажность: %.0f%%\n", data.Main.Humidity)
	fmt.Fprintf(&b, "🌬️ Скорость ветра: %.1f м/с", data.Wind.Speed)
	if data.Name != "" {
		fmt.Fprintf(&b, "\n📍 %s", data.Name)
	}
	return b.String()
}

// FormatTomorrow находит первую точку следующего календарного дня
// и собирает по ней карточку погоды на завтра.
func FormatTomorrow(data *Forecast) string {
	if data == nil || len(data.List) == 0 {
		return noTomorrowData
	}

	today := entryDate(data.List[0])
	for _, entry := range data.List {
		date := entryDate(entry)
		if date == "" || date == today {
			continue
		}
		return fmt.Sprintf(
			"📅 Погода на завтра (%s):\n"+
				"🌤️ Погода: %s\n"+
				"🌡️ Температура: %.1f°C\n"+
				"💧 Влажность: %.0f%%\n"+
				"🌬️ Скорость ветра: %.1f м/с",
			date,
			description(entry.Weather),
			entry.Main.Temp,
			entry.Main.Humidity,
			entry.Wind.Speed,
		)
	}
	return noTomorrowData
}

// FormatDaily агрегирует прогноз по дням: средняя температура и самое
// частое описание. days ограничивает число дней в ответе.
func FormatDaily(data *Forecast, days int) string {
	if data == nil || len(data.List) == 0 || days <= 0 {
		return noForecastData
	}

	type dayAgg struct {
		date         string
		tempSum      float64
		count        int
		descriptions map[string]int
	}

	var order []string
	byDate := make(map[string]*dayAgg)

	for _, entry := range data.List {
		date := entryDate(entry)
		if date == "" {
			continue
		}
		agg, ok := byDate[date]
		if !ok {
			if len(order) >= days {
				break
			}
			agg = &dayAgg{date: date, descriptions: make(map[string]int)}
			byDate[date] = agg
			order = append(order, date)
		}
		agg.tempSum += entry.Main.Temp
		agg.count++
		agg.descriptions[description(entry.Weather)]++
	}

	if len(order) == 0 {
		return noForecastData
	}

	var lines []string
	for _, date := range order {
		agg := byDate[date]

		best := "Нет описания"
		bestCount := 0
		for desc, count := range agg.descriptions {
			if count > bestCount {
				bestCount = count
				best = desc
			}
		}

		lines = append(lines, fmt.Sprintf(
			"📅 %s\n🌤️ Погода: %s\n🌡️ Средняя температура: %.1f°C\n",
			date, best, agg.tempSum/float64(agg.count),
		))
	}
	return strings.Join(lines, "\n")
}
