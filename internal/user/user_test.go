package user

import "testing"

func TestValidate(t *testing.T) {
	profile := Profile{ID: 42, Name: "Анна", Age: 17, Preferences: DefaultPreferences()}
	if err := profile.Validate(); err != nil {
		t.Fatalf("корректная анкета не прошла проверку: %v", err)
	}

	tooOld := profile
	tooOld.Age = 500
	if err := tooOld.Validate(); err == nil {
		t.Error("возраст 500 должен отклоняться")
	}

	noName := profile
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("анкета без имени должна отклоняться")
	}

	badLat := profile
	lat, lon := 91.0, 0.0
	badLat.Location = Location{Lat: &lat, Lon: &lon}
	if err := badLat.Validate(); err == nil {
		t.Error("широта 91 должна отклоняться")
	}
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if !prefs.Notifications {
		t.Error("уведомления по умолчанию должны быть включены")
	}
	if prefs.Language != "ru" {
		t.Errorf("язык по умолчанию: %q", prefs.Language)
	}
	if prefs.Timezone != "" {
		t.Errorf("часовой пояс по умолчанию должен быть пустым: %q", prefs.Timezone)
	}
}

func TestKey(t *testing.T) {
	profile := Profile{ID: 42}
	if got := profile.Key(); got != "42" {
		t.Errorf("ожидался ключ \"42\", получено %q", got)
	}
}
