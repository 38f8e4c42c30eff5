package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/acmhack/pickhacks-registration/internal/checkin"
	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/stretchr/testify/assert"
)

func postCheckIn(t *testing.T, ts string, adminID uint, body map[string]interface{}) (int, map[string]interface{}) {
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req, _ := http.NewRequest("POST", ts+"/api/admin/checkin", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", adminID))
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err, "Ошибка запроса чекина")
	defer res.Body.Close()

	var parsed map[string]interface{}
	json.NewDecoder(res.Body).Decode(&parsed)
	return res.StatusCode, parsed
}

func countCheckIns(t *testing.T, registrationID, stationID uint) int64 {
	var count int64
	err := storage.DB.Model(&models.CheckIn{}).
		Where("registration_id = ? AND station_id = ?", registrationID, stationID).
		Count(&count).Error
	assert.NoError(t, err)
	return count
}

// Сценарии A-D: свежая станция с лимитом 1, повтор, override, выключенная станция.
func TestCheckInFlow(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	admin := createAdminUser(t)
	registration := createHackerRegistration(t, event)
	station := createStation(t, event, "Lunch", intPtr(1))

	// A: первый чекин проходит и создаёт ровно одну запись.
	status, body := postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": registration.ID,
		"station_id":      station.ID,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"], "Первый чекин должен пройти")
	assert.NotZero(t, body["check_in_id"])
	assert.Equal(t, int64(1), countCheckIns(t, registration.ID, station.ID))

	// B: повтор без override — дубликат, записи не добавляются.
	status, body = postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": registration.ID,
		"station_id":      station.ID,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["is_duplicate"], "Повтор должен быть помечен дубликатом")
	previous, ok := body["previous_check_in"].(map[string]interface{})
	assert.True(t, ok, "Дубликат должен вернуть прошлый чекин")
	assert.NotEmpty(t, previous["checked_in_at"])
	assert.Equal(t, int64(1), countCheckIns(t, registration.ID, station.ID))

	// C: override с причиной — вторая запись с заметкой.
	status, body = postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id":    registration.ID,
		"station_id":         station.ID,
		"override_duplicate": true,
		"notes":              "manager approved",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"], "Override должен пройти")
	assert.Equal(t, int64(2), countCheckIns(t, registration.ID, station.ID))

	var last models.CheckIn
	err := storage.DB.Where("registration_id = ? AND station_id = ?", registration.ID, station.ID).
		Order("checked_in_at DESC").First(&last).Error
	assert.NoError(t, err)
	if assert.NotNil(t, last.Notes, "Заметка оператора должна сохраниться") {
		assert.Equal(t, "manager approved", *last.Notes)
	}

	// D: выключенная станция отклоняет чекин независимо от истории.
	storage.DB.Model(&models.Station{}).Where("id = ?", station.ID).Update("is_active", false)
	status, body = postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id":    registration.ID,
		"station_id":         station.ID,
		"override_duplicate": true,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "STATION_INACTIVE", body["code"])
	assert.Equal(t, int64(2), countCheckIns(t, registration.ID, station.ID))
}

// Станция без лимита: первый повтор всё равно дубликат, но override
// всегда проходит — жёсткой блокировки нет.
func TestCheckInUnlimitedStation(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	registration := createHackerRegistration(t, event)
	station := createStation(t, event, "Snacks", nil)

	result, err := checkin.Attempt(storage.DB, registration.ID, station.ID, false, nil)
	assert.NoError(t, err)
	assert.False(t, result.Duplicate)

	// Первый повтор ловится даже без числового лимита.
	result, err = checkin.Attempt(storage.DB, registration.ID, station.ID, false, nil)
	assert.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.NotNil(t, result.Previous)
	assert.Equal(t, int64(1), countCheckIns(t, registration.ID, station.ID))

	// Override проходит сколько угодно раз.
	for i := 0; i < 3; i++ {
		result, err = checkin.Attempt(storage.DB, registration.ID, station.ID, true, nil)
		assert.NoError(t, err)
		assert.False(t, result.Duplicate)
		assert.NotZero(t, result.CheckInID)
	}
	assert.Equal(t, int64(4), countCheckIns(t, registration.ID, station.ID))
}

// Станция с лимитом N>1: любой повтор без override — дубликат,
// числовой лимит достижим только через повторные override.
func TestCheckInMultiVisitStation(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	registration := createHackerRegistration(t, event)
	station := createStation(t, event, "Workshop", intPtr(3))

	result, err := checkin.Attempt(storage.DB, registration.ID, station.ID, false, nil)
	assert.NoError(t, err)
	assert.False(t, result.Duplicate)

	// Вторая попытка без override: лимит не исчерпан, но повтор уже есть.
	result, err = checkin.Attempt(storage.DB, registration.ID, station.ID, false, nil)
	assert.NoError(t, err)
	assert.True(t, result.Duplicate, "Любой повтор без override помечается дубликатом")
	assert.Equal(t, int64(1), countCheckIns(t, registration.ID, station.ID))

	// Через override доходим до лимита.
	for i := 0; i < 2; i++ {
		result, err = checkin.Attempt(storage.DB, registration.ID, station.ID, true, nil)
		assert.NoError(t, err)
		assert.False(t, result.Duplicate)
	}
	assert.Equal(t, int64(3), countCheckIns(t, registration.ID, station.ID))

	// (N+1)-я попытка без override — дубликат.
	result, err = checkin.Attempt(storage.DB, registration.ID, station.ID, false, nil)
	assert.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Equal(t, int64(3), countCheckIns(t, registration.ID, station.ID))
}

// Два устройства одновременно сканируют один бейдж: блокировка строки
// регистрации сериализует транзакции, запись создаётся ровно одна,
// остальные попытки получают дубликат.
func TestCheckInConcurrentScans(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	registration := createHackerRegistration(t, event)
	station := createStation(t, event, "Check-in", intPtr(1))

	const scanners = 8
	results := make(chan *checkin.Result, scanners)
	errs := make(chan error, scanners)

	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	for i := 0; i < scanners; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			result, err := checkin.Attempt(storage.DB, registration.ID, station.ID, false, nil)
			if err != nil {
				errs <- err
				return
			}
			results <- result
		}()
	}
	start.Done()
	done.Wait()
	close(results)
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "Параллельный чекин не должен падать с ошибкой")
	}

	created, duplicates := 0, 0
	for result := range results {
		if result.Duplicate {
			duplicates++
			assert.NotNil(t, result.Previous, "Дубликат должен ссылаться на созданную запись")
		} else {
			created++
			assert.NotZero(t, result.CheckInID)
		}
	}
	assert.Equal(t, 1, created, "Из параллельных сканов пройти должен ровно один")
	assert.Equal(t, scanners-1, duplicates)
	assert.Equal(t, int64(1), countCheckIns(t, registration.ID, station.ID))
}

// Ошибки станции: несуществующая и чужая регистрация.
func TestCheckInErrors(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	admin := createAdminUser(t)
	registration := createHackerRegistration(t, event)

	status, body := postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": registration.ID,
		"station_id":      99999,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "STATION_NOT_FOUND", body["code"])

	station := createStation(t, event, "Dinner", intPtr(1))
	status, body = postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": 99999,
		"station_id":      station.ID,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "REGISTRATION_NOT_FOUND", body["code"])
}

// Гейт организатора: обычному пользователю чекин недоступен.
func TestCheckInForbiddenForNonAdmin(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	registration := createHackerRegistration(t, event)
	station := createStation(t, event, "Lunch", intPtr(1))

	var hacker models.User
	err := storage.DB.Where("is_admin = ?", false).First(&hacker).Error
	assert.NoError(t, err)

	status, body := postCheckIn(t, ts.URL, hacker.ID, map[string]interface{}{
		"registration_id": registration.ID,
		"station_id":      station.ID,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, int64(0), countCheckIns(t, registration.ID, station.ID))
}
