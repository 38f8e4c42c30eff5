package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/stretchr/testify/assert"
)

func adminRequest(t *testing.T, ts string, adminID uint, method, path string, body interface{}) (int, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, ts+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", adminID))
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err, "Ошибка запроса "+path)
	defer res.Body.Close()

	var parsed map[string]interface{}
	json.NewDecoder(res.Body).Decode(&parsed)
	return res.StatusCode, parsed
}

func TestStationCreateAndDuplicateName(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	createTestEvent(t)
	admin := createAdminUser(t)

	status, body := adminRequest(t, ts.URL, admin.ID, "POST", "/api/admin/stations", map[string]interface{}{
		"name":                  "Prize Desk",
		"station_type":          "prize",
		"max_visits_per_hacker": 1,
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Prize Desk", body["name"])
	assert.Equal(t, true, body["is_active"], "Новая станция должна быть активна")

	// Повторное имя на том же событии.
	status, body = adminRequest(t, ts.URL, admin.ID, "POST", "/api/admin/stations", map[string]interface{}{
		"name":         "Prize Desk",
		"station_type": "prize",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DUPLICATE_NAME", body["code"])
}

func TestStationToggleTwiceRestoresState(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	admin := createAdminUser(t)
	station := createStation(t, event, "Breakfast", intPtr(1))

	path := fmt.Sprintf("/api/admin/stations/%d/toggle", station.ID)

	status, body := adminRequest(t, ts.URL, admin.ID, "POST", path, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["is_active"])

	status, body = adminRequest(t, ts.URL, admin.ID, "POST", path, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["is_active"], "Два переключения должны вернуть исходное состояние")

	status, body = adminRequest(t, ts.URL, admin.ID, "POST", "/api/admin/stations/99999/toggle", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "STATION_NOT_FOUND", body["code"])
}

func TestStationDeleteGuard(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	admin := createAdminUser(t)
	registration := createHackerRegistration(t, event)
	station := createStation(t, event, "Lunch", intPtr(1))

	// Станция с чекином не удаляется.
	_, body := postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": registration.ID,
		"station_id":      station.ID,
	})
	assert.Equal(t, true, body["success"])

	status, body := adminRequest(t, ts.URL, admin.ID, "DELETE", fmt.Sprintf("/api/admin/stations/%d", station.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "HAS_CHECKINS", body["code"])

	var count int64
	storage.DB.Model(&models.Station{}).Where("id = ?", station.ID).Count(&count)
	assert.Equal(t, int64(1), count, "Станция должна остаться на месте")

	// Станция без истории удаляется насовсем.
	empty := createStation(t, event, "Empty", nil)
	status, _ = adminRequest(t, ts.URL, admin.ID, "DELETE", fmt.Sprintf("/api/admin/stations/%d", empty.ID), nil)
	assert.Equal(t, http.StatusOK, status)

	storage.DB.Unscoped().Model(&models.Station{}).Where("id = ?", empty.ID).Count(&count)
	assert.Equal(t, int64(0), count, "Удаление должно быть жёстким")
}

func TestStationSeedGuard(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	createTestEvent(t)
	admin := createAdminUser(t)

	status, body := adminRequest(t, ts.URL, admin.ID, "POST", "/api/admin/stations/seed", nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(4), body["stations_created"])

	var count int64
	storage.DB.Model(&models.Station{}).Count(&count)
	assert.Equal(t, int64(4), count)

	// Повторный запуск не создаёт ни одной станции.
	status, body = adminRequest(t, ts.URL, admin.ID, "POST", "/api/admin/stations/seed", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_SEEDED", body["code"])

	storage.DB.Model(&models.Station{}).Count(&count)
	assert.Equal(t, int64(4), count, "Повторный seed не должен ничего создавать")
}

func TestStationListAndNoActiveEvent(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	admin := createAdminUser(t)

	// Без активного события список недоступен.
	status, body := adminRequest(t, ts.URL, admin.ID, "GET", "/api/admin/stations", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NO_ACTIVE_EVENT", body["code"])

	event := createTestEvent(t)
	createStation(t, event, "First", nil)
	createStation(t, event, "Second", nil)

	req, _ := http.NewRequest("GET", ts.URL+"/api/admin/stations", nil)
	req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", admin.ID))
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var stations []map[string]interface{}
	json.NewDecoder(res.Body).Decode(&stations)
	assert.Equal(t, 2, len(stations))
	// Сначала недавно созданные.
	assert.Equal(t, "Second", stations[0]["name"])
}

func TestStationStats(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	event := createTestEvent(t)
	admin := createAdminUser(t)
	station := createStation(t, event, "Lunch", intPtr(1))
	reg1 := createHackerRegistration(t, event)
	reg2 := createHackerRegistration(t, event)

	// Три чекина от двух участников: второй участник приходит дважды через override.
	_, body := postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": reg1.ID, "station_id": station.ID,
	})
	assert.Equal(t, true, body["success"])
	_, body = postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": reg2.ID, "station_id": station.ID,
	})
	assert.Equal(t, true, body["success"])
	_, body = postCheckIn(t, ts.URL, admin.ID, map[string]interface{}{
		"registration_id": reg2.ID, "station_id": station.ID, "override_duplicate": true,
	})
	assert.Equal(t, true, body["success"])

	req, _ := http.NewRequest("GET", ts.URL+"/api/admin/stations/stats", nil)
	req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", admin.ID))
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var stats []map[string]interface{}
	json.NewDecoder(res.Body).Decode(&stats)
	assert.Equal(t, 1, len(stats))
	assert.Equal(t, float64(3), stats[0]["total_check_ins"])
	assert.Equal(t, float64(2), stats[0]["unique_hackers"])
}
