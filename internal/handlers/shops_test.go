package handlers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"hair_queue/internal/handlers"
	"hair_queue/internal/models"
	"hair_queue/internal/queue"
	"hair_queue/internal/storage"
	"hair_queue/internal/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShopRequiresBarberRole(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	customer := createTestUser(t, "Анна", "customer")
	barber := createTestUser(t, "Борис", "barber")

	body := map[string]interface{}{
		"name":              "У Бориса",
		"address":           "Арбат, 1",
		"average_wait_time": 20,
		"services": []map[string]interface{}{
			{"name": "Стрижка", "price": 10, "duration": 30},
		},
	}

	res := doRequest(t, "POST", ts.URL+"/shops", customer.ID, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res.Body.Close()

	res = doRequest(t, "POST", ts.URL+"/shops", barber.ID, body)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	defer res.Body.Close()
	var created handlers.ShopResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, "У Бориса", created.Name)
	assert.Equal(t, barber.ID, created.OwnerID)
	assert.Equal(t, 20, created.AverageWaitTime)
	assert.True(t, created.IsActive)
	require.Len(t, created.Services, 1)
	assert.Equal(t, "Стрижка", created.Services[0].Name)
}

func TestUpdateShopOwnerOnly(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	stranger := createTestUser(t, "Посторонний", "barber")
	shop := createTestShop(t, owner.ID, 15)

	newName := "Новое имя"
	body := map[string]interface{}{"name": newName, "average_wait_time": 25}

	res := doRequest(t, "PUT", ts.URL+"/shops/"+strconv.Itoa(int(shop.ID)), stranger.ID, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res.Body.Close()

	res = doRequest(t, "PUT", ts.URL+"/shops/"+strconv.Itoa(int(shop.ID)), owner.ID, body)
	require.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()
	var updated handlers.ShopResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&updated))
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, 25, updated.AverageWaitTime)
}

func TestToggleShopStatus(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)

	res := doRequest(t, "PATCH", ts.URL+"/shops/"+strconv.Itoa(int(shop.ID))+"/toggle", owner.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()
	var toggled handlers.ShopResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&toggled))
	assert.False(t, toggled.IsActive)

	// В закрытый магазин записаться нельзя.
	customer := createTestUser(t, "Анна", "customer")
	joinRes := doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/join", customer.ID, joinBody("Стрижка", 10))
	assert.Equal(t, http.StatusNotFound, joinRes.StatusCode)
	joinRes.Body.Close()
}

func TestShopCatalogAndMyShops(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner1 := createTestUser(t, "Первый", "barber")
	owner2 := createTestUser(t, "Второй", "barber")
	createTestShop(t, owner1.ID, 15)
	createTestShop(t, owner1.ID, 20)
	createTestShop(t, owner2.ID, 10)

	res := doRequest(t, "GET", ts.URL+"/shops", 0, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var catalog []handlers.ShopResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&catalog))
	res.Body.Close()
	assert.Len(t, catalog, 3)

	res = doRequest(t, "GET", ts.URL+"/shops/my", owner1.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var mine []handlers.ShopResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&mine))
	res.Body.Close()
	assert.Len(t, mine, 2)
}

func TestShopServicesCRUD(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	base := ts.URL + "/shops/" + strconv.Itoa(int(shop.ID)) + "/services"

	res := doRequest(t, "POST", base, owner.ID, map[string]interface{}{
		"name": "Стрижка", "price": 12.5, "duration": 30,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var service handlers.ShopServiceResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&service))
	res.Body.Close()

	res = doRequest(t, "PUT", base+"/"+strconv.Itoa(int(service.ID)), owner.ID, map[string]interface{}{
		"name": "Модельная стрижка", "price": 15.0, "duration": 45,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&service))
	res.Body.Close()
	assert.Equal(t, "Модельная стрижка", service.Name)
	assert.Equal(t, 15.0, service.Price)

	res = doRequest(t, "DELETE", base+"/"+strconv.Itoa(int(service.ID)), owner.ID, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doRequest(t, "DELETE", base+"/"+strconv.Itoa(int(service.ID)), owner.ID, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()
}

// Ночная задача отменяет зависшие записи и восстанавливает нумерацию.
func TestCancelStaleEntriesTask(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")
	userC := createTestUser(t, "Вера", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"
	for _, u := range []models.User{userA, userB, userC} {
		res := doRequest(t, "POST", joinURL, u.ID, joinBody("Стрижка", 10))
		require.Equal(t, http.StatusCreated, res.StatusCode)
		res.Body.Close()
	}

	// Состариваем записи первых двух клиентов.
	stale := time.Now().Add(-25 * time.Hour)
	require.NoError(t, storage.DB.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND customer_id IN ?", shop.ID, []uint{userA.ID, userB.ID}).
		Update("created_at", stale).Error)

	tasks.CancelStaleEntries()

	var cancelled int64
	require.NoError(t, storage.DB.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND status = ?", shop.ID, models.StatusCancelled).
		Count(&cancelled).Error)
	assert.Equal(t, int64(2), cancelled)

	// Оставшийся клиент стал первым.
	assert.Equal(t, []int{1}, waitingPositions(t, shop.ID))
}

// Корректирующий проход восстанавливает плотность после искусственной дыры
// и ничего не меняет для консистентной очереди.
func TestReconcileQueuePositionsTask(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"
	for _, u := range []models.User{userA, userB} {
		res := doRequest(t, "POST", joinURL, u.ID, joinBody("Стрижка", 10))
		require.Equal(t, http.StatusCreated, res.StatusCode)
		res.Body.Close()
	}

	// Имитируем упавшую на середине операцию: вторая запись провалилась на позицию 5.
	require.NoError(t, storage.DB.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND customer_id = ?", shop.ID, userB.ID).
		Update("position", 5).Error)

	tasks.ReconcileQueuePositions()
	assert.Equal(t, []int{1, 2}, waitingPositions(t, shop.ID))

	// Повторный проход по уже плотной очереди — no-op.
	before := waitingPositions(t, shop.ID)
	require.NoError(t, queue.RecomputePositions(storage.DB, shop.ID))
	assert.Equal(t, before, waitingPositions(t, shop.ID))
}
