package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"hair_queue/internal/handlers"
	"hair_queue/internal/models"
	"hair_queue/internal/storage"
	"hair_queue/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AuthMiddlewareTest подставляет userID из заголовка X-Test-UserID вместо разбора JWT.
func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.Request.Header.Get("X-Test-UserID")
		if userIDStr == "" {
			c.Set("userID", uint(1))
		} else {
			id, err := strconv.Atoi(userIDStr)
			if err != nil {
				c.Set("userID", uint(1))
			} else {
				c.Set("userID", uint(id))
			}
		}
		c.Next()
	}
}

var hubOnce sync.Once

func setupTestServer() *httptest.Server {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load("../../.env")
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectTestingDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Shop{}, &models.ShopService{}, &models.QueueEntry{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}
	storage.DB.Exec("TRUNCATE TABLE users, shops, shop_services, queue_entries RESTART IDENTITY CASCADE;")

	storage.InitRedis()

	hubOnce.Do(func() {
		go ws.HubInstance.Run()
	})

	gin.SetMode(gin.TestMode)
	r := gin.Default()

	shops := r.Group("/shops")
	{
		shops.GET("", handlers.GetShopsHandler)
		shops.GET("/my", AuthMiddlewareTest(), handlers.GetMyShopsHandler)
		shops.GET("/:shopId", handlers.GetShopHandler)
		shops.POST("", AuthMiddlewareTest(), handlers.CreateShopHandler)
		shops.PUT("/:shopId", AuthMiddlewareTest(), handlers.UpdateShopHandler)
		shops.PATCH("/:shopId/toggle", AuthMiddlewareTest(), handlers.ToggleShopStatusHandler)
		shops.POST("/:shopId/services", AuthMiddlewareTest(), handlers.AddShopServiceHandler)
		shops.PUT("/:shopId/services/:serviceId", AuthMiddlewareTest(), handlers.UpdateShopServiceHandler)
		shops.DELETE("/:shopId/services/:serviceId", AuthMiddlewareTest(), handlers.DeleteShopServiceHandler)
	}

	queueGroup := r.Group("/queue")
	{
		queueGroup.GET("/shop/:shopId", handlers.GetShopQueueHandler)
		queueGroup.GET("/shop/:shopId/ws", ws.ShopQueueWebSocketHandler)
		queueGroup.POST("/:id/join", AuthMiddlewareTest(), handlers.JoinQueueHandler)
		queueGroup.DELETE("/:id/leave", AuthMiddlewareTest(), handlers.LeaveQueueHandler)
		queueGroup.POST("/:id/next", AuthMiddlewareTest(), handlers.NextCustomerHandler)
	}

	profile := r.Group("/profile", AuthMiddlewareTest())
	{
		profile.GET("/queue", handlers.GetUserQueuesHandler)
	}

	return httptest.NewServer(r)
}

func createTestUser(t *testing.T, name, role string) models.User {
	t.Helper()
	user := models.User{
		FullName: name,
		Email:    fmt.Sprintf("%s_%d@example.com", role, time.Now().UnixNano()),
		Role:     role,
	}
	require.NoError(t, storage.DB.Create(&user).Error)
	return user
}

func createTestShop(t *testing.T, ownerID uint, avgWait int) models.Shop {
	t.Helper()
	shop := models.Shop{
		Name:            "Тестовый барбершоп",
		OwnerID:         ownerID,
		IsActive:        true,
		AverageWaitTime: avgWait,
	}
	require.NoError(t, storage.DB.Create(&shop).Error)
	return shop
}

func doRequest(t *testing.T, method, url string, userID uint, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", userID))
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func joinBody(name string, price float64) map[string]interface{} {
	return map[string]interface{}{
		"service": map[string]interface{}{"name": name, "price": price},
	}
}

func decodeEntry(t *testing.T, res *http.Response) handlers.QueueEntryResponse {
	t.Helper()
	defer res.Body.Close()
	var entry handlers.QueueEntryResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entry))
	return entry
}

// waitingPositions возвращает позиции ожидающих записей магазина по возрастанию.
func waitingPositions(t *testing.T, shopID uint) []int {
	t.Helper()
	var positions []int
	require.NoError(t, storage.DB.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND status = ?", shopID, models.StatusWaiting).
		Order("position ASC").
		Pluck("position", &positions).Error)
	return positions
}

func assertDense(t *testing.T, shopID uint) {
	t.Helper()
	positions := waitingPositions(t, shopID)
	for i, p := range positions {
		assert.Equal(t, i+1, p, "Позиции ожидающих должны быть плотной последовательностью 1..N")
	}
}

func TestJoinAssignsDensePositions(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"

	now := time.Now()
	res := doRequest(t, "POST", joinURL, userA.ID, joinBody("Стрижка", 10))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	entryA := decodeEntry(t, res)
	assert.Equal(t, 1, entryA.Position)
	assert.Equal(t, models.StatusWaiting, entryA.Status)
	assert.Equal(t, "Стрижка", entryA.ServiceName)
	// Первый в очереди — оценка начала примерно сейчас.
	assert.WithinDuration(t, now, entryA.EstimatedStartTime, time.Minute)

	res = doRequest(t, "POST", joinURL, userB.ID, joinBody("Бритьё", 5))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	entryB := decodeEntry(t, res)
	assert.Equal(t, 2, entryB.Position)
	// Второй ждёт один средний цикл обслуживания (15 минут).
	assert.WithinDuration(t, now.Add(15*time.Minute), entryB.EstimatedStartTime, time.Minute)

	assertDense(t, shop.ID)
}

func TestJoinValidation(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	user := createTestUser(t, "Анна", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"

	// Пустое название услуги.
	res := doRequest(t, "POST", joinURL, user.ID, joinBody("", 10))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res.Body.Close()

	// Отрицательная цена.
	res = doRequest(t, "POST", joinURL, user.ID, joinBody("Стрижка", -1))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res.Body.Close()

	// Цена не указана вовсе.
	res = doRequest(t, "POST", joinURL, user.ID, map[string]interface{}{
		"service": map[string]interface{}{"name": "Стрижка"},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res.Body.Close()

	// Нулевая цена допустима.
	res = doRequest(t, "POST", joinURL, user.ID, joinBody("Акция", 0))
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()
}

func TestJoinShopNotFoundAndInactive(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	user := createTestUser(t, "Анна", "customer")

	// Несуществующий магазин.
	res := doRequest(t, "POST", ts.URL+"/queue/9999/join", user.ID, joinBody("Стрижка", 10))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()

	// Закрытый магазин.
	require.NoError(t, storage.DB.Model(&shop).Update("is_active", false).Error)
	res = doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/join", user.ID, joinBody("Стрижка", 10))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()
}

func TestDoubleJoinConflict(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	user := createTestUser(t, "Анна", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"

	res := doRequest(t, "POST", joinURL, user.ID, joinBody("Стрижка", 10))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()

	// Повторная запись в ту же очередь отклоняется.
	res = doRequest(t, "POST", joinURL, user.ID, joinBody("Бритьё", 5))
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	res.Body.Close()

	// После выхода из очереди можно записаться снова.
	var entry models.QueueEntry
	require.NoError(t, storage.DB.
		Where("shop_id = ? AND customer_id = ?", shop.ID, user.ID).
		First(&entry).Error)
	res = doRequest(t, "DELETE", ts.URL+"/queue/"+strconv.Itoa(int(entry.ID))+"/leave", user.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doRequest(t, "POST", joinURL, user.ID, joinBody("Бритьё", 5))
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()
}

func TestLeaveRenumbers(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")
	userC := createTestUser(t, "Вера", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"
	var entries []handlers.QueueEntryResponse
	for _, u := range []models.User{userA, userB, userC} {
		res := doRequest(t, "POST", joinURL, u.ID, joinBody("Стрижка", 10))
		require.Equal(t, http.StatusCreated, res.StatusCode)
		entries = append(entries, decodeEntry(t, res))
	}

	// Уходит клиент из середины очереди.
	res := doRequest(t, "DELETE", ts.URL+"/queue/"+strconv.Itoa(int(entries[1].ID))+"/leave", userB.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	var cancelled models.QueueEntry
	require.NoError(t, storage.DB.First(&cancelled, entries[1].ID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	// Отменённая запись хранит последнюю позицию для истории.
	assert.Equal(t, 2, cancelled.Position)

	var third models.QueueEntry
	require.NoError(t, storage.DB.First(&third, entries[2].ID).Error)
	assert.Equal(t, 2, third.Position, "Третий клиент должен сдвинуться на освободившуюся позицию")

	assertDense(t, shop.ID)
}

func TestLeaveForbiddenAndNotFound(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")

	res := doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/join", userA.ID, joinBody("Стрижка", 10))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	entry := decodeEntry(t, res)

	// Чужую запись отменить нельзя.
	res = doRequest(t, "DELETE", ts.URL+"/queue/"+strconv.Itoa(int(entry.ID))+"/leave", userB.ID, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res.Body.Close()

	// Несуществующая запись.
	res = doRequest(t, "DELETE", ts.URL+"/queue/9999/leave", userA.ID, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()
}

// Отмена записи, которая уже не ждёт, не должна сдвигать позиции ожидающих.
func TestLeaveNonWaitingDoesNotRenumber(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"
	res := doRequest(t, "POST", joinURL, userA.ID, joinBody("Стрижка", 10))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	entryA := decodeEntry(t, res)
	res = doRequest(t, "POST", joinURL, userB.ID, joinBody("Бритьё", 5))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()

	// Владелец позвал первого: тот обслуживается, второй стал первым в ожидании.
	res = doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/next", owner.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()
	require.Equal(t, []int{1}, waitingPositions(t, shop.ID))

	// Обслуживаемый клиент передумал и ушёл — позиция оставшегося не трогается.
	res = doRequest(t, "DELETE", ts.URL+"/queue/"+strconv.Itoa(int(entryA.ID))+"/leave", userA.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	var cancelled models.QueueEntry
	require.NoError(t, storage.DB.First(&cancelled, entryA.ID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, []int{1}, waitingPositions(t, shop.ID))
}

func TestAdvancePromotesAndRenumbers(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)
	userA := createTestUser(t, "Анна", "customer")
	userB := createTestUser(t, "Борис", "customer")

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"
	res := doRequest(t, "POST", joinURL, userA.ID, joinBody("Стрижка", 10))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	entryA := decodeEntry(t, res)
	res = doRequest(t, "POST", joinURL, userB.ID, joinBody("Бритьё", 5))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	entryB := decodeEntry(t, res)

	nextURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/next"
	res = doRequest(t, "POST", nextURL, owner.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	promoted := decodeEntry(t, res)
	assert.Equal(t, entryA.ID, promoted.ID, "Приглашается клиент с минимальной позицией")
	assert.Equal(t, models.StatusInProgress, promoted.Status)

	// Оставшийся ожидающий сдвинулся на первую позицию.
	var b models.QueueEntry
	require.NoError(t, storage.DB.First(&b, entryB.ID).Error)
	assert.Equal(t, 1, b.Position)
	assertDense(t, shop.ID)

	// Следующий вызов завершает текущего и приглашает второго.
	res = doRequest(t, "POST", nextURL, owner.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	promoted = decodeEntry(t, res)
	assert.Equal(t, entryB.ID, promoted.ID)

	var a models.QueueEntry
	require.NoError(t, storage.DB.First(&a, entryA.ID).Error)
	assert.Equal(t, models.StatusCompleted, a.Status)

	// Одновременно обслуживается не больше одного клиента.
	var inProgress int64
	require.NoError(t, storage.DB.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND status = ?", shop.ID, models.StatusInProgress).
		Count(&inProgress).Error)
	assert.Equal(t, int64(1), inProgress)
}

func TestAdvanceEmptyQueue(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)

	res := doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/next", owner.ID, nil)
	// Пустая очередь — успешный ответ, а не ошибка.
	require.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Contains(t, body, "message")

	var total int64
	require.NoError(t, storage.DB.Model(&models.QueueEntry{}).Count(&total).Error)
	assert.Equal(t, int64(0), total, "Пустой вызов не должен создавать или менять записи")
}

func TestAdvanceForbiddenForNonOwner(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	stranger := createTestUser(t, "Посторонний", "customer")
	shop := createTestShop(t, owner.ID, 15)

	res := doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/next", stranger.ID, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res.Body.Close()
}

func TestGetShopQueuePublicOrdering(t *testing.T) {
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
	// Первый уходит на обслуживание.
	res := doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/next", owner.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	// Список публичный: без заголовка авторизации.
	req, err := http.NewRequest("GET", ts.URL+"/queue/shop/"+strconv.Itoa(int(shop.ID)), nil)
	require.NoError(t, err)
	listRes, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listRes.StatusCode)
	defer listRes.Body.Close()

	var queueStatus handlers.ShopQueueResponse
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&queueStatus))
	require.Len(t, queueStatus.Entries, 3, "Обслуживаемый и двое ожидающих")

	statuses := make(map[string]int)
	for _, e := range queueStatus.Entries {
		statuses[e.Status]++
		assert.NotEmpty(t, e.CustomerName, "В публичном списке видно имя клиента")
	}
	assert.Equal(t, 1, statuses[models.StatusInProgress])
	assert.Equal(t, 2, statuses[models.StatusWaiting])

	// Позиции не убывают по списку.
	for i := 1; i < len(queueStatus.Entries); i++ {
		assert.GreaterOrEqual(t, queueStatus.Entries[i].Position, queueStatus.Entries[i-1].Position)
	}
}

// Конкурентные записи в одну очередь должны получить различные плотные позиции.
func TestConcurrentJoinsDistinctPositions(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop := createTestShop(t, owner.ID, 15)

	const customers = 8
	var users []models.User
	for i := 0; i < customers; i++ {
		users = append(users, createTestUser(t, fmt.Sprintf("Клиент %d", i+1), "customer"))
	}

	joinURL := ts.URL + "/queue/" + strconv.Itoa(int(shop.ID)) + "/join"
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			res := doRequest(t, "POST", joinURL, userID, joinBody("Стрижка", 10))
			assert.Equal(t, http.StatusCreated, res.StatusCode)
			res.Body.Close()
		}(u.ID)
	}
	wg.Wait()

	positions := waitingPositions(t, shop.ID)
	require.Len(t, positions, customers)
	for i, p := range positions {
		assert.Equal(t, i+1, p, "Позиции не должны дублироваться и содержать дыр")
	}
}

func TestUserQueuesProfile(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	owner := createTestUser(t, "Владелец", "barber")
	shop1 := createTestShop(t, owner.ID, 15)
	shop2 := createTestShop(t, owner.ID, 30)
	user := createTestUser(t, "Анна", "customer")

	for _, shop := range []models.Shop{shop1, shop2} {
		res := doRequest(t, "POST", ts.URL+"/queue/"+strconv.Itoa(int(shop.ID))+"/join", user.ID, joinBody("Стрижка", 10))
		require.Equal(t, http.StatusCreated, res.StatusCode)
		res.Body.Close()
	}

	res := doRequest(t, "GET", ts.URL+"/profile/queue", user.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()

	var items []handlers.UserQueueItem
	require.NoError(t, json.NewDecoder(res.Body).Decode(&items))
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, models.StatusWaiting, item.Status)
		assert.Equal(t, 1, item.Position)
		assert.NotEmpty(t, item.ShopName)
	}
}
