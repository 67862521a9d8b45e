package httpapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/bookstore/transport/httpapi"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type bookBody struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	Genre          string `json:"genre"`
	Status         string `json:"status"`
	Author         string `json:"author"`
	AuthorUsername string `json:"author_username"`
}

type orderBody struct {
	ID              string `json:"id"`
	BookID          string `json:"book_id"`
	UserID          string `json:"user_id"`
	DeliveryAddress string `json:"delivery_address"`
}

type profileBody struct {
	UserID      string `json:"user_id"`
	Language    string `json:"language"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type errorBody struct {
	Error string `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	secret []byte
}

func newTestAPI(t *testing.T, opts ...httpapi.Option) *testAPI {
	t.Helper()

	secret := []byte("test-secret")
	handlers := httpapi.NewHandlers(memengine.NewStore(), shell.WithBaseDelay(time.Millisecond))

	defaults := []httpapi.Option{
		httpapi.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		httpapi.WithClock(fixtures.NewClock().Next),
	}

	router, err := httpapi.NewRouter(handlers, secret, append(defaults, opts...)...)
	require.NoError(t, err)

	return &testAPI{t: t, router: router, secret: secret}
}

func (api *testAPI) token(userID uuid.UUID) string {
	api.t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(api.secret)
	require.NoError(api.t, err)

	return token
}

// do sends a request as the given user. uuid.Nil sends it without a token.
func (api *testAPI) do(method, path string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	api.t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	if userID != uuid.Nil {
		request.Header.Set("Authorization", "Bearer "+api.token(userID))
	}

	recorder := httptest.NewRecorder()
	api.router.ServeHTTP(recorder, request)

	return recorder
}

func (api *testAPI) register(username string) uuid.UUID {
	api.t.Helper()

	userID := fixtures.NewID(api.t)
	response := api.do(http.MethodPost, "/api/users", userID, `{"username":"`+username+`"}`)
	require.Equal(api.t, http.StatusCreated, response.Code, response.Body.String())

	return userID
}

func (api *testAPI) createBook(authorID uuid.UUID, body string) bookBody {
	api.t.Helper()

	response := api.do(http.MethodPost, "/api/books", authorID, body)
	require.Equal(api.t, http.StatusCreated, response.Code, response.Body.String())

	return decode[bookBody](api.t, response)
}

func decode[T any](t *testing.T, response *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(response.Body.Bytes(), &body))

	return body
}

func orderBodyFor(bookID string) string {
	return `{"book_id":"` + bookID + `","phone_number":"123","country":"US","delivery_address":"1 Main St"}`
}

func Test_Router_BookSaleScenario(t *testing.T) {
	// setup
	api := newTestAPI(t)

	// arrange
	alice := api.register("alice")
	bob := api.register("bob")
	carol := api.register("carol")

	// act
	book := api.createBook(alice, `{"name":"Foo","price":5,"genre":"thriller"}`)

	// assert
	assert.Equal(t, "Foo", book.Name)
	assert.Equal(t, int64(5), book.Price)
	assert.Equal(t, "THRILLER", book.Genre)
	assert.Equal(t, "ACTIVE", book.Status)
	assert.Equal(t, alice.String(), book.Author)
	assert.Equal(t, "alice", book.AuthorUsername)

	// act
	response := api.do(http.MethodPost, "/api/orders", bob, orderBodyFor(book.ID))

	// assert
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())
	order := decode[orderBody](t, response)
	assert.Equal(t, book.ID, order.BookID)
	assert.Equal(t, bob.String(), order.UserID)
	assert.Equal(t, "1 Main St", order.DeliveryAddress)

	response = api.do(http.MethodGet, "/api/books/"+book.ID, carol, "")
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "INACTIVE", decode[bookBody](t, response).Status)

	// act: too late
	response = api.do(http.MethodPost, "/api/orders", carol, orderBodyFor(book.ID))

	// assert
	assert.Equal(t, http.StatusConflict, response.Code)
	assert.Contains(t, decode[errorBody](t, response).Error, "this book is inactive")

	// act: the author tries to buy
	response = api.do(http.MethodPost, "/api/orders", alice, orderBodyFor(book.ID))

	// assert
	assert.Equal(t, http.StatusMethodNotAllowed, response.Code)
	assert.Contains(t, decode[errorBody](t, response).Error, "you can't buy your own book")

	// act
	response = api.do(http.MethodGet, "/api/books", uuid.Nil, "")

	// assert
	require.Equal(t, http.StatusOK, response.Code)
	assert.Empty(t, decode[[]bookBody](t, response), "sold books are not listed")
}

func Test_Router_Authentication(t *testing.T) {
	// setup
	api := newTestAPI(t)

	t.Run("missing_token", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/profile", uuid.Nil, "")

		assert.Equal(t, http.StatusUnauthorized, response.Code)
	})

	t.Run("token_with_wrong_secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: uuid.New().String(),
		}).SignedString([]byte("another-secret"))
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		api.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("subject_is_not_a_user_id", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "alice",
		}).SignedString(api.secret)
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		api.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("catalogue_is_public", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/books", uuid.Nil, "")

		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("unregistered_user_can't_list_books", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/books", uuid.New(), `{"name":"Foo","price":5,"genre":"THRILLER"}`)

		assert.Equal(t, http.StatusForbidden, response.Code)
	})
}

func Test_Router_Books(t *testing.T) {
	// setup
	api := newTestAPI(t)

	// arrange
	alice := api.register("alice")
	bob := api.register("bob")
	cheap := api.createBook(alice, `{"name":"Cheap","price":1,"genre":"ROMANCE"}`)
	pricey := api.createBook(alice, `{"name":"Pricey","price":99,"genre":"ROMANCE"}`)
	api.createBook(bob, `{"name":"Other","price":50,"genre":"HISTORICAL"}`)

	t.Run("filter_and_order", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/books?genre=romance&ordering=-price", uuid.Nil, "")

		require.Equal(t, http.StatusOK, response.Code)
		books := decode[[]bookBody](t, response)
		require.Len(t, books, 2)
		assert.Equal(t, pricey.ID, books[0].ID)
		assert.Equal(t, cheap.ID, books[1].ID)
	})

	t.Run("search_by_author", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/books?search=BOB", uuid.Nil, "")

		require.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, decode[[]bookBody](t, response), 1)
	})

	t.Run("unknown_genre", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/books?genre=poetry", uuid.Nil, "")

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("invalid_book", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/books", alice, `{"name":"","price":1,"genre":"ROMANCE"}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("missing_price", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/books", alice, `{"name":"Foo","genre":"ROMANCE"}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("malformed_body", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/books", alice, `{"name":`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("update_by_author", func(t *testing.T) {
		response := api.do(http.MethodPut, "/api/books/"+cheap.ID, alice, `{"price":2}`)

		require.Equal(t, http.StatusOK, response.Code, response.Body.String())
		assert.Equal(t, int64(2), decode[bookBody](t, response).Price)
	})

	t.Run("update_by_someone_else", func(t *testing.T) {
		response := api.do(http.MethodPut, "/api/books/"+cheap.ID, bob, `{"price":0}`)

		assert.Equal(t, http.StatusForbidden, response.Code)
	})

	t.Run("status_is_not_patchable", func(t *testing.T) {
		response := api.do(http.MethodPut, "/api/books/"+cheap.ID, alice, `{"status":"INACTIVE"}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("unknown_book", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/books/"+uuid.NewString(), bob, "")

		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("malformed_book_id", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/books/42", bob, "")

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("own_listings", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/profile/books", alice, "")

		require.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, decode[[]bookBody](t, response), 2)
	})
}

func Test_Router_Orders(t *testing.T) {
	// setup
	api := newTestAPI(t)

	// arrange
	seller := api.register("seller")
	buyer := api.register("buyer")
	first := api.createBook(seller, `{"name":"One","price":1,"genre":"ADVENTURE"}`)
	second := api.createBook(seller, `{"name":"Two","price":2,"genre":"ADVENTURE"}`)

	response := api.do(http.MethodPost, "/api/orders", buyer, orderBodyFor(first.ID))
	require.Equal(t, http.StatusCreated, response.Code)
	firstOrder := decode[orderBody](t, response)

	response = api.do(http.MethodPost, "/api/orders", buyer, orderBodyFor(second.ID))
	require.Equal(t, http.StatusCreated, response.Code)

	t.Run("missing_delivery_address", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/orders", buyer,
			`{"book_id":"`+first.ID+`","phone_number":"1","country":"US","delivery_address":" "}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("retrieve", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/orders/"+firstOrder.ID, seller, "")

		require.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, first.ID, decode[orderBody](t, response).BookID)
	})

	t.Run("list_and_clear", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/profile/orders", buyer, "")
		require.Equal(t, http.StatusOK, response.Code)
		orders := decode[[]orderBody](t, response)
		require.Len(t, orders, 2)
		assert.Equal(t, firstOrder.ID, orders[0].ID)

		response = api.do(http.MethodDelete, "/api/profile/orders", buyer, "")
		require.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"deleted":2}`, response.Body.String())

		response = api.do(http.MethodDelete, "/api/profile/orders", buyer, "")
		require.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"deleted":0}`, response.Body.String())

		response = api.do(http.MethodGet, "/api/books/"+first.ID, buyer, "")
		assert.Equal(t, "INACTIVE", decode[bookBody](t, response).Status)
	})
}

func Test_Router_Profile(t *testing.T) {
	// setup
	api := newTestAPI(t)

	// arrange
	me := api.register("me")

	t.Run("register_twice", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/users", me, `{"username":"me"}`)

		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("username_taken", func(t *testing.T) {
		response := api.do(http.MethodPost, "/api/users", fixtures.NewID(t), `{"username":"me"}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("default_profile", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/profile", me, "")

		require.Equal(t, http.StatusOK, response.Code)
		profile := decode[profileBody](t, response)
		assert.Equal(t, me.String(), profile.UserID)
		assert.Equal(t, "es", profile.Language)
	})

	t.Run("update", func(t *testing.T) {
		response := api.do(http.MethodPut, "/api/profile", me, `{"language":"uk","display_name":"Me","email":"me@example.com"}`)

		require.Equal(t, http.StatusOK, response.Code, response.Body.String())
		profile := decode[profileBody](t, response)
		assert.Equal(t, "uk", profile.Language)
		assert.Equal(t, "Me", profile.DisplayName)
		assert.Equal(t, "me@example.com", profile.Email)
	})

	t.Run("invalid_language", func(t *testing.T) {
		response := api.do(http.MethodPut, "/api/profile", me, `{"language":"de"}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("unregistered_caller", func(t *testing.T) {
		response := api.do(http.MethodGet, "/api/profile", fixtures.NewID(t), "")

		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool {
	return false
}

func Test_Router_RateLimit(t *testing.T) {
	// setup
	api := newTestAPI(t, httpapi.WithRateLimiter(denyAll{}))

	// act
	response := api.do(http.MethodGet, "/api/books", uuid.Nil, "")

	// assert
	assert.Equal(t, http.StatusTooManyRequests, response.Code)
	assert.Equal(t, "rate limit exceeded", decode[errorBody](t, response).Error)

	response = api.do(http.MethodGet, "/healthz", uuid.Nil, "")
	assert.Equal(t, http.StatusOK, response.Code, "operational endpoints are not limited")
}

func Test_RedisRateLimiter_AllowsRequestsWhenRedisIsDown(t *testing.T) {
	// setup
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() { _ = client.Close() }()

	limiter := httpapi.NewRedisRateLimiter(client, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// act & assert
	assert.True(t, limiter.Allow(context.Background(), "192.0.2.1"))
	assert.True(t, limiter.Allow(context.Background(), "192.0.2.1"))
}

func connectTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 500 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	return client
}

func Test_RedisRateLimiter_CountsPerWindow(t *testing.T) {
	// setup
	client := connectTestRedis(t)
	ctx := context.Background()
	window := time.Second
	clientKey := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = client.Del(context.Background(), "ratelimit:"+clientKey).Err() })

	limiter := httpapi.NewRedisRateLimiterWithWindow(client, 2, window, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// act & assert
	assert.True(t, limiter.Allow(ctx, clientKey))

	ttl, err := client.TTL(ctx, "ratelimit:"+clientKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "the counter must expire")
	assert.LessOrEqual(t, ttl, window)

	assert.True(t, limiter.Allow(ctx, clientKey))
	assert.False(t, limiter.Allow(ctx, clientKey))

	ttl, err = client.TTL(ctx, "ratelimit:"+clientKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "increments keep the expiry")

	assert.Eventually(t, func() bool {
		return limiter.Allow(ctx, clientKey)
	}, 3*window, 100*time.Millisecond, "a new window resets the count")
}

func Test_Router_OperationalEndpoints(t *testing.T) {
	// setup
	api := newTestAPI(t)

	// act
	health := api.do(http.MethodGet, "/healthz", uuid.Nil, "")
	metrics := api.do(http.MethodGet, "/metrics", uuid.Nil, "")

	// assert
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())

	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `http_requests_total{method="GET",path="/healthz",status="200"} 1`)
	assert.Contains(t, metrics.Body.String(), "http_request_duration_seconds")
}

func Test_Router_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	response := api.do(http.MethodGet, "/nope", uuid.Nil, "")

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Equal(t, "route not found", decode[errorBody](t, response).Error)
}

func Test_NewRouter_RequiresSecret(t *testing.T) {
	_, err := httpapi.NewRouter(httpapi.Handlers{}, nil)

	assert.ErrorIs(t, err, httpapi.ErrEmptyJWTSecret)
}
