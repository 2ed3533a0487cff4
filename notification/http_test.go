package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeliverer struct {
	mu     sync.Mutex
	events []*Event
}

func (d *recordingDeliverer) Deliver(_ context.Context, event *Event) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return event.OperationID == "known", nil
}

func (d *recordingDeliverer) delivered() []*Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Event{}, d.events...)
}

func signedToken(t *testing.T, key []byte, issuer string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestHandler_ServeHTTP(t *testing.T) {
	key := []byte("secret")
	var testCases = []struct {
		description  string
		method       string
		body         string
		token        string
		verify       bool
		expectStatus int
		expectID     string
	}{
		{
			description:  "plain event",
			method:       http.MethodPost,
			body:         `{"operationId":"known","status":"success","type":"room","resource":{"joinUrl":"x"}}`,
			expectStatus: http.StatusAccepted,
			expectID:     "known",
		},
		{
			description:  "unmatched event is still acknowledged",
			method:       http.MethodPost,
			body:         `{"operationId":"unknown","status":"failure","reason":"declined"}`,
			expectStatus: http.StatusAccepted,
			expectID:     "unknown",
		},
		{
			description:  "json-rpc envelope",
			method:       http.MethodPost,
			body:         `{"jsonrpc":"2.0","method":"operation/completed","params":{"operationId":"known","status":"success"}}`,
			expectStatus: http.StatusAccepted,
			expectID:     "known",
		},
		{
			description:  "unsupported json-rpc method",
			method:       http.MethodPost,
			body:         `{"jsonrpc":"2.0","method":"other","params":{"operationId":"known"}}`,
			expectStatus: http.StatusBadRequest,
		},
		{
			description:  "malformed body",
			method:       http.MethodPost,
			body:         `{`,
			expectStatus: http.StatusBadRequest,
		},
		{
			description:  "missing operation id",
			method:       http.MethodPost,
			body:         `{"status":"success"}`,
			expectStatus: http.StatusBadRequest,
		},
		{
			description:  "get not allowed",
			method:       http.MethodGet,
			expectStatus: http.StatusMethodNotAllowed,
		},
		{
			description:  "verifier rejects missing token",
			method:       http.MethodPost,
			body:         `{"operationId":"known","status":"success"}`,
			verify:       true,
			expectStatus: http.StatusUnauthorized,
		},
		{
			description:  "verifier rejects foreign issuer",
			method:       http.MethodPost,
			body:         `{"operationId":"known","status":"success"}`,
			verify:       true,
			token:        signedToken(t, key, "someone-else"),
			expectStatus: http.StatusUnauthorized,
		},
		{
			description:  "verifier accepts signed token",
			method:       http.MethodPost,
			body:         `{"operationId":"known","status":"success"}`,
			verify:       true,
			token:        signedToken(t, key, "meetings"),
			expectStatus: http.StatusAccepted,
			expectID:     "known",
		},
	}

	for _, testCase := range testCases {
		deliverer := &recordingDeliverer{}
		var options []HandlerOption
		if testCase.verify {
			options = append(options, WithVerifier(NewVerifier(key, "meetings")))
		}
		handler := NewHandler(deliverer, options...)
		request := httptest.NewRequest(testCase.method, "/callback", strings.NewReader(testCase.body))
		if testCase.token != "" {
			request.Header.Set("Authorization", "Bearer "+testCase.token)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, testCase.expectStatus, recorder.Code, testCase.description)
		events := deliverer.delivered()
		if testCase.expectID == "" {
			assert.Empty(t, events, testCase.description)
			continue
		}
		if assert.Len(t, events, 1, testCase.description) {
			assert.Equal(t, testCase.expectID, events[0].OperationID, testCase.description)
		}
	}
}

func TestHandler_ServeHTTP_DeliveryFailure(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()
	handler := NewHandler(NewRelay(client))

	post := func() int {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(`{"operationId":"op-1","status":"success"}`))
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}
	assert.Equal(t, http.StatusAccepted, post())

	server.Close()
	assert.Equal(t, http.StatusServiceUnavailable, post())
}
