package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"airplane-seating-cli/model"
)

func newTestClient(server *httptest.Server) *Client {
	client := NewClient(server.URL, server.Client())
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond
	return client
}

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := newTestClient(server)
	client.maxAttempts = 1

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := newTestClient(server)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := newTestClient(server)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/bad-request", &out); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestAssign_IsNeverRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server)

	_, err := client.Assign(context.Background(), model.AssignmentRequest{Class: model.First, Count: 1, Names: []string{"Alice"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestAssign_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/bookings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req model.AssignmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Class != model.First || req.Count != 2 || len(req.Names) != 2 {
			t.Fatalf("unexpected request body: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b-1","class":"first","seats":["1A","1B"],"passengers":["Alice","Bob"],"created_at":"2026-03-01T10:00:00Z"}`))
	}))
	defer server.Close()

	booking, err := newTestClient(server).Assign(context.Background(), model.AssignmentRequest{
		Class: model.First,
		Count: 2,
		Names: []string{"Alice", "Bob"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if booking.ID != "b-1" || strings.Join(booking.SeatIDs, ",") != "1A,1B" {
		t.Fatalf("unexpected booking: %+v", booking)
	}
}

func TestAssign_MapsErrorCodes(t *testing.T) {
	cases := []struct {
		status int
		code   string
		want   error
	}{
		{http.StatusConflict, CodeInsufficientSeats, model.ErrInsufficientSeats},
		{http.StatusBadRequest, CodeNameCountMismatch, model.ErrNameCountMismatch},
		{http.StatusBadRequest, CodeInvalidSeatCount, model.ErrInvalidSeatCount},
		{http.StatusBadRequest, CodeInvalidPassengerName, model.ErrInvalidPassengerName},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":"rejected","code":"` + tc.code + `"}`))
			}))
			defer server.Close()

			_, err := newTestClient(server).Assign(context.Background(), model.AssignmentRequest{Class: model.Economy, Count: 1, Names: []string{"A"}})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if err.Error() != "rejected" {
				t.Fatalf("expected server message, got %q", err.Error())
			}
		})
	}
}

func TestSeats_SendsSortKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/seats" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("sort") != "name" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"seats":[{"seat_id":"1A","row":1,"column":"A","class":"first","status":"Occupied","passenger_name":"Alice"}]}`))
	}))
	defer server.Close()

	seats, err := newTestClient(server).Seats(context.Background(), model.ByPassengerName)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(seats) != 1 || seats[0].SeatID != "1A" || seats[0].Class != model.First {
		t.Fatalf("unexpected seats: %+v", seats)
	}
}

func TestLoad_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no saved seating state","code":"state_not_found"}`))
	}))
	defer server.Close()

	found, err := newTestClient(server).Load(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if found {
		t.Fatal("expected found to be false")
	}
}

func TestLoad_CorruptState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"corrupt seating state: bad","code":"corrupt_state"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Load(context.Background())
	if !errors.Is(err, model.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{StatusCode: http.StatusNotFound}) {
		t.Fatal("expected 404 to be not found")
	}
	if IsNotFound(errors.New("other")) {
		t.Fatal("expected plain error not to be not found")
	}
}

func TestRetryDelay_IsCapped(t *testing.T) {
	client := NewClient("http://localhost", nil)
	if got := client.retryDelay(1); got != defaultRetryBase {
		t.Fatalf("expected %v, got %v", defaultRetryBase, got)
	}
	if got := client.retryDelay(10); got != defaultRetryCap {
		t.Fatalf("expected %v, got %v", defaultRetryCap, got)
	}
}
