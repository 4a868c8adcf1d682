package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository/memory"
	"resort-booking-backend/internal/service"
)

func newTestServer(t *testing.T) (*memory.Store, *httptest.Server) {
	t.Helper()
	store := memory.NewStore()
	store.AddCategory(domain.RoomCategory{
		ID:              1,
		Name:            "Forest Villa",
		Slug:            "forest-villa",
		BasePricePaise:  500000,
		ExtraAdultPaise: 80000,
		ExtraChildPaise: 50000,
		BaseOccupancy:   2,
		MaxAdults:       3,
		MaxChildren:     2,
		TotalRooms:      2,
		IsActive:        true,
	})
	store.AddRoom(domain.Room{ID: 100, CategoryID: 1, RoomNumber: "FV-101", IsActive: true})
	store.AddRoom(domain.Room{ID: 101, CategoryID: 1, RoomNumber: "FV-102", IsActive: true})
	store.AddTax(domain.TaxConfig{ID: 1, Name: "GST", PercentBps: 1200, IsActive: true})

	availability := service.NewAvailabilityService(store, store)
	blocks := service.NewBlockService(store, store)
	bookings := service.NewBookingService(store, store, store, store, availability, 3)

	srv := httptest.NewServer(NewRouter(availability, blocks, bookings))
	t.Cleanup(srv.Close)
	return store, srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestListCategoriesEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/categories")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []categoryDTO `json:"categories"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "forest-villa", body.Categories[0].Slug)
	assert.Equal(t, "5000.00", body.Categories[0].BasePrice)
	assert.Equal(t, 2, body.Categories[0].TotalRooms)
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/availability?category_id=1&check_in=2026-10-01&check_out=2026-10-03")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Available      bool     `json:"available"`
		AvailableCount int      `json:"available_count"`
		TotalRooms     int      `json:"total_rooms"`
		RoomNumbers    []string `json:"room_numbers"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Available)
	assert.Equal(t, 2, body.AvailableCount)
	assert.Equal(t, []string{"FV-101", "FV-102"}, body.RoomNumbers)
}

func TestCheckAvailabilityEndpoint_BadInput(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/availability?category_id=1&check_in=2026-10-03&check_out=2026-10-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/availability?category_id=1&check_in=2026-10-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuoteEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/quotes", map[string]interface{}{
		"category_id": 1,
		"check_in":    "2026-10-01",
		"check_out":   "2026-10-03",
		"num_adults":  3,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body breakdownDTO
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.NumNights)
	assert.Equal(t, "10000.00", body.RoomTotal)
	assert.Equal(t, "1600.00", body.ExtraGuestTotal)
	assert.Equal(t, "11600.00", body.Subtotal)
	assert.Equal(t, "1392.00", body.Tax)
	assert.Equal(t, "12992.00", body.GrandTotal)
}

func TestBookingLifecycleEndpoints(t *testing.T) {
	_, srv := newTestServer(t)

	createResp := postJSON(t, srv.URL+"/api/v1/bookings", map[string]interface{}{
		"guest_name":  "Asha Rao",
		"guest_email": "asha@example.com",
		"category_id": 1,
		"check_in":    "2026-10-01",
		"check_out":   "2026-10-03",
		"num_adults":  2,
		"confirm":     true,
	})
	assert.Equal(t, http.StatusCreated, createResp.StatusCode)

	var created bookingDTO
	decodeBody(t, createResp, &created)
	assert.Equal(t, "booking_confirmed", created.Status)
	require.NotNil(t, created.RoomID)
	assert.Equal(t, "11200.00", created.GrandTotal)

	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/bookings/%d", srv.URL, created.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
	var fetched bookingDTO
	decodeBody(t, getResp, &fetched)
	assert.Equal(t, created.Reference, fetched.Reference)

	cancelResp := postJSON(t, fmt.Sprintf("%s/api/v1/bookings/%d/cancel", srv.URL, created.ID), nil)
	assert.Equal(t, http.StatusOK, cancelResp.StatusCode)
	var cancelled bookingDTO
	decodeBody(t, cancelResp, &cancelled)
	assert.Equal(t, "cancelled", cancelled.Status)

	// Cancelling twice is a lifecycle violation.
	again := postJSON(t, fmt.Sprintf("%s/api/v1/bookings/%d/cancel", srv.URL, created.ID), nil)
	again.Body.Close()
	assert.Equal(t, http.StatusConflict, again.StatusCode)
}

func TestCreateBookingEndpoint_Validation(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/bookings", map[string]interface{}{
		"category_id": 1,
		"check_in":    "2026-10-01",
		"check_out":   "2026-10-03",
		"num_adults":  2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Fields, "guest_name")
	assert.Contains(t, body.Fields, "guest_email")
}

func TestCreateBookingEndpoint_SoldOut(t *testing.T) {
	_, srv := newTestServer(t)

	payload := map[string]interface{}{
		"guest_name":  "Asha Rao",
		"guest_email": "asha@example.com",
		"category_id": 1,
		"check_in":    "2026-10-01",
		"check_out":   "2026-10-03",
		"num_adults":  2,
		"confirm":     true,
	}
	for i := 0; i < 2; i++ {
		resp := postJSON(t, srv.URL+"/api/v1/bookings", payload)
		resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := postJSON(t, srv.URL+"/api/v1/bookings", payload)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAdminBlockEndpoints(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/admin/blocks", map[string]interface{}{
		"room_id":  100,
		"check_in": "2026-11-01", "check_out": "2026-11-04",
		"reason": "maintenance",
		"notes":  "repainting",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	listResp, err := http.Get(srv.URL + "/api/v1/calendar/blocks?room_ids=100&start=2026-11-01&end=2026-11-04")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
	var listBody struct {
		Blocks []blockDTO `json:"blocks"`
	}
	decodeBody(t, listResp, &listBody)
	require.Len(t, listBody.Blocks, 3)
	assert.Equal(t, "2026-11-01", listBody.Blocks[0].Date)
	assert.Equal(t, "maintenance", listBody.Blocks[0].Reason)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/admin/blocks", bytes.NewReader([]byte(
		`{"room_id":100,"check_in":"2026-11-01","check_out":"2026-11-04"}`)))
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)
}

func TestAdminBlockEndpoint_UnknownReason(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/admin/blocks", map[string]interface{}{
		"room_id":  100,
		"check_in": "2026-11-01", "check_out": "2026-11-02",
		"reason": "renovation-ish",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Fields map[string][]string `json:"fields"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Fields, "reason")
}

func TestListBlockedDatesEndpoint_BadRoomIDs(t *testing.T) {
	_, srv := newTestServer(t)

	for _, url := range []string{
		srv.URL + "/api/v1/calendar/blocks?start=2026-11-01&end=2026-11-04",
		srv.URL + "/api/v1/calendar/blocks?room_ids=100,abc&start=2026-11-01&end=2026-11-04",
	} {
		resp, err := http.Get(url)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestChannelImportEndpoint(t *testing.T) {
	store, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/channel/blocks", map[string]interface{}{
		"category_slug": "forest-villa",
		"check_in":      "2026-10-10",
		"check_out":     "2026-10-12",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created bookingDTO
	decodeBody(t, resp, &created)
	assert.Equal(t, "booking_confirmed", created.Status)

	held, err := store.CountBlocksForBooking(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, held)
}
