package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/after-school-booking/internal/database"
	"github.com/iliyamo/after-school-booking/internal/model"
	"github.com/iliyamo/after-school-booking/internal/queue"
	"github.com/iliyamo/after-school-booking/internal/repository"
)

// fakeLessonStore mimics the Mongo-backed repository over an in-memory
// slice, including its quirks: case-insensitive substring search and a
// modified count of zero when the update changes nothing.
type fakeLessonStore struct {
	lessons     []model.Lesson
	listCalls   int
	searchCalls int
	setCalls    int
	failWith    error
}

func newFakeLessonStore() *fakeLessonStore {
	lessons := database.Catalog()
	for i := range lessons {
		lessons[i].ID = primitive.NewObjectID()
	}
	return &fakeLessonStore{lessons: lessons}
}

func (f *fakeLessonStore) ListAll(context.Context) ([]model.Lesson, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]model.Lesson(nil), f.lessons...), nil
}

func (f *fakeLessonStore) Search(_ context.Context, term string) ([]model.Lesson, error) {
	f.searchCalls++
	if term == "" {
		return nil, repository.ErrEmptySearchTerm
	}
	t := strings.ToLower(term)
	out := []model.Lesson{}
	for _, l := range f.lessons {
		if strings.Contains(strings.ToLower(l.Subject), t) || strings.Contains(strings.ToLower(l.Location), t) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonStore) SetSpaces(_ context.Context, id string, spaces int) (int64, error) {
	f.setCalls++
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, repository.ErrInvalidLessonID
	}
	for i := range f.lessons {
		if f.lessons[i].ID == oid {
			if f.lessons[i].Spaces == spaces {
				return 0, nil
			}
			f.lessons[i].Spaces = spaces
			return 1, nil
		}
	}
	return 0, nil
}

type fakeOrderStore struct {
	payloads []map[string]interface{}
	failWith error
}

func (f *fakeOrderStore) Insert(_ context.Context, payload map[string]interface{}) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.payloads = append(f.payloads, payload)
	return primitive.NewObjectID().Hex(), nil
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func request(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListLessons(t *testing.T) {
	store := newFakeLessonStore()
	h := &BookingHandler{Lessons: store}

	c, rec := request(t, http.MethodGet, "/lessons", "")
	if err := h.ListLessons(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []model.Lesson
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 lessons, got %d", len(got))
	}
	want := database.Catalog()
	for i, l := range got {
		if l.Spaces < 0 {
			t.Errorf("lesson %d: negative spaces %d", i, l.Spaces)
		}
		if l.Subject != want[i].Subject || l.Location != want[i].Location ||
			l.Price != want[i].Price || l.Spaces != want[i].Spaces {
			t.Errorf("lesson %d: got %+v, want %+v", i, l, want[i])
		}
	}
}

func TestListLessonsStoreFault(t *testing.T) {
	store := newFakeLessonStore()
	store.failWith = errors.New("socket closed")
	h := &BookingHandler{Lessons: store}

	c, rec := request(t, http.MethodGet, "/lessons", "")
	if err := h.ListLessons(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected error field in response")
	}
}

func TestSearchLessons(t *testing.T) {
	t.Run("missing q is rejected before the store", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}

		c, rec := request(t, http.MethodGet, "/search", "")
		if err := h.SearchLessons(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if store.searchCalls != 0 {
			t.Fatalf("store was called %d times", store.searchCalls)
		}
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}

		for _, q := range []string{"math", "MATH", "Math"} {
			c, rec := request(t, http.MethodGet, "/search?q="+q, "")
			if err := h.SearchLessons(c); err != nil {
				t.Fatalf("q=%s: %v", q, err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("q=%s: expected 200, got %d", q, rec.Code)
			}
			var got []model.Lesson
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("q=%s: decode: %v", q, err)
			}
			if len(got) != 2 {
				t.Fatalf("q=%s: expected 2 lessons, got %d", q, len(got))
			}
			for _, l := range got {
				if l.Subject != "Math" {
					t.Errorf("q=%s: unexpected lesson %+v", q, l)
				}
			}
		}
	})

	t.Run("location matches too", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}

		c, rec := request(t, http.MethodGet, "/search?q=london", "")
		if err := h.SearchLessons(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		var got []model.Lesson
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != 2 { // Math/London and English/London
			t.Fatalf("expected 2 lessons, got %d", len(got))
		}
	})
}

func TestUpdateSpaces(t *testing.T) {
	setParam := func(c echo.Context, id string) {
		c.SetPath("/lessons/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}

	t.Run("missing spaces is rejected before the store", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}

		c, rec := request(t, http.MethodPut, "/lessons/x", `{}`)
		setParam(c, store.lessons[0].ID.Hex())
		if err := h.UpdateSpaces(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if store.setCalls != 0 {
			t.Fatalf("store was called %d times", store.setCalls)
		}
	})

	t.Run("negative spaces is rejected before the store", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}

		c, rec := request(t, http.MethodPut, "/lessons/x", `{"spaces":-1}`)
		setParam(c, store.lessons[0].ID.Hex())
		if err := h.UpdateSpaces(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if store.setCalls != 0 {
			t.Fatalf("store was called %d times", store.setCalls)
		}
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}

		c, rec := request(t, http.MethodPut, "/lessons/nope", `{"spaces":3}`)
		setParam(c, "nope")
		if err := h.UpdateSpaces(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("updates only the targeted lesson and is idempotent", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}
		id := store.lessons[0].ID.Hex()

		c, rec := request(t, http.MethodPut, "/lessons/"+id, `{"spaces":3}`)
		setParam(c, id)
		if err := h.UpdateSpaces(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp UpdateSpacesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || resp.ModifiedCount != 1 || resp.LessonID != id || resp.NewSpaces != 3 {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if store.lessons[0].Spaces != 3 {
			t.Fatalf("spaces not updated: %d", store.lessons[0].Spaces)
		}
		for _, l := range store.lessons[1:] {
			if l.Spaces != 5 {
				t.Fatalf("other lesson touched: %+v", l)
			}
		}

		// Repeating the call leaves the same final state.
		c2, rec2 := request(t, http.MethodPut, "/lessons/"+id, `{"spaces":3}`)
		setParam(c2, id)
		if err := h.UpdateSpaces(c2); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec2.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec2.Code)
		}
		if store.lessons[0].Spaces != 3 {
			t.Fatalf("second call changed state: %d", store.lessons[0].Spaces)
		}
	})

	t.Run("unknown id reports success with zero modified", func(t *testing.T) {
		store := newFakeLessonStore()
		h := &BookingHandler{Lessons: store}
		id := primitive.NewObjectID().Hex()

		c, rec := request(t, http.MethodPut, "/lessons/"+id, `{"spaces":3}`)
		setParam(c, id)
		if err := h.UpdateSpaces(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp UpdateSpacesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || resp.ModifiedCount != 0 {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("returns a fresh id per order", func(t *testing.T) {
		store := &fakeOrderStore{}
		h := &BookingHandler{Orders: store}

		seen := map[string]bool{}
		for i := 0; i < 3; i++ {
			c, rec := request(t, http.MethodPost, "/orders", `{"name":"Alex","lessonIds":["a"],"quantity":1}`)
			if err := h.PlaceOrder(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp OrderResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !resp.Success || resp.OrderID == "" {
				t.Fatalf("unexpected response: %+v", resp)
			}
			if seen[resp.OrderID] {
				t.Fatalf("order id %s repeated", resp.OrderID)
			}
			seen[resp.OrderID] = true
		}
		if len(store.payloads) != 3 {
			t.Fatalf("expected 3 stored payloads, got %d", len(store.payloads))
		}
		if store.payloads[0]["name"] != "Alex" {
			t.Fatalf("payload not passed verbatim: %+v", store.payloads[0])
		}
	})

	t.Run("publishes an event after a successful insert", func(t *testing.T) {
		var published []queue.OrderConfirmedEvent
		h := &BookingHandler{
			Orders: &fakeOrderStore{},
			Publish: func(_ context.Context, ev queue.OrderConfirmedEvent) error {
				published = append(published, ev)
				return nil
			},
		}

		c, rec := request(t, http.MethodPost, "/orders", `{"quantity":2}`)
		if err := h.PlaceOrder(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].OrderID == "" || published[0].Status != "confirmed" {
			t.Fatalf("unexpected event: %+v", published[0])
		}
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		h := &BookingHandler{
			Orders: &fakeOrderStore{},
			Publish: func(context.Context, queue.OrderConfirmedEvent) error {
				return errors.New("broker down")
			},
		}

		c, rec := request(t, http.MethodPost, "/orders", `{"quantity":1}`)
		if err := h.PlaceOrder(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("store fault maps to 500", func(t *testing.T) {
		h := &BookingHandler{Orders: &fakeOrderStore{failWith: errors.New("write concern")}}

		c, rec := request(t, http.MethodPost, "/orders", `{"quantity":1}`)
		if err := h.PlaceOrder(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("non-object body maps to 400", func(t *testing.T) {
		h := &BookingHandler{Orders: &fakeOrderStore{}}

		c, rec := request(t, http.MethodPost, "/orders", `[1,2,3]`)
		if err := h.PlaceOrder(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	t.Run("no connection is unhealthy", func(t *testing.T) {
		h := &BookingHandler{}

		c, rec := request(t, http.MethodGet, "/health", "")
		if err := h.Health(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		var resp HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Status != "unhealthy" || resp.Database != "disconnected" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("failed ping is unhealthy with the probe error", func(t *testing.T) {
		h := &BookingHandler{Store: &fakePinger{err: errors.New("no reachable servers")}}

		c, rec := request(t, http.MethodGet, "/health", "")
		if err := h.Health(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		var resp HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Status != "unhealthy" || resp.Error == "" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("successful ping is healthy", func(t *testing.T) {
		h := &BookingHandler{Store: &fakePinger{}}

		c, rec := request(t, http.MethodGet, "/health", "")
		if err := h.Health(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Status != "healthy" || resp.Database != "connected" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
}

func TestRoot(t *testing.T) {
	for _, tc := range []struct {
		name  string
		store Pinger
		want  string
	}{
		{"connected", &fakePinger{}, "connected"},
		{"disconnected", nil, "disconnected"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := &BookingHandler{Store: tc.store}

			c, rec := request(t, http.MethodGet, "/", "")
			if err := h.Root(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp BannerResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != "running" || resp.Database != tc.want {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}
