package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/handlers"
)

type stubRoomsRepo struct {
	rooms      map[string]*domain.Room
	categories []string
}

func newStubRoomsRepo() *stubRoomsRepo {
	return &stubRoomsRepo{rooms: map[string]*domain.Room{}}
}

func (s *stubRoomsRepo) Insert(_ context.Context, in *domain.RoomCreateReq) (*domain.Room, error) {
	m := &domain.Room{ID: "room-new", Title: in.Title, Category: in.Category, Price: in.Price, Host: in.Host}
	s.rooms[m.ID] = m
	return m, nil
}

func (s *stubRoomsRepo) List(_ context.Context, category string) ([]domain.Room, error) {
	s.categories = append(s.categories, category)
	out := []domain.Room{}
	for _, m := range s.rooms {
		if category == "" || m.Category == category {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubRoomsRepo) ListByHost(_ context.Context, hostEmail string) ([]domain.Room, error) {
	out := []domain.Room{}
	for _, m := range s.rooms {
		if m.Host.Email == hostEmail {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubRoomsRepo) GetByID(_ context.Context, id string) (*domain.Room, error) {
	return s.rooms[id], nil
}

func (s *stubRoomsRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.rooms[id]; !ok {
		return false, nil
	}
	delete(s.rooms, id)
	return true, nil
}

func (s *stubRoomsRepo) SetBooked(_ context.Context, id string, booked bool) (bool, error) {
	m, ok := s.rooms[id]
	if !ok {
		return false, nil
	}
	m.Booked = booked
	return true, nil
}

func (s *stubRoomsRepo) Count(context.Context) (int64, error) {
	return int64(len(s.rooms)), nil
}

func (s *stubRoomsRepo) CountByHost(_ context.Context, hostEmail string) (int64, error) {
	var n int64
	for _, m := range s.rooms {
		if m.Host.Email == hostEmail {
			n++
		}
	}
	return n, nil
}

func newRoomsRouter(repo *stubRoomsRepo) *chi.Mux {
	h := handlers.NewRoomsHandler(repo)
	r := chi.NewRouter()
	r.Get("/rooms", h.List)
	r.Post("/room", h.Create)
	r.Get("/my-listings/{email}", h.MyListings)
	r.Get("/room/{id}", h.Get)
	r.Delete("/room/{id}", h.Delete)
	return r
}

func TestListTreatsNullCategoryAsNoFilter(t *testing.T) {
	repo := newStubRoomsRepo()
	repo.rooms["a"] = &domain.Room{ID: "a", Category: "Cabins"}
	repo.rooms["b"] = &domain.Room{ID: "b", Category: "Beachfront"}
	r := newRoomsRouter(repo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/rooms?category=null", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []domain.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("rooms = %d, literal \"null\" means unfiltered", len(got))
	}
	if repo.categories[0] != "" {
		t.Errorf("filter passed through = %q", repo.categories[0])
	}
}

func TestListFiltersByCategory(t *testing.T) {
	repo := newStubRoomsRepo()
	repo.rooms["a"] = &domain.Room{ID: "a", Category: "Cabins"}
	repo.rooms["b"] = &domain.Room{ID: "b", Category: "Beachfront"}
	r := newRoomsRouter(repo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/rooms?category=Cabins", nil))

	var got []domain.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Cabins" {
		t.Errorf("got %v", got)
	}
}

func TestCreateRoomValidation(t *testing.T) {
	r := newRoomsRouter(newStubRoomsRepo())

	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"title":"Loft","category":"Cabins","price":90,"host":{"email":"hank@example.com"}}`, http.StatusCreated},
		{"no title", `{"category":"Cabins","price":90,"host":{"email":"hank@example.com"}}`, http.StatusBadRequest},
		{"zero price", `{"title":"Loft","category":"Cabins","price":0,"host":{"email":"hank@example.com"}}`, http.StatusBadRequest},
		{"bad host email", `{"title":"Loft","category":"Cabins","price":90,"host":{"email":"nope"}}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest("POST", "/room", strings.NewReader(tc.body)))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestGetRoomNotFound(t *testing.T) {
	r := newRoomsRouter(newStubRoomsRepo())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/room/ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteRoom(t *testing.T) {
	repo := newStubRoomsRepo()
	repo.rooms["a"] = &domain.Room{ID: "a"}
	r := newRoomsRouter(repo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", "/room/a", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", "/room/a", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
