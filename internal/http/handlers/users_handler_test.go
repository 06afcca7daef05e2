package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/handlers"
	"github.com/brightstay/brightstay-api/internal/service"
)

type stubUserService struct {
	users   map[string]*domain.User
	updates []string
}

func newStubUserService() *stubUserService {
	return &stubUserService{users: map[string]*domain.User{}}
}

func (s *stubUserService) Upsert(_ context.Context, req *domain.UserUpsertReq) (*domain.User, service.UpsertOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	if existing, ok := s.users[req.Email]; ok {
		if req.Status == domain.StatusRequested {
			existing.Status = domain.StatusRequested
			return existing, service.OutcomeStatusUpdated, nil
		}
		return existing, service.OutcomeUnchanged, nil
	}
	u := &domain.User{Email: req.Email, Name: req.Name, Role: req.Role, Status: req.Status, CreatedAt: time.Now()}
	s.users[req.Email] = u
	return u, service.OutcomeCreated, nil
}

func (s *stubUserService) Update(_ context.Context, email string, req *domain.UserUpdateReq) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}
	u, ok := s.users[domain.NormalizeEmail(email)]
	if !ok {
		return false, nil
	}
	u.Role = req.Role
	u.Status = req.Status
	s.updates = append(s.updates, u.Email)
	return true, nil
}

func (s *stubUserService) Get(_ context.Context, email string) (*domain.User, error) {
	return s.users[domain.NormalizeEmail(email)], nil
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func newUsersRouter(svc service.UserService) *chi.Mux {
	h := handlers.NewUsersHandler(svc)
	r := chi.NewRouter()
	r.Put("/user", h.Upsert)
	r.Get("/user/{email}", h.Get)
	r.Get("/users", h.List)
	r.Patch("/users/update/{email}", h.Update)
	return r
}

func putUser(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/user", strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpsertNewUserReturns201(t *testing.T) {
	svc := newStubUserService()
	r := newUsersRouter(svc)

	rec := putUser(t, r, `{"email":"New@Example.com","name":"Nia"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.users["new@example.com"] == nil {
		t.Error("user not stored under normalized email")
	}
}

func TestUpsertExistingRequestedReturns200(t *testing.T) {
	svc := newStubUserService()
	svc.users["gina@example.com"] = &domain.User{Email: "gina@example.com", Name: "Gina", Role: domain.RoleGuest, Status: "Verified"}
	r := newUsersRouter(svc)

	rec := putUser(t, r, `{"email":"gina@example.com","name":"Overwritten","status":"Requested"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	stored := svc.users["gina@example.com"]
	if stored.Status != domain.StatusRequested {
		t.Errorf("status = %q, want Requested", stored.Status)
	}
	if stored.Name != "Gina" {
		t.Errorf("name = %q, only status may change on a repeat save", stored.Name)
	}
}

func TestUpsertExistingUnchanged(t *testing.T) {
	svc := newStubUserService()
	svc.users["gina@example.com"] = &domain.User{Email: "gina@example.com", Name: "Gina", Role: domain.RoleHost}
	r := newUsersRouter(svc)

	rec := putUser(t, r, `{"email":"gina@example.com","name":"Other","role":"guest"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Role != domain.RoleHost {
		t.Errorf("role = %q, stored record wins over the posted one", got.Role)
	}
}

func TestUpsertRejectsInvalidEmail(t *testing.T) {
	rec := putUser(t, newUsersRouter(newStubUserService()), `{"email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetUserNotFound(t *testing.T) {
	r := newUsersRouter(newStubUserService())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/user/ghost@example.com", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateRolePromotion(t *testing.T) {
	svc := newStubUserService()
	svc.users["gina@example.com"] = &domain.User{Email: "gina@example.com", Role: domain.RoleGuest}
	r := newUsersRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/users/update/gina@example.com",
		bytes.NewReader([]byte(`{"role":"host","status":"Verified"}`)))
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.users["gina@example.com"].Role != domain.RoleHost {
		t.Error("role not promoted")
	}
}

func TestUpdateUnknownRole(t *testing.T) {
	r := newUsersRouter(newStubUserService())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/users/update/gina@example.com",
		bytes.NewReader([]byte(`{"role":"superuser"}`)))
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	r := newUsersRouter(newStubUserService())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/users/update/ghost@example.com",
		bytes.NewReader([]byte(`{"role":"host"}`)))
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
