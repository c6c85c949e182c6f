package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"inviteshare/models"

	"github.com/google/uuid"
)

// fakeBackend is an in-memory stand-in for the resource server, speaking the
// same flat-collection contract.
type fakeBackend struct {
	mu          sync.Mutex
	users       []models.User
	sessions    []models.Session
	invitations []models.Invitation
	requests    int
	failNext    int // respond 500 to this many upcoming requests
	srv         *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		result := []models.User{}
		email := r.URL.Query().Get("email")
		for _, u := range b.users {
			if email == "" || u.Email == email {
				result = append(result, u)
			}
		}
		writeJSON(w, http.StatusOK, result)
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u := models.User{}
		_ = json.NewDecoder(r.Body).Decode(&u)
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		b.users = append(b.users, u)
		writeJSON(w, http.StatusCreated, u)
	})

	mux.HandleFunc("GET /sessions", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, append([]models.Session{}, b.sessions...))
	})
	mux.HandleFunc("POST /sessions", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		s := models.Session{}
		_ = json.NewDecoder(r.Body).Decode(&s)
		b.sessions = append(b.sessions, s)
		writeJSON(w, http.StatusCreated, s)
	})
	mux.HandleFunc("DELETE /sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		for i, s := range b.sessions {
			if s.ID == id {
				b.sessions = append(b.sessions[:i], b.sessions[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"error": ""})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	mux.HandleFunc("GET /invitations", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		q := r.URL.Query()
		result := []models.Invitation{}
		for _, inv := range b.invitations {
			if v := q.Get("id"); v != "" && inv.ID != v {
				continue
			}
			if v := q.Get("owner"); v != "" && inv.Owner != v {
				continue
			}
			if v := q.Get("reviewer"); v != "" && inv.Reviewer != v {
				continue
			}
			result = append(result, inv)
		}
		writeJSON(w, http.StatusOK, result)
	})
	mux.HandleFunc("POST /invitations", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		inv := models.Invitation{}
		_ = json.NewDecoder(r.Body).Decode(&inv)
		if inv.ID == "" {
			inv.ID = uuid.NewString()
		}
		b.invitations = append(b.invitations, inv)
		writeJSON(w, http.StatusCreated, inv)
	})
	mux.HandleFunc("PUT /invitations/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		for i := range b.invitations {
			if b.invitations[i].ID == id {
				inv := models.Invitation{}
				_ = json.NewDecoder(r.Body).Decode(&inv)
				inv.ID = id
				b.invitations[i] = inv
				writeJSON(w, http.StatusOK, inv)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	mux.HandleFunc("DELETE /invitations/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		for i, inv := range b.invitations {
			if inv.ID == id {
				b.invitations = append(b.invitations[:i], b.invitations[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"error": ""})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests++
		fail := b.failNext > 0
		if fail {
			b.failNext--
		}
		b.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) client() *ResourceClient {
	return NewResourceClient(b.srv.URL, nil)
}

func (b *fakeBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

func (b *fakeBackend) failRequests(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = n
}

func (b *fakeBackend) invitationCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.invitations)
}

func (b *fakeBackend) sessionEmails() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	emails := []string{}
	for _, s := range b.sessions {
		emails = append(emails, s.Email)
	}
	return emails
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
