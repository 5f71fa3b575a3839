package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"testing"

	"achievediary/internal/achievement"
)

// fakeBackend is an in-memory stand-in for the diary backend.
type fakeBackend struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]fakeRecord
	users   map[int64]userBody
	queries []url.Values
	headers []http.Header

	awards []Award
	stats  Stats
	level  *int
}

type fakeRecord struct {
	owner int64
	ach   achievement.Achievement
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		nextID:  1,
		records: make(map[int64]fakeRecord),
		users:   make(map[int64]userBody),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/achievements", fb.list)
	mux.HandleFunc("POST /api/achievements", fb.create)
	mux.HandleFunc("GET /api/achievements/{id}", fb.get)
	mux.HandleFunc("PATCH /api/achievements/{id}", fb.update)
	mux.HandleFunc("DELETE /api/achievements/{id}", fb.remove)
	mux.HandleFunc("GET /api/awards", fb.listAwards)
	mux.HandleFunc("GET /api/awards/stats", fb.getStats)
	mux.HandleFunc("GET /api/awards/level", fb.getLevel)
	mux.HandleFunc("POST /api/auth/vk-user", fb.upsertUser)
	mux.HandleFunc("GET /api/auth/vk-user/{id}/exists", fb.userExists)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.queries = append(fb.queries, r.URL.Query())
		fb.headers = append(fb.headers, r.Header.Clone())
		fb.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) lastQuery() url.Values {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.queries) == 0 {
		return nil
	}
	return fb.queries[len(fb.queries)-1]
}

func (fb *fakeBackend) requestCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.queries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func userParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	return id, err == nil && id > 0
}

func (fb *fakeBackend) list(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "userId required"})
		return
	}
	category := r.URL.Query().Get("category")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = DefaultPageSize
	}

	fb.mu.Lock()
	var matched []achievement.Achievement
	for _, rec := range fb.records {
		if rec.owner != user {
			continue
		}
		if category != "" && string(rec.ach.Category) != category {
			continue
		}
		matched = append(matched, rec.ach)
	}
	fb.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	totalPages := (len(matched) + size - 1) / size
	start := page * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"content":       matched[start:end],
		"totalPages":    totalPages,
		"totalElements": len(matched),
	})
}

func (fb *fakeBackend) create(w http.ResponseWriter, r *http.Request) {
	var body achievementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad body"})
		return
	}
	if body.Title == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "title must not be blank"})
		return
	}
	fb.mu.Lock()
	id := fb.nextID
	fb.nextID++
	a := achievement.Achievement{
		ID:          id,
		Title:       body.Title,
		Category:    achievement.Category(body.Category),
		Date:        body.Date,
		Description: body.Description,
	}
	fb.records[id] = fakeRecord{owner: body.UserID, ach: a}
	fb.mu.Unlock()
	writeJSON(w, http.StatusCreated, a)
}

func (fb *fakeBackend) lookup(w http.ResponseWriter, r *http.Request, user int64) (int64, fakeRecord, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad id"})
		return 0, fakeRecord{}, false
	}
	fb.mu.Lock()
	rec, ok := fb.records[id]
	fb.mu.Unlock()
	if !ok || rec.owner != user {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "achievement not found"})
		return 0, fakeRecord{}, false
	}
	return id, rec, true
}

func (fb *fakeBackend) get(w http.ResponseWriter, r *http.Request) {
	user, _ := userParam(r)
	if _, rec, ok := fb.lookup(w, r, user); ok {
		writeJSON(w, http.StatusOK, rec.ach)
	}
}

func (fb *fakeBackend) update(w http.ResponseWriter, r *http.Request) {
	var body achievementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad body"})
		return
	}
	id, rec, ok := fb.lookup(w, r, body.UserID)
	if !ok {
		return
	}
	rec.ach.Title = body.Title
	rec.ach.Category = achievement.Category(body.Category)
	rec.ach.Date = body.Date
	rec.ach.Description = body.Description
	fb.mu.Lock()
	fb.records[id] = rec
	fb.mu.Unlock()
	writeJSON(w, http.StatusOK, rec.ach)
}

func (fb *fakeBackend) remove(w http.ResponseWriter, r *http.Request) {
	user, _ := userParam(r)
	id, _, ok := fb.lookup(w, r, user)
	if !ok {
		return
	}
	fb.mu.Lock()
	delete(fb.records, id)
	fb.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (fb *fakeBackend) listAwards(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, http.StatusOK, fb.awards)
}

func (fb *fakeBackend) getStats(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, http.StatusOK, fb.stats)
}

func (fb *fakeBackend) getLevel(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, http.StatusOK, levelBody{Level: fb.level})
}

func (fb *fakeBackend) upsertUser(w http.ResponseWriter, r *http.Request) {
	var body userBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad body"})
		return
	}
	fb.mu.Lock()
	fb.users[body.VKID] = body
	fb.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (fb *fakeBackend) userExists(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	fb.mu.Lock()
	_, ok := fb.users[id]
	fb.mu.Unlock()
	writeJSON(w, http.StatusOK, existsBody{Exists: ok})
}
