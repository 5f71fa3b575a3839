// Test utilities for the app package: an in-memory backend, a configurable
// model constructor and helpers that drive Update the way the runtime does.
package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/api"
	"achievediary/internal/identity"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MOCK SERVICE
// =============================================================================

// MockService is an in-memory api.Service that records every call.
type MockService struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]achievement.Achievement
	owners  map[int64]int64
	calls   []string
	errs    map[string]error

	lastQuery   api.ListQuery
	lastFields  achievement.Fields
	awards      []api.Award
	stats       api.Stats
	level       int
	upsertedIDs []int64
}

// NewMockService creates an empty backend.
func NewMockService() *MockService {
	return &MockService{
		nextID:  1,
		records: make(map[int64]achievement.Achievement),
		owners:  make(map[int64]int64),
		errs:    make(map[string]error),
		level:   1,
	}
}

// Seed stores a record owned by userID and returns its id.
func (s *MockService) Seed(userID int64, title string, cat achievement.Category) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.records[id] = achievement.Achievement{
		ID:          id,
		Title:       title,
		Category:    cat,
		Date:        "2024-01-10",
		Description: "About " + title,
	}
	s.owners[id] = userID
	return id
}

// FailOn makes the named method return err.
func (s *MockService) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[method] = err
}

// Calls returns the recorded method names.
func (s *MockService) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount counts calls to method.
func (s *MockService) CallCount(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

func (s *MockService) record(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, method)
	return s.errs[method]
}

func (s *MockService) ListAchievements(_ context.Context, q api.ListQuery) (*api.Page, error) {
	if err := s.record("ListAchievements"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q

	var matched []achievement.Achievement
	for id, a := range s.records {
		if s.owners[id] != q.UserID {
			continue
		}
		if q.Category != "" && q.Category != achievement.FilterAll && string(a.Category) != q.Category {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	size := q.Size
	if size <= 0 {
		size = api.DefaultPageSize
	}
	start := q.Page * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return &api.Page{
		Content:       append([]achievement.Achievement{}, matched[start:end]...),
		TotalPages:    (len(matched) + size - 1) / size,
		TotalElements: len(matched),
	}, nil
}

func (s *MockService) GetAchievement(_ context.Context, id, userID int64) (*achievement.Achievement, error) {
	if err := s.record("GetAchievement"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.records[id]
	if !ok || s.owners[id] != userID {
		return nil, &api.Error{Kind: api.KindNotFound, Status: 404}
	}
	return &a, nil
}

func (s *MockService) CreateAchievement(_ context.Context, userID int64, f achievement.Fields) (*achievement.Achievement, error) {
	if err := s.record("CreateAchievement"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFields = f
	id := s.nextID
	s.nextID++
	a := achievement.Achievement{ID: id, Title: f.Title, Category: f.Category, Date: f.Date, Description: f.Description}
	s.records[id] = a
	s.owners[id] = userID
	return &a, nil
}

func (s *MockService) UpdateAchievement(_ context.Context, id, userID int64, f achievement.Fields) (*achievement.Achievement, error) {
	if err := s.record("UpdateAchievement"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFields = f
	if _, ok := s.records[id]; !ok || s.owners[id] != userID {
		return nil, &api.Error{Kind: api.KindNotFound, Status: 404}
	}
	a := achievement.Achievement{ID: id, Title: f.Title, Category: f.Category, Date: f.Date, Description: f.Description}
	s.records[id] = a
	return &a, nil
}

func (s *MockService) DeleteAchievement(_ context.Context, id, userID int64) error {
	if err := s.record("DeleteAchievement"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok || s.owners[id] != userID {
		return &api.Error{Kind: api.KindNotFound, Status: 404}
	}
	delete(s.records, id)
	delete(s.owners, id)
	return nil
}

func (s *MockService) ListAwards(context.Context, int64) ([]api.Award, error) {
	if err := s.record("ListAwards"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Award{}, s.awards...), nil
}

func (s *MockService) AwardStats(context.Context, int64) (*api.Stats, error) {
	if err := s.record("AwardStats"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	return &st, nil
}

func (s *MockService) Level(context.Context, int64) (int, error) {
	if err := s.record("Level"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level, nil
}

func (s *MockService) UpsertUser(_ context.Context, id *identity.Identity) error {
	if err := s.record("UpsertUser"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertedIDs = append(s.upsertedIDs, id.ID)
	return nil
}

func (s *MockService) UserExists(_ context.Context, userID int64) (bool, error) {
	if err := s.record("UserExists"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.upsertedIDs {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

var _ api.Service = (*MockService)(nil)

// =============================================================================
// TEST MODEL FACTORY
// =============================================================================

const testUserID = 42

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testModelConfig struct {
	start    string
	identity *identity.Identity
	service  *MockService
	pageSize int
}

// TestModelOption configures NewTestModel.
type TestModelOption func(*testModelConfig)

// WithStart sets the initial route.
func WithStart(path string) TestModelOption {
	return func(c *testModelConfig) { c.start = path }
}

// WithoutIdentity runs the model with no session user.
func WithoutIdentity() TestModelOption {
	return func(c *testModelConfig) { c.identity = nil }
}

// WithService uses svc as the backend.
func WithService(svc *MockService) TestModelOption {
	return func(c *testModelConfig) { c.service = svc }
}

// WithPageSize sets the list page size.
func WithPageSize(n int) TestModelOption {
	return func(c *testModelConfig) { c.pageSize = n }
}

// NewTestModel creates a root model wired to an in-memory backend and runs
// nothing yet; call start to execute Init.
func NewTestModel(t *testing.T, opts ...TestModelOption) (Model, *MockService) {
	t.Helper()
	cfg := &testModelConfig{
		start:    "/",
		identity: &identity.Identity{ID: testUserID, FirstName: "Anna", LastName: "Petrova", City: "Kazan"},
		service:  NewMockService(),
		pageSize: 10,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	deps := Deps{
		Service:  cfg.service,
		Identity: cfg.identity,
		PageSize: cfg.pageSize,
		Styles:   ui.NewStyles(ui.LightTheme()),
		Now:      func() time.Time { return testNow },
	}
	return New(deps, cfg.start), cfg.service
}

// =============================================================================
// DRIVING HELPERS
// =============================================================================

// start runs Init and every message it leads to.
func start(t *testing.T, m Model) Model {
	t.Helper()
	return settle(t, m, m.Init())
}

// send delivers msg and runs the resulting commands to completion.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return settle(t, next.(Model), cmd)
}

// sendNoRun delivers msg and returns the command without running it.
func sendNoRun(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// settle runs cmd, feeds the messages it produces back into the model and
// repeats until nothing is left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("model did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		next, c := m.Update(msg)
		m = next.(Model)
		queue = append(queue, runCmd(c)...)
	}
	return m
}

// cmdDeadline bounds a single command. Backend calls against the mock
// return immediately; timers such as cursor blinks do not and are abandoned.
const cmdDeadline = 200 * time.Millisecond

// runCmd executes cmd and returns the messages worth feeding back:
// navigation and backend results. Spinner ticks and cursor blinks are
// dropped so the model settles.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdDeadline):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if relevant(msg) {
		return []tea.Msg{msg}
	}
	return nil
}

func relevant(msg tea.Msg) bool {
	if s, ok := msg.(scopedMsg); ok {
		msg = s.msg
	}
	switch msg.(type) {
	case navigateMsg, registeredMsg, createdMsg, loadedMsg, savedMsg, deletedMsg, pageMsg, progressMsg:
		return true
	}
	return false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// typeText sends s as one rune burst, the way a paste arrives.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return send(t, m, keyRunes(s))
}

func viewContains(t *testing.T, m Model, want string) {
	t.Helper()
	if v := m.View(); !strings.Contains(v, want) {
		t.Errorf("view missing %q:\n%s", want, v)
	}
}

func viewLacks(t *testing.T, m Model, unwanted string) {
	t.Helper()
	if v := m.View(); strings.Contains(v, unwanted) {
		t.Errorf("view should not contain %q:\n%s", unwanted, v)
	}
}
