// Tests for the root model: key routing, navigation and panel scoping.
package app

import (
	"testing"

	"achievediary/internal/router"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// KEY ROUTING
// =============================================================================

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestUpdate_QuitFromBrowsingPanel(t *testing.T) {
	m, _ := NewTestModel(t)
	m = start(t, m)

	_, cmd := sendNoRun(t, m, keyRunes("q"))
	assert.True(t, isQuit(cmd), "q should quit outside of forms")
}

func TestUpdate_QuitKeyTypedIntoForm(t *testing.T) {
	m, _ := NewTestModel(t, WithStart("/create"))
	m = start(t, m)

	m, cmd := sendNoRun(t, m, keyRunes("q"))
	assert.False(t, isQuit(cmd), "q must be typed into the focused field")

	form := m.active.(createPanel).view.fields()
	assert.Equal(t, "q", form.Title)
}

func TestUpdate_CtrlCAlwaysQuits(t *testing.T) {
	m, _ := NewTestModel(t, WithStart("/create"))
	m = start(t, m)

	m, cmd := sendNoRun(t, m, keyType(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View(), "view is blank once quitting")
}

func TestUpdate_HelpToggle(t *testing.T) {
	m, _ := NewTestModel(t)
	m = start(t, m)

	m = send(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	m = send(t, m, keyRunes("?"))
	assert.False(t, m.showHelp)
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := NewTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := next.(Model)

	if result.width != 120 {
		t.Errorf("Expected width 120, got %d", result.width)
	}
	if result.height != 40 {
		t.Errorf("Expected height 40, got %d", result.height)
	}
}

func TestUpdate_WindowSize_Zero(t *testing.T) {
	m, _ := NewTestModel(t, WithStart("/achievements"))
	m = start(t, m)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Panic on zero window size: %v", r)
		}
	}()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
	_ = next.(Model).View()
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNavigation_MenuPushesAndBackPops(t *testing.T) {
	m, _ := NewTestModel(t)
	m = start(t, m)

	m = send(t, m, keyRunes("a"))
	require.Equal(t, router.Awards, m.Location().Panel)
	assert.Equal(t, 2, m.router.Depth())

	m = send(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, router.Home, m.Location().Panel)
	assert.Equal(t, 1, m.router.Depth())
}

func TestNavigation_BackAtRootStays(t *testing.T) {
	m, _ := NewTestModel(t, WithStart("/awards"))
	m = start(t, m)

	m = send(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, router.Awards, m.Location().Panel)
	assert.Equal(t, 1, m.router.Depth())
}

func TestNavigation_UnknownStartFallsBackHome(t *testing.T) {
	m, _ := NewTestModel(t, WithStart("/no/such/place"))
	assert.Equal(t, router.Home, m.Location().Panel)
	_, ok := m.active.(homePanel)
	assert.True(t, ok)
}

func TestNavigation_EachActivationIsANewInstance(t *testing.T) {
	m, _ := NewTestModel(t)
	m = start(t, m)
	first := m.panelID

	m = send(t, m, keyRunes("l"))
	m = send(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, first+2, m.panelID)
}

// =============================================================================
// PANEL SCOPING
// =============================================================================

func TestScoping_ResultForInactivePanelDropped(t *testing.T) {
	svc := NewMockService()
	svc.Seed(testUserID, "Old result", "study")
	m, _ := NewTestModel(t, WithService(svc))
	m = start(t, m)

	// Open the list but hold its fetch.
	m, cmd := sendNoRun(t, m, keyRunes("l"))
	nav := runCmd(cmd)
	require.Len(t, nav, 1)
	m, listInit := sendNoRun(t, m, nav[0])
	require.Equal(t, router.Achievements, m.Location().Panel)

	// Leave before the response arrives.
	m = send(t, m, keyType(tea.KeyEsc))
	require.Equal(t, router.Home, m.Location().Panel)

	late := runCmd(listInit)
	require.Len(t, late, 1)
	next, follow := m.Update(late[0])
	m = next.(Model)

	assert.Nil(t, follow)
	assert.Equal(t, router.Home, m.Location().Panel)
	_, ok := m.active.(homePanel)
	assert.True(t, ok, "late list result must not disturb the home panel")
	assert.Equal(t, 1, svc.CallCount("ListAchievements"))
}

func TestScope_PassesQuitThrough(t *testing.T) {
	msg := scope(7, tea.Quit)()
	_, ok := msg.(tea.QuitMsg)
	assert.True(t, ok)
}

func TestScope_TagsBatchMembers(t *testing.T) {
	a := func() tea.Msg { return pageMsg{gen: 1} }
	b := func() tea.Msg { return progressMsg{gen: 2} }

	batch, ok := scope(3, tea.Batch(a, b))().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	for _, c := range batch {
		sm, ok := c().(scopedMsg)
		require.True(t, ok)
		assert.Equal(t, uint64(3), sm.panel)
	}
}

func TestScope_NilCmd(t *testing.T) {
	assert.Nil(t, scope(1, nil))
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_HeaderShowsPanelAndUser(t *testing.T) {
	m, _ := NewTestModel(t)
	m = start(t, m)
	viewContains(t, m, "Achievements diary · Home")
	viewContains(t, m, "Anna Petrova")
}
