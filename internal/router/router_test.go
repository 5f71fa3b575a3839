package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		path string
		want  Location
	}{
		{"/", Location{Path: "/", Panel: Home}},
		{"", Location{Path: "/", Panel: Home}},
		{"/create", Location{Path: "/create", Panel: Create}},
		{"/create/", Location{Path: "/create", Panel: Create}},
		{"achievements", Location{Path: "/achievements", Panel: Achievements}},
		{"/achievements?page=2", Location{Path: "/achievements", Panel: Achievements}},
		{"/awards", Location{Path: "/awards", Panel: Awards}},
		{"/achievement/12", Location{Path: "/achievement/12", Panel: Achievement, Params: map[string]string{"id": "12"}}},
		{"/achievement/abc", Location{Path: "/achievement/abc", Panel: Achievement, Params: map[string]string{"id": "abc"}}},
		{"/achievement", Location{Path: "/", Panel: Home}},
		{"/achievement/1/extra", Location{Path: "/", Panel: Home}},
		{"/nowhere", Location{Path: "/", Panel: Home}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Match(tt.path)); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestPanelString(t *testing.T) {
	for _, r := range Routes {
		assert.NotEmpty(t, r.Panel.String())
	}
	assert.Equal(t, "achievement", Achievement.String())
}

func TestPushBackReplace(t *testing.T) {
	r := New("/")
	assert.Equal(t, Home, r.Current().Panel)

	r.Push("/achievements")
	r.Push("/achievement/4")
	assert.Equal(t, 3, r.Depth())
	assert.Equal(t, "4", r.Current().Param("id"))

	loc := r.Replace("/achievements")
	assert.Equal(t, Achievements, loc.Panel)
	assert.Equal(t, 3, r.Depth(), "replace keeps depth")

	loc, ok := r.Back()
	assert.True(t, ok)
	assert.Equal(t, Achievements, loc.Panel)

	loc, ok = r.Back()
	assert.True(t, ok)
	assert.Equal(t, Home, loc.Panel)
}

func TestBackAtRootIsNoop(t *testing.T) {
	r := New("/awards")
	loc, ok := r.Back()
	assert.False(t, ok)
	assert.Equal(t, Awards, loc.Panel)
	assert.Equal(t, 1, r.Depth())
}

func TestDeleteFlowLeavesNoDetailEntry(t *testing.T) {
	r := New("/")
	r.Push("/achievements")
	r.Push("/achievement/9")
	r.Replace("/achievements")

	for {
		loc, ok := r.Back()
		if !ok {
			break
		}
		assert.NotEqual(t, Achievement, loc.Panel)
	}
}
