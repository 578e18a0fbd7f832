package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vburojevic/poshtheme/internal/app/tui"
)

func TestMenuState_TotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		count int
		want  int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
		{30, 3},
	}
	for _, tc := range cases {
		s := tui.NewMenuState(tc.count, 10, true)
		assert.Equal(t, tc.want, s.TotalPages(), "count=%d", tc.count)
	}
}

func TestMenuState_MoveClampsWithoutWraparound(t *testing.T) {
	t.Parallel()

	s := tui.NewMenuState(25, 10, true)
	s = s.Move(-1)
	assert.Equal(t, 0, s.Index())

	for i := 0; i < 24; i++ {
		s = s.Move(1)
	}
	assert.Equal(t, 24, s.Index())
	assert.Equal(t, 2, s.Page())

	s = s.Move(1).Move(1)
	assert.Equal(t, 24, s.Index(), "down at the last item is a no-op")
}

func TestMenuState_MoveAcrossPageBoundary(t *testing.T) {
	t.Parallel()

	s := tui.NewMenuState(25, 10, true)
	for i := 0; i < 9; i++ {
		s = s.Move(1)
	}
	assert.Equal(t, 0, s.Page())
	s = s.Move(1)
	assert.Equal(t, 10, s.Index())
	assert.Equal(t, 1, s.Page())
	s = s.Move(-1)
	assert.Equal(t, 0, s.Page())
}

func TestMenuState_MovePage(t *testing.T) {
	t.Parallel()

	s := tui.NewMenuState(25, 10, true).Move(3)
	s = s.MovePage(1)
	assert.Equal(t, 10, s.Index(), "jumping lands on the first item of the page")
	s = s.MovePage(1)
	assert.Equal(t, 20, s.Index())
	s = s.Move(2).MovePage(1)
	assert.Equal(t, 22, s.Index(), "next page on the last page is a no-op")

	s = s.MovePage(-1)
	assert.Equal(t, 10, s.Index())
	s = s.MovePage(-5)
	assert.Equal(t, 0, s.Index())

	start, end := s.MovePage(2).Bounds()
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
}

func TestMenuState_WithoutPagination(t *testing.T) {
	t.Parallel()

	s := tui.NewMenuState(25, 10, false)
	assert.Equal(t, 1, s.TotalPages())
	assert.Equal(t, 25, s.PageSize())

	s = s.MovePage(1)
	assert.Equal(t, 0, s.Index(), "page keys do nothing without pagination")

	s = s.Last()
	assert.Equal(t, 24, s.Index())
	assert.Equal(t, 0, s.Page())
}

func TestMenuState_Empty(t *testing.T) {
	t.Parallel()

	s := tui.NewMenuState(0, 10, true)
	s = s.Move(1).Last().MovePage(1)
	assert.Equal(t, 0, s.Index())
	start, end := s.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestNewMenuState_DefaultsPageSize(t *testing.T) {
	t.Parallel()

	s := tui.NewMenuState(30, 0, true)
	assert.Equal(t, tui.DefaultPageSize, s.PageSize())
}
