package tui_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/poshtheme/internal/app/tui"
	"github.com/vburojevic/poshtheme/internal/app/tui/palette"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("theme-%02d", i)
	}
	return out
}

func newMenu(n int) *tui.Model {
	return tui.NewModel(tui.Options{
		Title:    "Pick a theme",
		PageSize: 10,
		Paginate: true,
		Styles:   palette.PlainStyles(),
	}, labels(n))
}

func press(t *testing.T, m *tui.Model, keys ...tea.KeyMsg) (*tui.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(k)
		next, ok := updated.(*tui.Model)
		require.True(t, ok)
		m = next
	}
	return m, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyPgDn  = tea.KeyMsg{Type: tea.KeyPgDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InitialRender(t *testing.T) {
	t.Parallel()

	m := newMenu(3)
	view := m.View()
	assert.Contains(t, view, "Pick a theme")
	assert.Contains(t, view, "▶ theme-00")
	assert.Contains(t, view, "  theme-01")
	assert.Contains(t, view, "enter")
	assert.Equal(t, tui.Pending, m.Outcome())
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	t.Run("down then enter selects the second item", func(t *testing.T) {
		t.Parallel()

		m, cmd := press(t, newMenu(5), keyDown, keyEnter)
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)

		idx, ok := m.Choice()
		require.True(t, ok)
		assert.Equal(t, 1, idx)
		assert.Equal(t, tui.Selected, m.Outcome())
	})

	t.Run("up at the top is clamped", func(t *testing.T) {
		t.Parallel()

		m, _ := press(t, newMenu(5), keyUp, keyUp)
		assert.Equal(t, 0, m.State().Index())
	})

	t.Run("vim keys move too", func(t *testing.T) {
		t.Parallel()

		m, _ := press(t, newMenu(5), runes("j"), runes("j"), runes("k"))
		assert.Equal(t, 1, m.State().Index())
	})

	t.Run("right arrow jumps to the next page", func(t *testing.T) {
		t.Parallel()

		m, _ := press(t, newMenu(25), keyDown, keyRight)
		assert.Equal(t, 10, m.State().Index())
		assert.Contains(t, m.View(), "▶ theme-10")
		assert.Contains(t, m.View(), "page 2/3")

		m, _ = press(t, m, keyPgDn, keyPgDn)
		assert.Equal(t, 20, m.State().Index())

		m, _ = press(t, m, keyLeft)
		assert.Equal(t, 10, m.State().Index())
	})

	t.Run("end and home", func(t *testing.T) {
		t.Parallel()

		m, _ := press(t, newMenu(25), runes("G"))
		assert.Equal(t, 24, m.State().Index())
		m, _ = press(t, m, runes("g"))
		assert.Equal(t, 0, m.State().Index())
	})
}

func TestModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, k := range []tea.KeyMsg{keyEsc, runes("q"), runes("Q"), {Type: tea.KeyCtrlC}} {
		m, cmd := press(t, newMenu(25), keyDown, keyRight, k)
		require.NotNil(t, cmd, "key %q", k.String())
		idx, ok := m.Choice()
		assert.False(t, ok)
		assert.Equal(t, -1, idx)
		assert.Equal(t, tui.Cancelled, m.Outcome())
		assert.Empty(t, m.View())
	}
}

func TestModel_KeysIgnoredAfterTerminalState(t *testing.T) {
	t.Parallel()

	m, _ := press(t, newMenu(5), keyDown, keyEnter, keyDown, keyEsc)
	idx, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestModel_ConstantFootprint(t *testing.T) {
	t.Parallel()

	m := newMenu(25)
	first := strings.Count(m.View(), "\n")

	m, _ = press(t, m, keyRight, keyRight)
	require.Equal(t, 2, m.State().Page())
	last := strings.Count(m.View(), "\n")

	assert.Equal(t, first, last, "last page is padded to the same height")
	assert.NotContains(t, m.View(), "theme-19")
	assert.Contains(t, m.View(), "theme-24")
}

func TestModel_SinglePageHidesPageHint(t *testing.T) {
	t.Parallel()

	m := newMenu(4)
	view := m.View()
	assert.NotContains(t, view, "page")
	assert.Contains(t, view, "4 items")
	assert.Contains(t, view, "•", "page indicator is shown on a single page too")
	assert.NotContains(t, view, "○")
}

func TestModel_HelpToggle(t *testing.T) {
	t.Parallel()

	m := newMenu(25)
	assert.Contains(t, m.View(), "more keys")
	assert.NotContains(t, m.View(), "last")

	m, cmd := press(t, m, runes("?"))
	assert.Nil(t, cmd)
	assert.Equal(t, tui.Pending, m.Outcome())
	assert.Contains(t, m.View(), "last")
	assert.Contains(t, m.View(), "next page")

	m, _ = press(t, m, runes("?"))
	assert.NotContains(t, m.View(), "last")
}

func TestModel_TruncatesToWidth(t *testing.T) {
	t.Parallel()

	m := tui.NewModel(tui.Options{Styles: palette.PlainStyles()}, []string{strings.Repeat("x", 60)})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	view := updated.(*tui.Model).View()
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, strings.Repeat("x", 20))
}

func TestRun_EmptyReturnsImmediately(t *testing.T) {
	t.Parallel()

	idx, ok, err := tui.Run(tui.Options{}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestModel_Program(t *testing.T) {
	t.Parallel()

	t.Run("select on the second page", func(t *testing.T) {
		t.Parallel()

		tm := teatest.NewTestModel(t, newMenu(25), teatest.WithInitialTermSize(80, 24))

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("theme-00"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(keyRight)
		tm.Send(keyDown)
		tm.Send(keyEnter)

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(*tui.Model)
		require.True(t, ok)
		idx, ok := final.Choice()
		require.True(t, ok)
		assert.Equal(t, 11, idx)
	})

	t.Run("escape cancels", func(t *testing.T) {
		t.Parallel()

		tm := teatest.NewTestModel(t, newMenu(3), teatest.WithInitialTermSize(80, 24))
		tm.Send(keyDown)
		tm.Send(keyEsc)

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(*tui.Model)
		require.True(t, ok)
		_, ok = final.Choice()
		assert.False(t, ok)
	})
}
