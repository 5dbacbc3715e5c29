package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/numtrace/internal/experiment"
)

func run(t *testing.T, cfg experiment.Config) *experiment.Result {
	t.Helper()
	exp := experiment.New(cfg)
	require.NoError(t, exp.Setup(experiment.NewRegistry()))
	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	return res
}

func press(b Browser, key tea.KeyMsg) (Browser, tea.Cmd) {
	m, cmd := b.Update(key)
	return m.(Browser), cmd
}

func TestBrowser_Navigation(t *testing.T) {
	res := run(t, experiment.Config{Method: "rk4", Function: "x + y", X0: 0, Y0: 1, H: 0.1, Xn: 0.5})
	b := NewBrowser(res, 6)
	require.Len(t, b.records, 6)

	b, _ = press(b, tea.KeyMsg{Type: tea.KeyRight})
	b, _ = press(b, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, b.Cursor())

	b, _ = press(b, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, b.Cursor())

	b, _ = press(b, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 5, b.Cursor())
	b, _ = press(b, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 5, b.Cursor())

	b, _ = press(b, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, b.Cursor())
	b, _ = press(b, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, b.Cursor())
}

func TestBrowser_Quit(t *testing.T) {
	res := run(t, experiment.Config{Method: "euler", Function: "y", X0: 0, Y0: 1, H: 0.5, Xn: 1})
	_, cmd := press(NewBrowser(res, 6), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowser_Playback(t *testing.T) {
	res := run(t, experiment.Config{Method: "euler", Function: "y", X0: 0, Y0: 1, H: 0.5, Xn: 1})
	b, cmd := press(NewBrowser(res, 6), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.NotNil(t, cmd)
	assert.True(t, b.playing)

	for i := 0; i < 5; i++ {
		m, _ := b.Update(tickMsg{})
		b = m.(Browser)
	}
	assert.Equal(t, 2, b.Cursor())
	assert.False(t, b.playing)
}

func TestBrowser_View(t *testing.T) {
	res := run(t, experiment.Config{Method: "newton", Function: "x**2 - 4", X0: 3, Tol: 1e-6, MaxIter: 100})
	b := NewBrowser(res, 6)

	view := b.View()
	assert.Contains(t, view, "newton")
	assert.Contains(t, view, "x**2 - 4")
	assert.Contains(t, view, "record 1/")
	assert.Contains(t, view, "2.166667")
	assert.Contains(t, view, "f'(x) = 2*x")
	assert.Contains(t, view, "converged")

	empty := NewBrowser(&experiment.Result{Method: "rk4", Function: "y"}, 6)
	assert.Contains(t, empty.View(), "empty trace")
}
