// Package tui hosts a watch face in the terminal with bubbletea.
//
// The model is a value: every tick returns a new model with the advanced
// time, and View re-renders from scratch.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/render/term"
	"github.com/aelexs/watchface/internal/watchface"
)

// TickMsg advances the whole time by one second.
type TickMsg struct{}

// FieldTickMsg advances one field without carry.
type FieldTickMsg struct {
	Field watchface.Field
}

// statusRows is reserved below the dial.
const statusRows = 1

var statusStyle = lipgloss.NewStyle().Faint(true)

// Model is the terminal face.
type Model struct {
	style    watchface.Style
	interval time.Duration
	time     watchface.ClockTime

	cols, rows int
	face       *watchface.Face
	err        error
}

// New mounts a face reading clock once. A non-positive interval means
// domain.TickInterval.
func New(clock domain.Clock, s watchface.Style, interval time.Duration) Model {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if interval <= 0 {
		interval = domain.TickInterval
	}
	return Model{
		style:    s,
		interval: interval,
		time:     watchface.FromWallClock(clock.Now(), s.Motion),
	}
}

// Time returns the displayed time.
func (m Model) Time() watchface.ClockTime { return m.time }

// Init starts the tick timers for the style's schedule.
func (m Model) Init() tea.Cmd {
	if m.style.Schedule == watchface.SchedulePerField {
		return tea.Batch(
			m.fieldTick(watchface.FieldSecond),
			m.fieldTick(watchface.FieldMinute),
			m.fieldTick(watchface.FieldHour),
		)
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return TickMsg{} })
}

func (m Model) fieldTick(f watchface.Field) tea.Cmd {
	period := m.interval
	switch f {
	case watchface.FieldMinute:
		period *= watchface.SecondsPerMinute
	case watchface.FieldHour:
		period *= watchface.SecondsPerMinute * watchface.MinutesPerHour
	}
	return tea.Tick(period, func(time.Time) tea.Msg { return FieldTickMsg{Field: f} })
}

// Update applies one message and returns the next model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case TickMsg:
		m.time = watchface.Advance(m.time, m.style.Motion)
		return m, m.tick()
	case FieldTickMsg:
		m.time = watchface.AdvanceField(m.time, msg.Field)
		return m, m.fieldTick(msg.Field)
	default:
		return m, nil
	}
}

func (m Model) resize(cols, rows int) Model {
	m.cols, m.rows = cols, rows
	m.face, m.err = nil, nil
	v := term.Viewport(cols, rows-statusRows)
	face, err := watchface.NewFace(term.Fit(m.style, v), v, term.Measurer{})
	if err != nil {
		m.err = err
		return m
	}
	m.face = face
	return m
}

// View draws the dial above a status line.
func (m Model) View() string {
	status := statusStyle.Render(fmt.Sprintf("%s  %s  q to quit", m.time, m.style.Name))
	if m.face == nil {
		if m.err != nil {
			return "terminal too small\n" + status
		}
		return status
	}
	grid := term.Rasterize(m.face.Frame(m.time), m.cols, m.rows-statusRows)
	return grid.Render() + "\n" + status
}

// Run shows m full-screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
