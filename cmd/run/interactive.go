package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riftbound/script-runtime/ecs"
	"github.com/riftbound/script-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	entityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const interactiveHelp = "tick [dt] | emit <a> <b> | attr <id> <name> | spawn <module> <class> [args...] | list | quit"

type interactiveModel struct {
	rt    *runtime.Runtime
	input textinput.Model
	lines []string
	ticks int
}

func runInteractive(rt *runtime.Runtime) error {
	ti := textinput.New()
	ti.Placeholder = "tick"
	ti.Focus()

	m := interactiveModel{rt: rt, input: ti}
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			if line != "" {
				m.lines = append(m.lines, "> "+line)
				m.lines = append(m.lines, m.execute(line)...)
				if len(m.lines) > 20 {
					m.lines = m.lines[len(m.lines)-20:]
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) execute(line string) []string {
	fields := strings.Fields(line)
	switch fields[0] {
	case "tick":
		dt := 1.0 / 60.0
		if len(fields) > 1 {
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return []string{errorStyle.Render("bad dt: " + fields[1])}
			}
			dt = v
		}
		if err := m.rt.Update(dt); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		m.ticks++
		return []string{resultStyle.Render(fmt.Sprintf("tick %d (dt=%.4f)", m.ticks, dt))}

	case "emit":
		if len(fields) != 3 {
			return []string{errorStyle.Render("usage: emit <a> <b>")}
		}
		a, okA := m.entityByID(fields[1])
		b, okB := m.entityByID(fields[2])
		if !okA || !okB {
			return []string{errorStyle.Render("unknown entity id")}
		}
		if err := ecs.Publish(m.rt.Bus(), ecs.Collision{A: a, B: b}); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		return []string{resultStyle.Render(fmt.Sprintf("collision %v <-> %v delivered", a, b))}

	case "attr":
		if len(fields) != 3 {
			return []string{errorStyle.Render("usage: attr <id> <name>")}
		}
		e, ok := m.entityByID(fields[1])
		if !ok {
			return []string{errorStyle.Render("unknown entity id")}
		}
		slot, ok := m.rt.SlotOf(e)
		if !ok {
			return []string{errorStyle.Render(fmt.Sprintf("entity %v has no script slot", e))}
		}
		v, ok := slot.Attr(fields[2])
		if !ok {
			return []string{helpStyle.Render("(absent)")}
		}
		return []string{resultStyle.Render(fmt.Sprintf("%s = %v", fields[2], v))}

	case "spawn":
		if len(fields) < 3 {
			return []string{errorStyle.Render("usage: spawn <module> <class> [args...]")}
		}
		args := make([]any, 0, len(fields)-3)
		for _, f := range fields[3:] {
			if v, err := strconv.ParseFloat(f, 64); err == nil {
				args = append(args, v)
			} else {
				args = append(args, f)
			}
		}
		e := m.rt.World().Create()
		if _, err := m.rt.Attach(e, fields[1], fields[2], args...); err != nil {
			m.rt.World().Remove(e)
			return []string{errorStyle.Render(err.Error())}
		}
		return []string{resultStyle.Render(fmt.Sprintf("spawned %v as %s.%s", e, fields[1], fields[2]))}

	case "list":
		var out []string
		for _, e := range m.rt.World().Entities() {
			line := entityStyle.Render(e.String())
			if pos, ok := ecs.Get[*ecs.Position](m.rt.World(), e); ok {
				line += fmt.Sprintf(" (%.2f, %.2f)", pos.X, pos.Y)
			}
			if slot, ok := m.rt.SlotOf(e); ok {
				line += " " + slot.Module + "." + slot.Class
			}
			out = append(out, line)
		}
		if len(out) == 0 {
			return []string{helpStyle.Render("(no entities)")}
		}
		return out

	default:
		return []string{errorStyle.Render("unknown command"), helpStyle.Render(interactiveHelp)}
	}
}

func (m *interactiveModel) entityByID(s string) (ecs.Entity, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return ecs.Entity{}, false
	}
	for _, e := range m.rt.World().Entities() {
		if e.ID == uint32(id) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

func (m interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("script-runtime stepper"))
	b.WriteString("\n\n")
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(interactiveHelp))
	b.WriteString("\n")
	return b.String()
}
