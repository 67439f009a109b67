package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ovm/vm"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

type debugModel struct {
	dbg      *vm.Debugger
	entry    string
	finished bool
	result   string
	lastErr  error
}

func (m debugModel) Init() tea.Cmd { return nil }

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "n", "enter":
		if m.finished {
			return m, nil
		}
		m = m.step()
	}
	return m, nil
}

func (m debugModel) step() debugModel {
	defer func() {
		if r := recover(); r != nil {
			m.finished = true
			m.result = fmt.Sprintf("fatal: %v", r)
		}
	}()
	done, ret, hasRet := m.dbg.Step()
	if done {
		m.finished = true
		if hasRet {
			m.result = fmt.Sprintf("returned %s", ret.String())
		} else {
			m.result = "returned (void)"
		}
	}
	return m
}

func (m debugModel) View() string {
	f := m.dbg.Frame()
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  pc=%d", m.entry, f.PC)))
	b.WriteString("\n\n")

	var stackLines []string
	for _, v := range m.dbg.StackValues() {
		stackLines = append(stackLines, v.String())
	}
	b.WriteString(frameStyle.Render("stack: [" + strings.Join(stackLines, ", ") + "]"))
	b.WriteString("\n")

	if m.finished {
		b.WriteString(doneStyle.Render(m.result))
		b.WriteString("\n\nq to quit\n")
	} else {
		b.WriteString("\nspace/enter to step, q to quit\n")
	}
	return b.String()
}

// runDebugTUI drives an interactive single-step session over the entry
// class's main2 method using bubbletea for input handling and lipgloss
// for frame rendering, replacing the plain --debug text dump with a
// keypress-driven view.
func runDebugTUI(interp *vm.Interpreter, entryClass string, programArgs []string) error {
	class, ok := interp.Repo.LookupKlass(entryClass)
	if !ok {
		return fmt.Errorf("entry class not found: %s", entryClass)
	}
	method, ok := class.FindMethod("main2", "([Ljava/lang/String;)I")
	if !ok {
		return fmt.Errorf("%s has no main2:([Ljava/lang/String;)I to step through", entryClass)
	}

	argsRef := interp.BuildStringArray(programArgs)
	dbg := vm.NewDebugger(interp, class, method, []vm.Value{argsRef})

	m := debugModel{dbg: dbg, entry: entryClass}
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
