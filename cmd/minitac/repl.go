package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/minitac/tac"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	highlightColor = lipgloss.Color("#F59E0B")
	mutedColor     = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	titleStyle  = promptStyle.Padding(0, 1)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle    = lipgloss.NewStyle().Foreground(highlightColor)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
	panelTitle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)

const noCodeOutput = "(no code)"

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replModel keeps every accepted entry and recompiles the whole session on
// each input. An entry is accepted only if the code already shown is an
// unchanged prefix of the new listing.
type replModel struct {
	textInput   textinput.Model
	compiler    *tac.Compiler
	statements  []string
	parsed      int
	code        []tac.Instr
	symbols     *tac.SymbolTable
	listing     string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

var keys = struct {
	quit, clear, symbols, help  key.Binding
	prev, next, complete, enter key.Binding
}{
	quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
	clear:    key.NewBinding(key.WithKeys("ctrl+l")),
	symbols:  key.NewBinding(key.WithKeys("ctrl+v")),
	help:     key.NewBinding(key.WithKeys("ctrl+k")),
	prev:     key.NewBinding(key.WithKeys("up")),
	next:     key.NewBinding(key.WithKeys("down")),
	complete: key.NewBinding(key.WithKeys("tab")),
	enter:    key.NewBinding(key.WithKeys("enter")),
}

func newREPLModel(compiler *tac.Compiler) replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "tac> "

	return replModel{
		textInput:  ti,
		compiler:   compiler,
		symbols:    tac.NewSymbolTable(),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.clear):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.symbols):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.prev):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.next):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.complete):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":code":
		output := m.listing
		if output == "" {
			output = noCodeOutput
		}
		m.history = append(m.history, historyEntry{input: input, output: output})
	case ":reset", ":r":
		m.statements = nil
		m.parsed = 0
		m.code = nil
		m.listing = ""
		m.symbols = tac.NewSymbolTable()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
			isErr:  false,
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, k := range tac.Keywords() {
		if strings.HasPrefix(k, lastWord) {
			completions = append(completions, k)
		}
	}
	for _, name := range m.symbols.Names() {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate compiles the session with input appended and returns the
// instructions input contributed. Input that fails to compile, or that would
// fuse with the statement before it (`-2` after `x = 1`), is not kept.
func (m *replModel) evaluate(input string) (string, bool) {
	entry, _, err := m.compiler.Parse(input)
	if err != nil {
		return err.Error(), true
	}

	statements := append(m.statements[:len(m.statements):len(m.statements)], input)
	program, err := m.compiler.Compile(strings.Join(statements, "\n"))
	if err != nil {
		return err.Error(), true
	}
	if len(program.Tree.Statements) != m.parsed+len(entry.Statements) ||
		len(program.Code.Instrs) < len(m.code) ||
		!slices.Equal(program.Code.Instrs[:len(m.code)], m.code) {
		return "input continues the previous statement; start it with a name or keyword", true
	}

	fresh := program.Code.Instrs[len(m.code):]
	m.statements = statements
	m.parsed = len(program.Tree.Statements)
	m.code = program.Code.Instrs
	m.symbols = program.Symbols
	m.listing = strings.TrimSuffix(program.Text(), "\n")

	if len(fresh) == 0 {
		return noCodeOutput, false
	}
	lines := make([]string, len(fresh))
	for i, in := range fresh {
		lines[i] = tac.FormatInstr(in, program.Code.TypeName)
	}
	return strings.Join(lines, "\n"), false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := titleStyle.Render("minitac REPL")
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(0, min(m.width-2, 60)))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 11
	}
	if m.showVars {
		reservedLines += m.symbols.Len() + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = max(0, len(m.history)-availableHeight)
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			for _, line := range strings.Split(entry.output, "\n") {
				b.WriteString("  " + resultStyle.Render("→ "+line) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderSymbolsPanel(m.symbols, m.compiler.Config().TypeName))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := keyStyle.Render("ctrl+k") + mutedStyle.Render(" help  ") +
		keyStyle.Render("ctrl+v") + mutedStyle.Render(" symbols  ") +
		keyStyle.Render("ctrl+l") + mutedStyle.Render(" clear  ") +
		keyStyle.Render("ctrl+c") + mutedStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderSymbolsPanel(symbols *tac.SymbolTable, typeName string) string {
	if symbols.Len() == 0 {
		return panelStyle.Render(mutedStyle.Render("No variables declared"))
	}

	var lines []string
	lines = append(lines, panelTitle.Render("Symbols"))
	for _, name := range symbols.Names() {
		lines = append(lines, fmt.Sprintf("  %s %s", mutedStyle.Render(typeName), keyStyle.Render(name)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate statement history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Compile statement"},
		{":help", "Toggle this help"},
		{":vars", "Toggle symbol table"},
		{":code", "Show the full listing"},
		{":clear", "Clear history"},
		{":reset", "Forget all statements"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, panelTitle.Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			keyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			mutedStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(compiler *tac.Compiler) error {
	p := tea.NewProgram(newREPLModel(compiler), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
