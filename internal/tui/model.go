// Package tui implements the Bubble Tea phonebook used on interactive terminals.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/code"
	"github.com/smileynet/phonebook/internal/contact"
	"github.com/smileynet/phonebook/internal/directory"
)

// Mode is the screen currently receiving keys.
type Mode int

const (
	ModeBrowse  Mode = iota // Contact list with detail box.
	ModeAdd                 // Name, surnames and phone inputs for a new contact.
	ModeRename              // Name and surnames inputs for the selected contact.
	ModePhone               // Phone input for the selected contact.
	ModeCall                // Number input for "call other number".
	ModeConfirm             // Delete confirmation.
)

// Input field indexes within Model.inputs.
const (
	fieldName = iota
	fieldSurnames
	fieldPhone
)

// Model is the root Bubble Tea model for the phonebook.
// The directory is only touched from Update, which Bubble Tea runs on a
// single goroutine.
type Model struct {
	dir      *directory.Directory
	contacts []contact.Contact // Snapshot of dir.List(), refreshed after mutations.
	cursor   int

	mode   Mode
	inputs []textinput.Model
	focus  int

	status    string
	statusErr bool

	width  int
	help   help.Model
	logger *zap.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger for UI events.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates a Model in browse mode over dir.
func NewModel(dir *directory.Directory, opts ...ModelOption) Model {
	m := Model{
		dir:    dir,
		help:   help.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Mode reports the active screen.
func (m Model) Mode() Mode { return m.mode }

// Status returns the last outcome message.
func (m Model) Status() string { return m.status }

// Selected returns the contact under the cursor, if any.
func (m Model) Selected() (contact.Contact, bool) {
	if m.cursor < 0 || m.cursor >= len(m.contacts) {
		return contact.Contact{}, false
	}
	return m.contacts[m.cursor], true
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeBrowse:
			return m.updateBrowse(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateForm(msg)
		}
	}

	// Cursor blink and other messages belong to the focused input.
	if m.mode != ModeBrowse && m.mode != ModeConfirm {
		return m.forwardToInput(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := BrowseKeyMap()
	sel, ok := m.Selected()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Add):
		return m.openForm(ModeAdd, "", "", "")
	case !ok:
		// Remaining actions need a selected contact.
		if isAction(msg, keys) {
			m.setStatus("The phonebook is empty. Press a to add a contact.", true)
		}
	case key.Matches(msg, keys.Rename):
		return m.openForm(ModeRename, sel.Name(), sel.Surnames(), "")
	case key.Matches(msg, keys.Phone):
		return m.openForm(ModePhone, "", "", sel.Phone())
	case key.Matches(msg, keys.CallOther):
		return m.openForm(ModeCall, "", "", "")
	case key.Matches(msg, keys.Call):
		m.setStatus(sel.CallMyNumber(), false)
	case key.Matches(msg, keys.Delete):
		m.mode = ModeConfirm
	}
	return m, nil
}

func isAction(msg tea.KeyMsg, keys browseKeys) bool {
	return key.Matches(msg, keys.Rename, keys.Phone, keys.CallOther, keys.Call, keys.Delete)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := ConfirmKeyMap()
	switch {
	case key.Matches(msg, keys.Yes):
		sel, _ := m.Selected()
		m.mode = ModeBrowse
		if err := m.dir.Remove(sel.Code()); err != nil {
			m.setStatus(fmt.Sprintf("No contact found with code: %s", sel.Code()), true)
			m.refresh()
			return m, nil
		}
		m.logger.Info("contact deleted", zap.String("code", sel.Code()))
		m.refresh()
		m.setStatus(fmt.Sprintf("Contact with code %s was deleted.", sel.Code()), false)
	case key.Matches(msg, keys.No):
		m.mode = ModeBrowse
		m.setStatus("Delete cancelled.", false)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := FormKeyMap()
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closeForm()
		m.setStatus("Cancelled.", false)
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, keys.Prev):
		return m.moveFocus(-1)
	}
	return m.forwardToInput(msg)
}

// openForm switches to an input screen. Only the fields the mode uses are
// created; values prefill them.
func (m Model) openForm(mode Mode, name, surnames, phone string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.focus = 0
	m.status = ""

	switch mode {
	case ModeAdd:
		m.inputs = []textinput.Model{
			newInput("Name", name),
			newInput("Surnames", surnames),
			newInput("Phone", phone),
		}
	case ModeRename:
		m.inputs = []textinput.Model{
			newInput("Name", name),
			newInput("Surnames", surnames),
		}
	case ModePhone:
		m.inputs = []textinput.Model{newInput("Phone", phone)}
	case ModeCall:
		m.inputs = []textinput.Model{newInput("Number", "")}
	}
	return m, m.inputs[0].Focus()
}

func newInput(label, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = fmt.Sprintf("%-9s ", label+":")
	ti.CharLimit = 0 // unlimited; the code is derived from the full text
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

func (m *Model) closeForm() {
	m.mode = ModeBrowse
	m.inputs = nil
	m.focus = 0
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := len(m.inputs)
	if n < 2 {
		return m, nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + n) % n
	return m, m.inputs[m.focus].Focus()
}

func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

// submit applies the active form to the directory.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sel, _ := m.Selected()

	switch m.mode {
	case ModeAdd:
		c := contact.New(m.value(fieldName), m.value(fieldSurnames), m.value(fieldPhone))
		if err := m.dir.Add(c); err != nil {
			m.setStatus(fmt.Sprintf("A contact with code %s already exists. The contact was not added.", c.Code()), true)
			return m, nil
		}
		m.logger.Info("contact added", zap.String("code", c.Code()))
		m.closeForm()
		m.refresh()
		m.focusOn(c.Code())
		m.setStatus(fmt.Sprintf("Contact added with code: %s", c.Code()), false)

	case ModeRename:
		name, surnames := m.value(fieldName), m.value(fieldSurnames)
		renamed, err := m.dir.Rename(sel.Code(), name, surnames)
		if err != nil {
			if errors.Is(err, directory.ErrDuplicate) {
				m.setStatus(fmt.Sprintf("A contact with code %s already exists. The contact was not renamed.", code.Generate(name, surnames)), true)
				return m, nil
			}
			m.closeForm()
			m.refresh()
			m.setStatus(fmt.Sprintf("No contact found with code: %s", sel.Code()), true)
			return m, nil
		}
		m.logger.Info("contact renamed", zap.String("code", sel.Code()), zap.String("new_code", renamed.Code()))
		m.closeForm()
		m.refresh()
		m.focusOn(renamed.Code())
		m.setStatus(fmt.Sprintf("Contact renamed: %s -> %s", sel.Code(), renamed.Code()), false)

	case ModePhone:
		updated, err := m.dir.SetPhone(sel.Code(), m.value(0))
		m.closeForm()
		if err != nil {
			m.refresh()
			m.setStatus(fmt.Sprintf("No contact found with code: %s", sel.Code()), true)
			return m, nil
		}
		m.refresh()
		m.focusOn(updated.Code())
		m.setStatus(fmt.Sprintf("Phone number updated to %s.", updated.Phone()), false)

	case ModeCall:
		number := m.value(0)
		m.closeForm()
		m.setStatus(sel.CallOtherNumber(number), false)
	}
	return m, nil
}

// refresh reloads the contact snapshot and clamps the cursor to the list.
func (m *Model) refresh() {
	m.contacts = m.dir.List()
	if m.cursor >= len(m.contacts) {
		m.cursor = len(m.contacts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// focusOn moves the cursor to the contact stored under key, if listed.
func (m *Model) focusOn(key string) {
	for i, c := range m.contacts {
		if c.Code() == key {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the contact list, the detail or input box, the status line
// and the help bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Phonebook"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d contacts", len(m.contacts))))
	b.WriteString("\n\n")
	b.WriteString(m.viewList())
	b.WriteString("\n")

	box := boxStyle(m.mode != ModeBrowse)
	if w := boxWidth(m.width); w > 0 {
		box = box.Width(w)
	}
	b.WriteString(box.Render(m.viewBox()))
	b.WriteString("\n")

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keyMap()))
	return b.String()
}

func (m Model) viewList() string {
	if len(m.contacts) == 0 {
		return dimStyle.Render("  The phonebook is empty.") + "\n"
	}
	var b strings.Builder
	for i, c := range m.contacts {
		line := fmt.Sprintf("%s  %s", codeStyle.Render(fmt.Sprintf("%-12s", c.Code())), c.FullName())
		if i == m.cursor {
			b.WriteString("› " + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewBox() string {
	sel, ok := m.Selected()

	switch m.mode {
	case ModeAdd, ModeRename, ModePhone, ModeCall:
		var b strings.Builder
		b.WriteString(m.formTitle(sel))
		b.WriteString("\n")
		for _, in := range m.inputs {
			b.WriteString("\n")
			b.WriteString(in.View())
		}
		if m.mode == ModeAdd || m.mode == ModeRename {
			name, surnames := m.value(fieldName), m.value(fieldSurnames)
			b.WriteString("\n\n")
			b.WriteString(dimStyle.Render("Code: " + code.Generate(name, surnames)))
		}
		return b.String()
	case ModeConfirm:
		return fmt.Sprintf("Delete %s (%s)?\n\n  [y] Delete   [n] Keep", sel.FullName(), sel.Code())
	}

	if !ok {
		return dimStyle.Render("Press a to add a contact.")
	}
	return sel.Details()
}

func (m Model) formTitle(sel contact.Contact) string {
	switch m.mode {
	case ModeAdd:
		return titleStyle.Render("Add New Contact")
	case ModeRename:
		return titleStyle.Render("Rename " + sel.FullName())
	case ModePhone:
		return titleStyle.Render("Change phone of " + sel.FullName())
	default:
		return titleStyle.Render("Call from " + sel.FullName())
	}
}

// keyMap returns the help.KeyMap for the active mode.
func (m Model) keyMap() help.KeyMap {
	switch m.mode {
	case ModeBrowse:
		return BrowseKeyMap()
	case ModeConfirm:
		return ConfirmKeyMap()
	default:
		return FormKeyMap()
	}
}
