// Package notes is the terminal UI: a filterable note list next to a rendered
// preview of the selected note.
package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/editor"
	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/persistence"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/internal/watcher"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeRename
	modeTags
	modeConfirmDelete
)

var launchEditor = editor.ForPath

type editorFinishedMsg struct {
	name string
	err  error
}

type screenshotMsg struct {
	name     string
	filename string
	err      error
}

type NoteListModel struct {
	state   *state.State
	notes   *model.NoteCollection
	list    list.Model
	filter  textinput.Model
	input   textinput.Model
	preview viewport.Model
	keys    *listKeyMap
	mode    mode
	status  string
	width   int
	height  int

	itemsStale   bool
	previewStale bool
	unsubscribe  []func()
}

func NewNoteListModel(s *state.State) *NoteListModel {
	keys := newListKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedItemStyle
	delegate.Styles.SelectedDesc = selectedItemStyle

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Notes"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.shortHelp
	l.AdditionalFullHelpKeys = keys.fullHelp

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter notes, #tag"

	input := textinput.New()
	input.PromptStyle = promptStyle

	m := &NoteListModel{
		state:   s,
		notes:   s.Notes,
		list:    l,
		filter:  filter,
		input:   input,
		preview: viewport.New(0, 0),
		keys:    keys,
	}
	m.subscribe()
	m.refreshItems()
	m.renderPreview()
	return m
}

// subscribe marks the list or preview stale when the collection changes.
// Handlers run on the UI goroutine, inside Update.
func (m *NoteListModel) subscribe() {
	changed := m.notes.OnChanged.Subscribe(func() { m.itemsStale = true })
	selected := m.notes.OnSelectionChanged.Subscribe(func() { m.previewStale = true })

	m.unsubscribe = []func(){
		func() { m.notes.OnChanged.Unsubscribe(changed) },
		func() { m.notes.OnSelectionChanged.Unsubscribe(selected) },
	}
}

// Close detaches the model from the collection events.
func (m *NoteListModel) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.unsubscribe = nil
}

func (m *NoteListModel) Init() tea.Cmd {
	return m.state.Watcher.Start()
}

func (m *NoteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, m.flush(cmds)

	case watcher.NotesChangedMsg:
		if err := m.notes.Reload(); err != nil {
			m.setError("Failed to reload notes", err)
		}
		cmds = append(cmds, m.state.Watcher.Start())
		return m, m.flush(cmds)

	case watcher.WatcherErrMsg:
		m.setError("Watcher error", msg.Err)
		cmds = append(cmds, m.state.Watcher.Start())
		return m, m.flush(cmds)

	case editorFinishedMsg:
		m.handleEditorFinished(msg)
		return m, m.flush(cmds)

	case screenshotMsg:
		m.handleScreenshot(msg)
		return m, m.flush(cmds)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
			return m, m.flush(cmds)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.syncSelection()

	return m, m.flush(cmds)
}

// flush redraws whatever the collection events marked stale.
func (m *NoteListModel) flush(cmds []tea.Cmd) tea.Cmd {
	if m.itemsStale {
		cmds = append(cmds, m.refreshItems())
	}
	if m.previewStale {
		m.renderPreview()
	}
	return tea.Batch(cmds...)
}

func (m *NoteListModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.mode {
	case modeFilter:
		return m.updateFilter(msg), true
	case modeRename, modeTags:
		return m.updateInput(msg), true
	case modeConfirmDelete:
		m.updateConfirm(msg)
		return nil, true
	}

	selected := m.notes.Selected()

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.filter):
		m.mode = modeFilter
		return m.filter.Focus(), true

	case key.Matches(msg, m.keys.create):
		m.createNote()
		return nil, true

	case key.Matches(msg, m.keys.rename):
		if !selected.IsValid() {
			return nil, true
		}
		return m.startInput(modeRename, "Name: ", selected.Name()), true

	case key.Matches(msg, m.keys.tags):
		if !selected.IsValid() {
			return nil, true
		}
		return m.startInput(modeTags, "Tags: ", strings.Join(selected.Tags(), ", ")), true

	case key.Matches(msg, m.keys.delete):
		if selected.IsValid() {
			m.mode = modeConfirmDelete
		}
		return nil, true

	case key.Matches(msg, m.keys.screenshot):
		return m.takeScreenshot(), true

	case key.Matches(msg, m.keys.edit):
		return m.editSelected(), true

	case key.Matches(msg, m.keys.reload):
		if err := m.notes.Reload(); err != nil {
			m.setError("Failed to reload notes", err)
		} else {
			m.status = statusStyle("Reloaded")
		}
		return nil, true

	case key.Matches(msg, m.keys.scrollDown):
		m.preview.HalfViewDown()
		return nil, true

	case key.Matches(msg, m.keys.scrollUp):
		m.preview.HalfViewUp()
		return nil, true
	}

	return nil, false
}

func (m *NoteListModel) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.filter.SetValue("")
		m.leaveFilter()
		m.itemsStale = true
		return nil
	case key.Matches(msg, m.keys.submit):
		m.leaveFilter()
		return nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.itemsStale = true
	}
	return cmd
}

func (m *NoteListModel) leaveFilter() {
	m.filter.Blur()
	m.mode = modeBrowse
}

func (m *NoteListModel) startInput(md mode, prompt, value string) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *NoteListModel) endInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.mode = modeBrowse
}

func (m *NoteListModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.endInput()
		return nil
	case key.Matches(msg, m.keys.submit):
		m.submitInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submitInput applies a rename or tag edit. On failure the prompt stays open
// so the value can be corrected.
func (m *NoteListModel) submitInput() {
	note := m.notes.Selected()
	value := m.input.Value()

	switch m.mode {
	case modeRename:
		oldName := note.Name()
		if err := note.SetName(strings.TrimSpace(value)); err != nil {
			m.setError("Failed to rename note", err)
			return
		}
		if oldName != note.Name() {
			m.status = statusStyle(fmt.Sprintf("Renamed %s to %s", oldName, note.Name()))
		}

	case modeTags:
		if err := note.SetTags(splitTags(value)); err != nil {
			m.setError("Failed to update tags", err)
			return
		}
		m.itemsStale = true
		m.status = statusStyle("Updated tags of " + note.Name())
	}

	m.endInput()
}

func (m *NoteListModel) updateConfirm(msg tea.KeyMsg) {
	m.mode = modeBrowse
	if !key.Matches(msg, m.keys.confirm) {
		m.status = statusStyle("Kept note")
		return
	}

	note := m.notes.Selected()
	name := note.Name()
	if err := note.Delete(); err != nil {
		m.setError("Failed to delete "+name, err)
		return
	}
	m.status = statusStyle("Deleted " + name)
}

func (m *NoteListModel) createNote() {
	note, err := m.notes.AddNew()
	if err != nil {
		m.setError("Failed to create note", err)
		return
	}

	if m.filter.Value() != "" {
		m.filter.SetValue("")
		m.itemsStale = true
	}
	m.notes.Select(note.Name())
	m.status = statusStyle("Created " + note.Name())
}

func (m *NoteListModel) takeScreenshot() tea.Cmd {
	note := m.notes.Selected()
	if !note.IsValid() {
		return nil
	}

	name := note.Name()
	store := m.state.Persistence
	m.status = statusStyle("Taking screenshot…")

	return func() tea.Msg {
		filename, err := store.Screenshot(name)
		return screenshotMsg{name: name, filename: filename, err: err}
	}
}

func (m *NoteListModel) handleScreenshot(msg screenshotMsg) {
	if errors.Is(msg.err, persistence.ErrScreenshotUnavailable) {
		m.setError("Failed to create screenshot, check screenshot_command in "+m.state.ConfigPath, msg.err)
		return
	}
	if msg.err != nil {
		m.setError("Failed to create screenshot", msg.err)
		return
	}

	note, err := m.notes.Lookup(msg.name)
	if err != nil {
		m.setError("Screenshot saved but note is gone", err)
		return
	}
	if err := note.AppendScreenshot(msg.filename); err != nil {
		m.setError("Failed to add screenshot", err)
		return
	}

	m.previewStale = note == m.notes.Selected()
	m.status = statusStyle("Added " + msg.filename)
}

func (m *NoteListModel) editSelected() tea.Cmd {
	note := m.notes.Selected()
	if !note.IsValid() {
		return nil
	}

	launch, err := launchEditor(note.FilePath(), m.state.Persistence.Editor())
	if err != nil {
		m.setError("Failed to open editor", err)
		return nil
	}

	name := note.Name()
	return tea.ExecProcess(launch.Cmd, func(err error) tea.Msg {
		return editorFinishedMsg{name: name, err: err}
	})
}

func (m *NoteListModel) handleEditorFinished(msg editorFinishedMsg) {
	if msg.err != nil {
		m.setError("Editor exited with an error", msg.err)
	}

	note, ok := m.notes.Get(msg.name)
	if !ok {
		return
	}
	if err := note.Reload(); err != nil {
		m.setError("Failed to reload "+msg.name, err)
		return
	}

	m.itemsStale = true
	m.previewStale = note == m.notes.Selected()
	if msg.err == nil {
		m.status = statusStyle("Saved " + msg.name)
	}
}

// refreshItems re-runs the filter query and keeps the cursor on the selected
// note. When the selection is filtered out or deleted, the note now under the
// cursor is selected instead.
func (m *NoteListModel) refreshItems() tea.Cmd {
	m.itemsStale = false

	text, tags := parseFilter(m.filter.Value())
	notes := m.notes.Query(text, tags, false)
	previous := m.list.Index()
	cmd := m.list.SetItems(toListItems(notes))

	selected := m.notes.Selected()
	for idx, n := range notes {
		if n == selected {
			m.list.Select(idx)
			return cmd
		}
	}

	if len(notes) == 0 {
		if selected.IsValid() {
			m.notes.Select("")
		}
		return cmd
	}

	idx := min(max(previous, 0), len(notes)-1)
	m.list.Select(idx)
	m.notes.Select(notes[idx].Name())
	return cmd
}

func (m *NoteListModel) syncSelection() {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return
	}
	if item.note != m.notes.Selected() {
		m.notes.Select(item.note.Name())
	}
}

func (m *NoteListModel) renderPreview() {
	m.previewStale = false

	note := m.notes.Selected()
	if !note.IsValid() {
		m.preview.SetContent(footerStyle.Render("No note selected. Press n to create one."))
		return
	}

	out, err := m.state.Renderer.Terminal(note.Contents(), m.preview.Width)
	if err != nil {
		m.state.Logger.Warn("failed to render preview", zap.String("note", note.Name()), zap.Error(err))
		out = note.Contents()
	}
	m.preview.SetContent(out)
	m.preview.GotoTop()
}

func (m *NoteListModel) setError(prefix string, err error) {
	m.state.Logger.Debug(prefix, zap.Error(err))
	m.status = errorStyle(fmt.Sprintf("%s: %v", prefix, err))
}

func (m *NoteListModel) setSize(width, height int) {
	h, v := appStyle.GetFrameSize()
	m.width = max(width-h, 0)
	m.height = max(height-v, 0)

	// filter line and footer
	body := max(m.height-2, 0)
	listWidth := m.width / 3
	m.list.SetSize(listWidth, body)

	m.preview.Width = max(m.width-listWidth-listStyle.GetHorizontalFrameSize()-previewStyle.GetHorizontalFrameSize(), 0)
	m.preview.Height = max(body-1, 0)
	m.filter.Width = max(m.width-len(m.filter.Prompt)-1, 0)
	m.previewStale = true
}

func (m *NoteListModel) View() string {
	listView := listStyle.Width(m.width / 3).Render(m.list.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, listView, previewStyle.Render(m.rightPane()))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.filter.View(),
		body,
		m.footer(),
	))
}

func (m *NoteListModel) rightPane() string {
	note := m.notes.Selected()

	switch m.mode {
	case modeRename:
		return fmt.Sprintf("%s\n\n%s", titleStyle.Render("Rename note"), m.input.View())
	case modeTags:
		return fmt.Sprintf("%s\n\n%s\n\n%s",
			titleStyle.Render("Edit tags"),
			m.input.View(),
			footerStyle.Render("separate tags with commas or spaces"),
		)
	case modeConfirmDelete:
		return fmt.Sprintf("%s\n\nRemove %q and all of its files? (y/N)",
			titleStyle.Render("Delete note"), note.Name())
	}

	title := "Preview"
	if note.IsValid() {
		title = note.Name()
	}
	return titleStyle.Render(title) + "\n" + m.preview.View()
}

func (m *NoteListModel) footer() string {
	line := footerStyle.Render(m.state.StatusLine())
	if m.status != "" {
		line += "  " + m.status
	}
	return line
}

// Run starts the terminal UI and blocks until it exits.
func Run(s *state.State) error {
	if _, err := s.StartWatcher(); err != nil {
		s.Logger.Warn("watching for external changes is disabled", zap.Error(err))
	}

	m := NewNoteListModel(s)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
