package notes

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	filter     key.Binding
	create     key.Binding
	rename     key.Binding
	tags       key.Binding
	delete     key.Binding
	screenshot key.Binding
	edit       key.Binding
	reload     key.Binding
	scrollDown key.Binding
	scrollUp   key.Binding
	quit       key.Binding
	submit     key.Binding
	cancel     key.Binding
	confirm    key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		filter: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/", "filter"),
		),
		create: key.NewBinding(
			key.WithKeys("n", "ctrl+n"),
			key.WithHelp("n", "new"),
		),
		rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		tags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tags"),
		),
		delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		screenshot: key.NewBinding(
			key.WithKeys("s", "ctrl+p"),
			key.WithHelp("s", "screenshot"),
		),
		edit: key.NewBinding(
			key.WithKeys("enter", "e", "ctrl+e"),
			key.WithHelp("↵", "edit"),
		),
		reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("J", "ctrl+d"),
			key.WithHelp("J", "scroll preview"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("K", "ctrl+u"),
			key.WithHelp("K", "scroll preview up"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

func (m listKeyMap) shortHelp() []key.Binding {
	return []key.Binding{m.filter, m.create, m.edit, m.delete}
}

func (m listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		m.filter,
		m.create,
		m.rename,
		m.tags,
		m.delete,
		m.screenshot,
		m.edit,
		m.reload,
		m.scrollDown,
		m.scrollUp,
	}
}
