package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard keybindings.
type keyMap struct {
	Refresh    key.Binding
	ToggleView key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh:    key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload")),
		ToggleView: key.NewBinding(key.WithKeys("v", "tab"), key.WithHelp("v", "chart/rankings")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.ToggleView, k.Quit}
}
