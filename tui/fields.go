package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kcmvp/orderdesk/form"
)

type fieldSpec struct {
	key   string
	label string
	hint  string
}

// fieldSet is a column of labelled text inputs, read back as form values by key.
type fieldSet struct {
	specs  []fieldSpec
	inputs []textinput.Model
	focus  int
}

func newFieldSet(specs ...fieldSpec) fieldSet {
	inputs := make([]textinput.Model, len(specs))
	for i, s := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = s.hint
		ti.Width = 24
		ti.CharLimit = 64
		inputs[i] = ti
	}
	return fieldSet{specs: specs, inputs: inputs, focus: -1}
}

func (f fieldSet) values() form.Values {
	v := form.Values{}
	for i, s := range f.specs {
		v[s.key] = f.inputs[i].Value()
	}
	return v
}

func (f *fieldSet) set(key, value string) {
	for i, s := range f.specs {
		if s.key == key {
			f.inputs[i].SetValue(value)
		}
	}
}

// focusAt focuses input i and blurs the others. Any i outside the set blurs everything.
func (f *fieldSet) focusAt(i int) tea.Cmd {
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	if i < 0 || i >= len(f.inputs) {
		i = -1
	}
	f.focus = i
	return cmd
}

func (f fieldSet) focused() bool { return f.focus >= 0 }

func (f fieldSet) update(msg tea.Msg) (fieldSet, tea.Cmd) {
	if !f.focused() {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f fieldSet) view(st Styles) string {
	var sb strings.Builder
	for i, s := range f.specs {
		sb.WriteString(st.Label.Render(s.label))
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n")
	}
	return sb.String()
}
