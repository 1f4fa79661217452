package widget

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBootstrap means a required UI surface was missing at initialization.
var ErrBootstrap = errors.New("widget: required surface missing")

// Input is the text field holding the candidate word.
type Input interface {
	Value() string
	SetValue(string)
	Focus()
	Blur()
}

// Output is the container the matches are rendered into.
type Output interface {
	Clear()
	Append(word string)
}

// Form is the submit surface. The controller binds its submit handler on bootstrap.
type Form interface {
	OnSubmit(fn func())
}

// Status is the single line of status text.
type Status interface {
	SetText(string)
}

// Toggles are the optional query option switches.
type Toggles interface {
	Offensive() bool
	NounsOnly() bool
}

// Location gives access to the fragment of the link the widget was opened with.
type Location interface {
	Fragment() string
	ClearFragment()
}

// Ports are the UI surfaces a controller drives. Input, Output, Form and
// Status are required; Toggles and Location may be nil.
type Ports struct {
	Input    Input
	Output   Output
	Form     Form
	Status   Status
	Toggles  Toggles
	Location Location
}

func (p Ports) check() error {
	var missing []string
	if p.Input == nil {
		missing = append(missing, "input")
	}
	if p.Output == nil {
		missing = append(missing, "output")
	}
	if p.Form == nil {
		missing = append(missing, "form")
	}
	if p.Status == nil {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrBootstrap, strings.Join(missing, ", "))
	}
	return nil
}
