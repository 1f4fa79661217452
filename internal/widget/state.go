package widget

import (
	"fmt"

	"golang.org/x/text/language"
)

// State is the lifecycle state of a widget session.
type State int

const (
	StateInit State = iota
	StateReady
	StateWaiting
	StateError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReady:
		return "ready"
	case StateWaiting:
		return "waiting"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Messages holds the status line texts shown for each state.
// Found is a format string receiving the match count.
type Messages struct {
	Init      string
	Waiting   string
	Ready     string
	Found     string
	FoundNone string
	Error     string
}

var EnglishMessages = Messages{
	Init:      "starting",
	Waiting:   "thinking",
	Ready:     "ready",
	Found:     "found %d",
	FoundNone: "found nothing",
	Error:     "something went wrong",
}

var RussianMessages = Messages{
	Init:      "Начинаю …",
	Waiting:   "Подождите, я думаю …",
	Ready:     "Готов!",
	Found:     "Нашлось: %d",
	FoundNone: "Ничего не нашлось!",
	Error:     "Ой! Что-то пошло не так …",
}

// MessagesFor picks the message set for a locale, falling back to English.
func MessagesFor(tag language.Tag) Messages {
	if base, _ := tag.Base(); base.String() == "ru" {
		return RussianMessages
	}
	return EnglishMessages
}

// StatusText returns the fixed status line for a state.
func (m Messages) StatusText(s State) string {
	switch s {
	case StateInit:
		return m.Init
	case StateReady:
		return m.Ready
	case StateWaiting:
		return m.Waiting
	case StateError:
		return m.Error
	}
	return ""
}

// FoundText returns the status line after a successful response.
func (m Messages) FoundText(count int) string {
	if count > 0 {
		return fmt.Sprintf(m.Found, count)
	}
	return m.FoundNone
}
