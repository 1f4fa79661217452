package widget

import (
	"slices"
	"sync"

	"slovobor/internal/types"
)

// ViewState is what a binding renders.
type ViewState struct {
	Input    string
	Focused  bool
	Output   []string
	Status   string
	Options  types.QueryOptions
	Fragment string
}

// MemoryView keeps every UI surface in memory. Bindings render its snapshot
// and feed user actions into it; the controller drives it through Ports.
// It is safe for concurrent use.
type MemoryView struct {
	mu       sync.Mutex
	state    ViewState
	onSubmit func()
	onChange func()
}

// NewMemoryView creates a view opened with the given link fragment.
func NewMemoryView(fragment string) *MemoryView {
	return &MemoryView{state: ViewState{Fragment: fragment}}
}

// Ports exposes the view as a full set of controller ports.
func (v *MemoryView) Ports() Ports {
	return Ports{Input: v, Output: v, Form: v, Status: v, Toggles: v, Location: v}
}

// OnChange registers fn to run after every change made through the ports.
// fn runs without the view lock held.
func (v *MemoryView) OnChange(fn func()) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Snapshot returns a copy of the current view.
func (v *MemoryView) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Output = slices.Clone(s.Output)
	return s
}

func (v *MemoryView) mutate(fn func(s *ViewState)) {
	v.mu.Lock()
	fn(&v.state)
	onChange := v.onChange
	v.mu.Unlock()
	if onChange != nil {
		onChange()
	}
}

func (v *MemoryView) Value() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Input
}

func (v *MemoryView) SetValue(s string) {
	v.mutate(func(st *ViewState) { st.Input = s })
}

func (v *MemoryView) Focus() {
	v.mutate(func(st *ViewState) { st.Focused = true })
}

func (v *MemoryView) Blur() {
	v.mutate(func(st *ViewState) { st.Focused = false })
}

func (v *MemoryView) Clear() {
	v.mutate(func(st *ViewState) { st.Output = nil })
}

func (v *MemoryView) Append(word string) {
	v.mutate(func(st *ViewState) { st.Output = append(st.Output, word) })
}

func (v *MemoryView) OnSubmit(fn func()) {
	v.mu.Lock()
	v.onSubmit = fn
	v.mu.Unlock()
}

func (v *MemoryView) SetText(s string) {
	v.mutate(func(st *ViewState) { st.Status = s })
}

func (v *MemoryView) Offensive() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Options.Offensive
}

func (v *MemoryView) NounsOnly() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Options.NounsOnly
}

func (v *MemoryView) Fragment() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Fragment
}

func (v *MemoryView) ClearFragment() {
	v.mutate(func(st *ViewState) { st.Fragment = "" })
}

// SetOptions records the toggle positions chosen by the user.
func (v *MemoryView) SetOptions(opts types.QueryOptions) {
	v.mutate(func(st *ViewState) { st.Options = opts })
}

// Submit fires the bound submit handler, as a form submission would.
// It reports false when nothing is bound yet.
func (v *MemoryView) Submit() bool {
	v.mu.Lock()
	fn := v.onSubmit
	v.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}
