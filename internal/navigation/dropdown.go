package navigation

import "fmt"

// State of a dropdown.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Trigger drives a dropdown transition.
type Trigger int

const (
	TriggerToggle Trigger = iota
	TriggerSelect
	TriggerOutsideClick
	TriggerDismiss
)

// Dropdown is a two-state machine: Toggle flips it, every other trigger closes it.
type Dropdown struct {
	state State
}

// Fire applies a trigger and returns the new state.
func (d *Dropdown) Fire(t Trigger) State {
	if t == TriggerToggle && d.state == Closed {
		d.state = Open
	} else {
		d.state = Closed
	}
	return d.state
}

// IsOpen reports whether the dropdown is open.
func (d *Dropdown) IsOpen() bool { return d.state == Open }

// Selector is a picker: a dropdown plus the chosen option.
type Selector struct {
	Dropdown
	options     []Option
	selected    Option
	placeholder string
}

// NewSelector creates a picker showing placeholder until something is chosen.
func NewSelector(options []Option, placeholder string) *Selector {
	return &Selector{options: options, placeholder: placeholder}
}

// Select chooses the option with the given value and closes the dropdown.
func (s *Selector) Select(value string) error {
	for _, o := range s.options {
		if o.Value == value {
			s.selected = o
			s.Fire(TriggerSelect)
			return nil
		}
	}
	return fmt.Errorf("unknown option %q", value)
}

// Display is the label shown on the closed picker.
func (s *Selector) Display() string {
	if s.selected.Value == "" {
		return s.placeholder
	}
	return s.selected.Label
}

// Selected returns the chosen option and whether there is one.
func (s *Selector) Selected() (Option, bool) {
	return s.selected, s.selected.Value != ""
}

// Panel groups the widgets that share one outside-click scope: the navbar's
// account menu or the mobile sidebar, with its location and language pickers.
// Opening one widget leaves the others alone; an outside click closes all.
type Panel struct {
	Container Dropdown
	Location  *Selector
	Language  *Selector

	sub *Subscription
}

// NewPanel creates a panel with the default catalog and labels.
func NewPanel() *Panel {
	lang := NewSelector(Languages(), DefaultLanguage)
	_ = lang.Select("en")
	return &Panel{
		Location: NewSelector(Locations(), DefaultLocation),
		Language: lang,
	}
}

// OutsideClick closes every widget in the panel.
func (p *Panel) OutsideClick() {
	p.Container.Fire(TriggerOutsideClick)
	p.Location.Fire(TriggerOutsideClick)
	p.Language.Fire(TriggerOutsideClick)
}

// Mount subscribes the panel to outside clicks on bus. Calling Mount again
// replaces the previous subscription.
func (p *Panel) Mount(bus *Bus) {
	p.Unmount()
	p.sub = bus.Subscribe(EventOutsideClick, func(Event) { p.OutsideClick() })
}

// Unmount releases the panel's subscription. It is safe to call repeatedly.
func (p *Panel) Unmount() {
	if p.sub != nil {
		p.sub.Close()
		p.sub = nil
	}
}
