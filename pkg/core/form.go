package core

import (
	"maps"

	"github.com/go-drift/sparkle/pkg/event"
	"github.com/go-drift/sparkle/pkg/form"
)

// Form is a unit with a <form> root. It reads and fills the named fields
// below its root.
//
// RequestSubmit emits event.Submit; unless a subscriber prevents its
// default, Submit follows and emits event.Submitted.
type Form struct {
	*Unit
}

// NewForm creates a form. Data passed with WithData is filled in once the
// form is ready.
func NewForm(opts ...Option) *Form {
	s := newSettings(opts)
	f := &Form{Unit: newUnit("form", s)}
	f.Bind(f)

	if s.data != nil {
		data := maps.Clone(s.data)
		f.Ready().Then(func(err error) {
			if err == nil && !f.Destroyed() {
				f.Fill(data)
			}
		})
	}
	return f
}

// Data returns the current field values.
func (f *Form) Data() map[string]any {
	return form.ToObject(f.Root())
}

// Fill writes data into the matching fields.
func (f *Form) Fill(data map[string]any) *Form {
	form.Fill(f.Root(), data)
	return f
}

// Assign copies the current field values into target.
func (f *Form) Assign(target map[string]any) *Form {
	if target != nil {
		maps.Copy(target, f.Data())
	}
	return f
}

// Submit emits event.Submitted with the current data as payload.
func (f *Form) Submit() *Form {
	f.Notifier().Emit(event.Submitted, f.Data())
	return f
}

// RequestSubmit emits event.Submit and submits unless a subscriber called
// PreventDefault. It reports whether the form was submitted.
func (f *Form) RequestSubmit() bool {
	e := f.Notifier().Emit(event.Submit, f.Data())
	if e.DefaultPrevented() {
		return false
	}
	f.Submit()
	return true
}
