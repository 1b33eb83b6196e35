package entity

// Form tracks which fields the user has interacted with. Messages for a field
// are only shown once it has been touched; a submit attempt touches every
// field that has a message.
type Form struct {
	touched map[string]bool
}

func (f *Form) Touch(fields ...string) {
	if f.touched == nil {
		f.touched = make(map[string]bool, len(fields))
	}
	for _, field := range fields {
		f.touched[field] = true
	}
}

func (f *Form) Touched(field string) bool {
	return f.touched[field]
}

// Reset forgets every interaction.
func (f *Form) Reset() {
	f.touched = nil
}

// Visible filters errs down to the touched fields.
func (f *Form) Visible(errs Errors) Errors {
	out := Errors{}
	for field, msg := range errs {
		if f.touched[field] {
			out[field] = msg
		}
	}
	return out
}

// Submit validates v. When it fails every offending field becomes visible and
// a *ValidationError is returned; nothing should be sent to the backend.
func (f *Form) Submit(v Validator, today Date) error {
	errs := v.Validate(today)
	for field := range errs {
		f.Touch(field)
	}
	return errs.Err()
}
