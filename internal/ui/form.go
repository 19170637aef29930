package ui

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// FieldKind selects the input type of a form field, mirroring the
// native input types the modal forms use.
type FieldKind int

const (
	FieldHidden FieldKind = iota
	FieldText
	FieldNumber
	FieldDate
	FieldCheckbox
	FieldSelect
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field is one input of a modal form.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option

	Value   string
	Checked bool
}

// Form is a modal form: an ordered set of fields with native-style
// validation and url-encoded serialization.
type Form struct {
	Fields []Field
}

// NewForm builds a form from its field definitions.
func NewForm(fields ...Field) *Form {
	return &Form{Fields: fields}
}

// Field returns the named field, or nil.
func (f *Form) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Set assigns a field's value. Unknown fields are an error so typos in
// callers surface instead of silently dropping input.
func (f *Form) Set(name, value string) error {
	field := f.Field(name)
	if field == nil {
		return fmt.Errorf("no such field: %s", name)
	}
	if field.Kind == FieldCheckbox {
		field.Checked = value == "1" || value == "true" || value == "on"
		return nil
	}
	field.Value = value
	return nil
}

// Validate applies the native-constraint rules: required fields must be
// filled (checkboxes exempt), numbers must parse, selects must hold one
// of their options.
func (f *Form) Validate() error {
	for i := range f.Fields {
		field := &f.Fields[i]
		if field.Kind == FieldCheckbox {
			continue
		}
		if field.Value == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.Label)
			}
			continue
		}
		switch field.Kind {
		case FieldNumber:
			if _, err := decimal.NewFromString(field.Value); err != nil {
				return fmt.Errorf("%s must be a number", field.Label)
			}
		case FieldSelect:
			if !hasOption(field.Options, field.Value) {
				return fmt.Errorf("%s has an invalid choice", field.Label)
			}
		}
	}
	return nil
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Encode serializes the form the way a browser serializes it: every
// non-checkbox field by value, checkboxes as "1" only when checked.
func (f *Form) Encode() url.Values {
	values := url.Values{}
	for _, field := range f.Fields {
		if field.Kind == FieldCheckbox {
			if field.Checked {
				values.Set(field.Name, "1")
			}
			continue
		}
		values.Set(field.Name, field.Value)
	}
	return values
}

// Reset clears all values and checkboxes.
func (f *Form) Reset() {
	for i := range f.Fields {
		f.Fields[i].Value = ""
		f.Fields[i].Checked = false
	}
}
