package capture

import "fmt"

// Field is one labeled line on a step card.
type Field struct {
	Label string
	Value string
}

// DisplayFields derives the lines shown on a step's report card from its
// action. Steps without an action still render, with placeholder labels.
func (s Step) DisplayFields() []Field {
	a := s.Action
	if a == nil {
		return []Field{
			{Label: "Action type", Value: DefaultTypeLabel},
			{Label: "Action phrase", Value: DefaultPhrase},
		}
	}

	switch {
	case a.Type == ActionSuccess:
		return []Field{
			{Label: "Action type", Value: "Success"},
			{Label: "Success description", Value: a.SuccessDescription},
			{Label: "isText", Value: FormatBool(a.IsText)},
		}
	case a.Type == ActionTextEntry && a.HasKey:
		return []Field{
			{Label: "Action type", Value: "Prerequisite"},
			{Label: "Prerequisite key", Value: a.Key},
			{Label: "Action phrase", Value: a.Phrase},
		}
	case a.Type == ActionTextEntry:
		return []Field{
			{Label: "Action type", Value: a.RawType},
			{Label: "Entered text", Value: a.Text},
			{Label: "Action phrase", Value: a.Phrase},
		}
	default:
		return []Field{
			{Label: "Action type", Value: a.RawType},
			{Label: "Action phrase", Value: a.Phrase},
		}
	}
}

// FormatBool renders a boolean the way the report displays it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// String implements fmt.Stringer for report-style output of a field.
func (f Field) String() string {
	return fmt.Sprintf("%s: %s", f.Label, f.Value)
}
