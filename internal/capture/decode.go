package capture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Wire-format structures matching the capture JSON produced by the
// collection tooling. Fields the typed model defaults are pointers or raw
// messages so absence can be detected.
type wireCapture struct {
	App        string     `json:"app"`
	Bundle     string     `json:"bundle"`
	AppVersion string     `json:"app-version"`
	Tasks      []wireTask `json:"tasks"`
}

type wireTask struct {
	ID         string          `json:"id"`
	Phrases    json.RawMessage `json:"phrases"`
	PrereqInfo json.RawMessage `json:"prereq-info"`
	Steps      []wireStep      `json:"steps"`
}

type wireStep struct {
	ID     string        `json:"id"`
	Action *wireAction   `json:"action"`
	Image  *wireImageRef `json:"image"`
}

type wireImageRef struct {
	ID string `json:"id"`
}

type wireAction struct {
	Phrases []string        `json:"phrases"`
	Action  *wireActionBody `json:"action"`
	Target  *wireTarget     `json:"target"`
}

type wireActionBody struct {
	Type               string  `json:"type"`
	SuccessDescription *string `json:"successDescription"`
	IsText             bool    `json:"isText"`
	Key                *string `json:"key"`
	Text               *string `json:"text"`
	X                  float64 `json:"x"`
	Y                  float64 `json:"y"`
	StartX             float64 `json:"startX"`
	StartY             float64 `json:"startY"`
	EndX               float64 `json:"endX"`
	EndY               float64 `json:"endY"`
}

type wireTarget struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LoadFile reads and decodes a capture JSON file.
func LoadFile(path string) (*Capture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-provided capture path
	if err != nil {
		return nil, fmt.Errorf("reading capture file: %w", err)
	}
	return Decode(data)
}

// Decode parses capture JSON into the typed model, resolving schema defaults.
// Task and step ids cannot be defaulted; their absence is an error.
func Decode(data []byte) (*Capture, error) {
	var wire wireCapture
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing capture JSON: %w", err)
	}

	c := &Capture{
		AppName:    defaultString(wire.App, DefaultAppName),
		BundleID:   defaultString(wire.Bundle, DefaultBundleID),
		AppVersion: defaultString(wire.AppVersion, DefaultAppVersion),
	}

	for ti, wt := range wire.Tasks {
		if wt.ID == "" {
			return nil, fmt.Errorf("task %d: missing id", ti)
		}
		task := Task{
			ID:      wt.ID,
			Phrases: decodePhrases(wt.Phrases),
		}
		prereqs, err := decodePrereqs(wt.PrereqInfo)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", wt.ID, err)
		}
		task.Prereqs = prereqs

		for si, ws := range wt.Steps {
			if ws.ID == "" {
				return nil, fmt.Errorf("task %s: step %d: missing id", wt.ID, si)
			}
			step := Step{ID: ws.ID}
			if ws.Image != nil {
				step.ImageID = ws.Image.ID
			}
			if ws.Action != nil {
				step.Action = decodeAction(ws.Action)
			}
			task.Steps = append(task.Steps, step)
		}
		c.Tasks = append(c.Tasks, task)
	}

	return c, nil
}

// decodePhrases handles the two wire shapes of a task's display label: a
// plain string or an array of strings (joined for display).
func decodePhrases(raw json.RawMessage) string {
	if len(raw) == 0 {
		return DefaultPhrase
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return defaultString(s, DefaultPhrase)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, ", ")
	}
	return DefaultPhrase
}

// decodePrereqs decodes a prereq-info object preserving document order,
// which encoding/json maps would lose.
func decodePrereqs(raw json.RawMessage) ([]Prereq, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing prereq-info: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("prereq-info: expected object, got %v", tok)
	}

	var prereqs []Prereq
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing prereq-info: %w", err)
		}
		key, _ := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("prereq-info %q: %w", key, err)
		}
		prereqs = append(prereqs, Prereq{Key: key, Value: value})
	}
	return prereqs, nil
}

func decodeAction(wa *wireAction) *Action {
	a := &Action{
		Type:    ActionUnknown,
		RawType: DefaultTypeLabel,
		Phrase:  DefaultPhrase,
	}
	if len(wa.Phrases) > 0 && wa.Phrases[0] != "" {
		a.Phrase = wa.Phrases[0]
	}
	if wa.Target != nil {
		a.Target = &Target{X: wa.Target.X, Y: wa.Target.Y, Width: wa.Target.Width, Height: wa.Target.Height}
	}

	body := wa.Action
	if body == nil {
		return a
	}
	if body.Type != "" {
		a.RawType = body.Type
	}

	switch body.Type {
	case string(ActionTap):
		a.Type = ActionTap
		a.X, a.Y = body.X, body.Y
	case string(ActionSwipe):
		a.Type = ActionSwipe
		a.StartX, a.StartY = body.StartX, body.StartY
		a.EndX, a.EndY = body.EndX, body.EndY
	case string(ActionTextEntry):
		a.Type = ActionTextEntry
		if body.Key != nil {
			a.Key = *body.Key
			a.HasKey = true
		}
		a.Text = DefaultText
		if body.Text != nil && *body.Text != "" {
			a.Text = *body.Text
		}
	case string(ActionSuccess):
		a.Type = ActionSuccess
		a.SuccessDescription = DefaultDescription
		if body.SuccessDescription != nil && *body.SuccessDescription != "" {
			a.SuccessDescription = *body.SuccessDescription
		}
		a.IsText = body.IsText
	}

	return a
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
