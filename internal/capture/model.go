// Package capture models an app task capture: the JSON description of an
// automated mobile-app test run, decoded into a typed structure with all
// schema defaults resolved up front.
package capture

// ActionType classifies the operation recorded at a step.
type ActionType string

const (
	ActionTap       ActionType = "tap"
	ActionSwipe     ActionType = "swipe"
	ActionTextEntry ActionType = "textEntry"
	ActionSuccess   ActionType = "success"
	ActionUnknown   ActionType = "unknown"
)

// Display defaults applied during decoding for absent fields.
const (
	DefaultAppName     = "Unknown App"
	DefaultBundleID    = "unknown_bundle"
	DefaultAppVersion  = "Unknown Version"
	DefaultPhrase      = "No phrase available"
	DefaultTypeLabel   = "No action type"
	DefaultText        = "No text entered"
	DefaultDescription = "No description available"
)

// Capture is the root of one recorded task set for an app.
type Capture struct {
	AppName    string
	BundleID   string
	AppVersion string
	Tasks      []Task
}

// Task is one logical user goal, composed of ordered steps.
type Task struct {
	ID      string
	Phrases string
	Prereqs []Prereq
	Steps   []Step
}

// Prereq is a named precondition value. Document order is preserved for
// display.
type Prereq struct {
	Key   string
	Value string
}

// Step is one atomic recorded action plus its associated screenshot.
// An empty ImageID means the step has no screenshot.
type Step struct {
	ID      string
	Action  *Action
	ImageID string
}

// Target is a pixel-space bounding box marking a UI element of interest.
// Unlike tap/swipe coordinates it is never scaled to the image.
type Target struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Action is the classified operation performed at a step. Type selects
// which of the variant fields are meaningful; RawType keeps the original
// label for display when the type is not one of the known variants.
type Action struct {
	Type    ActionType
	RawType string
	Phrase  string

	// success
	SuccessDescription string
	IsText             bool

	// textEntry: Key set (HasKey) means a prerequisite reference, otherwise
	// Text holds the entered value.
	Key    string
	HasKey bool
	Text   string

	// tap (normalized to the resolved image)
	X float64
	Y float64

	// swipe (normalized endpoints)
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64

	Target *Target
}

// TaskSummary is the success condition aggregated over a task's steps.
type TaskSummary struct {
	Found       bool
	Description string
	IsText      bool
}

// Summarize folds a task's steps into its success condition. When several
// success steps exist the last one wins, matching the recorded behavior of
// captures (a well-formed task has at most one).
func Summarize(steps []Step) TaskSummary {
	var summary TaskSummary
	for _, s := range steps {
		if s.Action != nil && s.Action.Type == ActionSuccess {
			summary = TaskSummary{
				Found:       true,
				Description: s.Action.SuccessDescription,
				IsText:      s.Action.IsText,
			}
		}
	}
	return summary
}
