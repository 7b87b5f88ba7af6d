package question

// Kind tags a question variant.
type Kind string

// Kind constants.
const (
	KindMultipleChoice Kind = "multiple-choice"
	KindHotspot        Kind = "hotspot"
	KindDragDrop       Kind = "drag-drop"
)

// AllKinds lists every kind in display order.
var AllKinds = []Kind{KindMultipleChoice, KindHotspot, KindDragDrop}

// ParseKind maps a wire value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMultipleChoice, KindHotspot, KindDragDrop:
		return k, nil
	}
	return "", ErrUnknownKind
}

// Question is implemented by MultipleChoice, Hotspot and DragDrop only.
type Question interface {
	QuestionID() string
	QuestionKind() Kind
	QuestionPrompt() string
	sealed()
}

// MultipleChoice offers an ordered list of options with one correct index.
type MultipleChoice struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
	Correct int      `json:"correct" yaml:"correct"` // server-side only
}

// Region is a clickable zone of a hotspot diagram.
type Region struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Correct  bool    `json:"correct" yaml:"correct"`
	Feedback string  `json:"feedback" yaml:"feedback"`
}

// Hotspot asks the user to click one region of a diagram.
type Hotspot struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Regions []Region `json:"regions" yaml:"regions"`
}

// Target is a drop slot; Match indexes the draggable that belongs there.
type Target struct {
	Label string `json:"label" yaml:"label"`
	Match int    `json:"match" yaml:"match"`
}

// DragDrop asks the user to place draggable items into targets.
type DragDrop struct {
	ID         string   `json:"id" yaml:"id"`
	Prompt     string   `json:"prompt" yaml:"prompt"`
	Draggables []string `json:"draggables" yaml:"draggables"`
	Targets    []Target `json:"targets" yaml:"targets"`
}

func (q MultipleChoice) QuestionID() string     { return q.ID }
func (q MultipleChoice) QuestionKind() Kind     { return KindMultipleChoice }
func (q MultipleChoice) QuestionPrompt() string { return q.Prompt }
func (MultipleChoice) sealed()                  {}

func (q Hotspot) QuestionID() string     { return q.ID }
func (q Hotspot) QuestionKind() Kind     { return KindHotspot }
func (q Hotspot) QuestionPrompt() string { return q.Prompt }
func (Hotspot) sealed()                  {}

func (q DragDrop) QuestionID() string     { return q.ID }
func (q DragDrop) QuestionKind() Kind     { return KindDragDrop }
func (q DragDrop) QuestionPrompt() string { return q.Prompt }
func (DragDrop) sealed()                  {}

// RegionIndex returns the position of the region with the given id, or -1.
func (q Hotspot) RegionIndex(id string) int {
	for i, r := range q.Regions {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// CorrectRegions returns the regions flagged correct in declaration order.
func (q Hotspot) CorrectRegions() []int {
	var out []int
	for i, r := range q.Regions {
		if r.Correct {
			out = append(out, i)
		}
	}
	return out
}
