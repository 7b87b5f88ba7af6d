package question

// Builtin returns the compiled-in question catalog.
func Builtin() map[Kind][]Question {
	return map[Kind][]Question{
		KindMultipleChoice: {
			MultipleChoice{
				ID:      "mc1",
				Prompt:  "What is the capital of France?",
				Options: []string{"London", "Berlin", "Paris", "Madrid"},
				Correct: 2,
			},
			MultipleChoice{
				ID:      "mc2",
				Prompt:  "Which planet is known as the Red Planet?",
				Options: []string{"Venus", "Mars", "Jupiter", "Saturn"},
				Correct: 1,
			},
			MultipleChoice{
				ID:      "mc3",
				Prompt:  "Which HTML tag is used to create a hyperlink?",
				Options: []string{"<link>", "<a>", "<href>", "<url>"},
				Correct: 1,
			},
		},
		KindHotspot: {
			Hotspot{
				ID:     "hs1",
				Prompt: "Identify the HTML element that creates the largest heading.",
				Regions: []Region{
					{ID: "h1", Label: "<h1>Heading 1</h1>", X: 200, Y: 70, Correct: true, Feedback: "Correct! The h1 element creates the largest heading in HTML."},
					{ID: "h2", Label: "<h2>Heading 2</h2>", X: 200, Y: 120, Feedback: "The h2 element creates the second largest heading."},
					{ID: "p", Label: "<p>Paragraph</p>", X: 200, Y: 170, Feedback: "The p element creates a paragraph, not a heading."},
					{ID: "div", Label: "<div>Division</div>", X: 200, Y: 220, Feedback: "The div element is a generic container, not a heading."},
				},
			},
		},
		KindDragDrop: {
			DragDrop{
				ID:         "dd1",
				Prompt:     "Match each CSS property with its category.",
				Draggables: []string{"margin", "color", "font-size", "transition"},
				Targets: []Target{
					{Label: "Layout", Match: 0},
					{Label: "Visual", Match: 1},
					{Label: "Typography", Match: 2},
					{Label: "Animation", Match: 3},
				},
			},
		},
	}
}
