package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-widget/internal/question"
)

func builtin(t *testing.T, kind question.Kind, index int) question.Question {
	t.Helper()
	bank, err := question.NewBank(question.Builtin())
	require.NoError(t, err)
	q, err := bank.Question(kind, index)
	require.NoError(t, err)
	return q
}

func TestGradeMultipleChoiceEveryIndex(t *testing.T) {
	bank, err := question.NewBank(question.Builtin())
	require.NoError(t, err)

	for _, q := range bank.Questions(question.KindMultipleChoice) {
		mc := q.(question.MultipleChoice)
		for i := range mc.Options {
			res, err := Grade(mc, MultipleChoiceAnswer{Selected: i})
			require.NoError(t, err)
			assert.Equal(t, i == mc.Correct, res.Correct, "%s option %d", mc.ID, i)
		}
	}
}

func TestGradeCapitalOfFrance(t *testing.T) {
	q := builtin(t, question.KindMultipleChoice, 0)

	res, err := Grade(q, MultipleChoiceAnswer{Selected: 2})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, []Mark{{Index: 2, Correct: true, Selected: true}}, res.Marks)
	assert.Equal(t, MessageCorrect, res.Feedback())
}

func TestGradeMultipleChoiceMarksWrongSelection(t *testing.T) {
	q := builtin(t, question.KindMultipleChoice, 0)

	res, err := Grade(q, MultipleChoiceAnswer{Selected: 0})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, []Mark{
		{Index: 2, Correct: true},
		{Index: 0, Selected: true},
	}, res.Marks)
	assert.Equal(t, MessageIncorrect, res.Feedback())
}

func TestGradeMultipleChoiceErrors(t *testing.T) {
	q := builtin(t, question.KindMultipleChoice, 0)

	_, err := Grade(q, MultipleChoiceAnswer{Selected: -1})
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = Grade(q, MultipleChoiceAnswer{Selected: 4})
	assert.ErrorIs(t, err, question.ErrOutOfRange)

	_, err = Grade(q, nil)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = Grade(q, HotspotAnswer{RegionID: "h1"})
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestGradeHotspotFollowsRegionFlag(t *testing.T) {
	hs := builtin(t, question.KindHotspot, 0).(question.Hotspot)

	for _, r := range hs.Regions {
		res, err := Grade(hs, HotspotAnswer{RegionID: r.ID})
		require.NoError(t, err)
		assert.Equal(t, r.Correct, res.Correct, r.ID)
		assert.Equal(t, r.Feedback, res.Message)
		assert.Equal(t, r.Feedback, res.Feedback())
	}
}

func TestGradeHotspotMarks(t *testing.T) {
	hs := builtin(t, question.KindHotspot, 0)

	res, err := Grade(hs, HotspotAnswer{RegionID: "p"})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, []Mark{
		{Index: 0, ID: "h1", Correct: true},
		{Index: 2, ID: "p", Selected: true},
	}, res.Marks)

	res, err = Grade(hs, HotspotAnswer{RegionID: "h1"})
	require.NoError(t, err)
	assert.Equal(t, []Mark{{Index: 0, ID: "h1", Correct: true, Selected: true}}, res.Marks)
}

func TestGradeHotspotErrors(t *testing.T) {
	hs := builtin(t, question.KindHotspot, 0)

	_, err := Grade(hs, HotspotAnswer{})
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = Grade(hs, HotspotAnswer{RegionID: "h7"})
	assert.ErrorIs(t, err, question.ErrOutOfRange)
}

func TestGradeDragDropAllCorrect(t *testing.T) {
	dd := builtin(t, question.KindDragDrop, 0)

	res, err := Grade(dd, DragDropAnswer{Placements: map[int]int{0: 0, 1: 1, 2: 2, 3: 3}})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 4, res.CorrectMarks())
}

func TestGradeDragDropThreeOfFour(t *testing.T) {
	dd := builtin(t, question.KindDragDrop, 0)

	res, err := Grade(dd, DragDropAnswer{Placements: map[int]int{0: 0, 1: 1, 2: 2, 3: 0}})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 3, res.CorrectMarks())
	assert.Equal(t, Mark{Index: 3, Selected: true}, res.Marks[3])
}

func TestGradeDragDropUnfilledIsIncorrect(t *testing.T) {
	dd := builtin(t, question.KindDragDrop, 0)

	res, err := Grade(dd, DragDropAnswer{Placements: map[int]int{0: 0, 1: 1, 2: 2}})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, Mark{Index: 3}, res.Marks[3])

	res, err = Grade(dd, DragDropAnswer{})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Len(t, res.Marks, 4)
	assert.Zero(t, res.CorrectMarks())
}

func TestGradeDragDropEveryFilling(t *testing.T) {
	dd := builtin(t, question.KindDragDrop, 0).(question.DragDrop)
	n := len(dd.Draggables)

	// Each target is either unfilled (-1) or holds one of n items.
	var walk func(target int, placements map[int]int)
	walk = func(target int, placements map[int]int) {
		if target == len(dd.Targets) {
			want := true
			for i, tg := range dd.Targets {
				item, ok := placements[i]
				want = want && ok && item == tg.Match
			}
			res, err := Grade(dd, DragDropAnswer{Placements: placements})
			require.NoError(t, err)
			assert.Equal(t, want, res.Correct, "%v", placements)
			return
		}
		for item := -1; item < n; item++ {
			next := make(map[int]int, len(placements)+1)
			for k, v := range placements {
				next[k] = v
			}
			if item >= 0 {
				next[target] = item
			}
			walk(target+1, next)
		}
	}
	walk(0, map[int]int{})
}

func TestGradeDragDropOutOfRange(t *testing.T) {
	dd := builtin(t, question.KindDragDrop, 0)

	_, err := Grade(dd, DragDropAnswer{Placements: map[int]int{4: 0}})
	assert.ErrorIs(t, err, question.ErrOutOfRange)

	_, err = Grade(dd, DragDropAnswer{Placements: map[int]int{0: 9}})
	assert.ErrorIs(t, err, question.ErrOutOfRange)
}

func TestRevealMultipleChoice(t *testing.T) {
	mc := builtin(t, question.KindMultipleChoice, 1).(question.MultipleChoice)

	key := Reveal(mc)
	require.Len(t, key.Choices, 1)
	assert.Equal(t, Choice{Index: 1, Text: "Mars"}, key.Choices[0])
	assert.Equal(t, mc.Options[mc.Correct], key.Choices[0].Text)
}

func TestRevealHotspotReturnsEveryCorrectRegion(t *testing.T) {
	hs := question.Hotspot{ID: "hs", Regions: []question.Region{
		{ID: "a"}, {ID: "b", Label: "B", Correct: true}, {ID: "c", Label: "C", Correct: true},
	}}

	key := Reveal(hs)
	assert.Equal(t, []Choice{{Index: 1, ID: "b", Text: "B"}, {Index: 2, ID: "c", Text: "C"}}, key.Choices)
	assert.Equal(t, HotspotAnswer{RegionID: "b"}, key.Submission())
}

func TestRevealDragDrop(t *testing.T) {
	dd := builtin(t, question.KindDragDrop, 0).(question.DragDrop)

	key := Reveal(dd)
	require.Len(t, key.Placements, len(dd.Targets))
	for i, p := range key.Placements {
		assert.Equal(t, i, p.Target)
		assert.Equal(t, dd.Draggables[dd.Targets[i].Match], p.ItemText)
	}
	assert.Equal(t, "Typography", key.Placements[2].TargetLabel)
}

func TestRevealedSubmissionGradesCorrect(t *testing.T) {
	bank, err := question.NewBank(question.Builtin())
	require.NoError(t, err)

	for _, kind := range bank.Kinds() {
		for _, q := range bank.Questions(kind) {
			res, err := Grade(q, Reveal(q).Submission())
			require.NoError(t, err)
			assert.True(t, res.Correct, q.QuestionID())
		}
	}
}
