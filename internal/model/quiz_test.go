package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizQuestionOptionList(t *testing.T) {
	q := &QuizQuestion{Options: []byte(`["甲","乙","丙"]`)}
	assert.Equal(t, []string{"甲", "乙", "丙"}, q.OptionList())
}

func TestQuizQuestionOptionListInvalid(t *testing.T) {
	q := &QuizQuestion{Options: []byte(`not json`)}
	assert.Empty(t, q.OptionList())

	empty := &QuizQuestion{}
	assert.Empty(t, empty.OptionList())
}

func TestQuizAttemptAnswerList(t *testing.T) {
	a := &QuizAttempt{Answers: []byte(`[0,2,1,3]`)}
	assert.Equal(t, []int{0, 2, 1, 3}, a.AnswerList())
}

func TestQuizAttemptAnswerListEmpty(t *testing.T) {
	a := &QuizAttempt{}
	assert.Empty(t, a.AnswerList())
}
