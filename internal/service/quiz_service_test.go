package service

import (
	"encoding/json"
	"testing"

	"classhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeQuestions(correctAnswers ...int) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(correctAnswers))
	for i, ca := range correctAnswers {
		questions = append(questions, model.QuizQuestion{
			Text:          "题目",
			CorrectAnswer: ca,
			Position:      i,
		})
	}
	return questions
}

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name        string
		questions   []model.QuizQuestion
		answers     []int
		wantCorrect int
		wantScore   int
	}{
		{
			name:        "全部答对",
			questions:   makeQuestions(0, 1, 2, 3),
			answers:     []int{0, 1, 2, 3},
			wantCorrect: 4,
			wantScore:   100,
		},
		{
			name:        "部分答对",
			questions:   makeQuestions(0, 1, 2, 3),
			answers:     []int{0, 1, 0, 3},
			wantCorrect: 3,
			wantScore:   75,
		},
		{
			name:        "全部答错",
			questions:   makeQuestions(0, 1, 2),
			answers:     []int{1, 2, 0},
			wantCorrect: 0,
			wantScore:   0,
		},
		{
			name:        "答案不足按错算",
			questions:   makeQuestions(0, 1, 2, 3),
			answers:     []int{0, 1},
			wantCorrect: 2,
			wantScore:   50,
		},
		{
			name:        "多余答案忽略",
			questions:   makeQuestions(0, 1),
			answers:     []int{0, 1, 2, 3, 0},
			wantCorrect: 2,
			wantScore:   100,
		},
		{
			name:        "空答案",
			questions:   makeQuestions(0, 1, 2),
			answers:     nil,
			wantCorrect: 0,
			wantScore:   0,
		},
		{
			name:        "没有题目得零分",
			questions:   nil,
			answers:     []int{0, 1},
			wantCorrect: 0,
			wantScore:   0,
		},
		{
			name:        "三分之一四舍五入到33",
			questions:   makeQuestions(0, 1, 2),
			answers:     []int{0, 9, 9},
			wantCorrect: 1,
			wantScore:   33,
		},
		{
			name:        "三分之二四舍五入到67",
			questions:   makeQuestions(0, 1, 2),
			answers:     []int{0, 1, 9},
			wantCorrect: 2,
			wantScore:   67,
		},
		{
			name:        "八分之一四舍五入进位到13",
			questions:   makeQuestions(0, 0, 0, 0, 0, 0, 0, 0),
			answers:     []int{0, 1, 1, 1, 1, 1, 1, 1},
			wantCorrect: 1,
			wantScore:   13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, score := scoreAnswers(tt.questions, tt.answers)
			assert.Equal(t, tt.wantCorrect, correct)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestSummarizeAttempts(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 40, AttemptNumber: 1},
		{Score: 90, AttemptNumber: 2},
		{Score: 70, AttemptNumber: 3},
	}

	result := summarizeAttempts(attempts, 5)
	require.NotNil(t, result)

	assert.Equal(t, 3, result.AttemptsUsed)
	assert.Equal(t, 5, result.MaxAttempts)
	assert.True(t, result.CanRetake)
	assert.Equal(t, 90, result.BestScore)

	// 按分数降序排列
	require.Len(t, result.Attempts, 3)
	assert.Equal(t, 90, result.Attempts[0].Score)
	assert.Equal(t, 70, result.Attempts[1].Score)
	assert.Equal(t, 40, result.Attempts[2].Score)
}

func TestSummarizeAttemptsExhausted(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 50, AttemptNumber: 1},
		{Score: 60, AttemptNumber: 2},
	}

	result := summarizeAttempts(attempts, 2)
	assert.False(t, result.CanRetake)
	assert.Equal(t, 60, result.BestScore)
}

func TestSummarizeAttemptsEmpty(t *testing.T) {
	result := summarizeAttempts(nil, 3)
	assert.Equal(t, 0, result.AttemptsUsed)
	assert.True(t, result.CanRetake)
	assert.Equal(t, 0, result.BestScore)
	assert.Empty(t, result.Attempts)
}

func TestSummarizeAttemptsStableForEqualScores(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 80, AttemptNumber: 1},
		{Score: 80, AttemptNumber: 2},
	}

	result := summarizeAttempts(attempts, 3)
	// 同分保持先后顺序
	assert.Equal(t, 1, result.Attempts[0].AttemptNumber)
	assert.Equal(t, 2, result.Attempts[1].AttemptNumber)
}

func TestStripQuestions(t *testing.T) {
	questions := []model.QuizQuestion{
		{
			Text:          "1+1=?",
			Options:       []byte(`["1","2","3"]`),
			CorrectAnswer: 1,
			Position:      0,
		},
		{
			Text:          "2+2=?",
			Options:       []byte(`["3","4"]`),
			CorrectAnswer: 1,
			Position:      1,
		},
	}
	questions[0].ID = "q1"
	questions[1].ID = "q2"

	views := stripQuestions(questions)
	require.Len(t, views, 2)

	assert.Equal(t, "q1", views[0].ID)
	assert.Equal(t, "1+1=?", views[0].Text)
	assert.Equal(t, []string{"1", "2", "3"}, views[0].Options)
	assert.Equal(t, 0, views[0].Position)
	assert.Equal(t, []string{"3", "4"}, views[1].Options)
}

func TestStripQuestionsEmpty(t *testing.T) {
	views := stripQuestions(nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestQuizTakingViewCarriesAttemptState(t *testing.T) {
	attempts := []model.QuizAttempt{
		{Score: 40, AttemptNumber: 1},
		{Score: 90, AttemptNumber: 2},
	}
	history := summarizeAttempts(attempts, 3)

	view := QuizTakingView{
		ID:               "q1",
		MaxAttempts:      3,
		AttemptsUsed:     history.AttemptsUsed,
		CanRetake:        history.CanRetake,
		AlreadySubmitted: history.AttemptsUsed > 0,
		BestScore:        history.BestScore,
		Attempts:         history.Attempts,
	}

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, true, payload["canRetake"])
	assert.Equal(t, true, payload["alreadySubmitted"])
	assert.Equal(t, float64(90), payload["bestScore"])
	assert.Equal(t, float64(2), payload["attemptsUsed"])
	require.Contains(t, payload, "attempts")
	assert.Len(t, payload["attempts"], 2)
}

func TestQuizTakingViewFirstAttempt(t *testing.T) {
	history := summarizeAttempts(nil, 3)

	view := QuizTakingView{
		MaxAttempts:      3,
		AttemptsUsed:     history.AttemptsUsed,
		CanRetake:        history.CanRetake,
		AlreadySubmitted: history.AttemptsUsed > 0,
		BestScore:        history.BestScore,
	}

	assert.True(t, view.CanRetake)
	assert.False(t, view.AlreadySubmitted)
	assert.Equal(t, 0, view.BestScore)
}

func TestQuizSummaryOmitsQuestions(t *testing.T) {
	quiz := &model.Quiz{
		Title:        "第一单元",
		PassingScore: 60,
		MaxAttempts:  2,
		Questions: []model.QuizQuestion{
			{Text: "1+1=?", CorrectAnswer: 1},
			{Text: "2+2=?", CorrectAnswer: 0},
		},
	}
	quiz.ID = "q1"

	summary := quizSummary(quiz)
	assert.Equal(t, "q1", summary.ID)
	assert.Equal(t, 2, summary.QuestionCount)

	raw, err := json.Marshal(summary)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.NotContains(t, payload, "questions")
	assert.NotContains(t, string(raw), "correctAnswer")
}

func TestBuildQuestions(t *testing.T) {
	inputs := []QuizQuestionInput{
		{Text: "第一题", Options: []string{"A", "B"}, CorrectAnswer: 0},
		{Text: "第二题", Options: []string{"C", "D", "E"}, CorrectAnswer: 2},
	}

	questions := buildQuestions(inputs)
	require.Len(t, questions, 2)

	assert.Equal(t, "第一题", questions[0].Text)
	assert.Equal(t, 0, questions[0].Position)
	assert.Equal(t, 1, questions[1].Position)
	assert.Equal(t, 2, questions[1].CorrectAnswer)
	assert.Equal(t, []string{"C", "D", "E"}, questions[1].OptionList())
}
