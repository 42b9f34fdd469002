package service

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"classhub_backend/internal/model"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/util"
	"classhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type QuizService struct {
	quizRepo     *repository.QuizRepository
	attemptRepo  *repository.QuizAttemptRepository
	classService *ClassService
}

func NewQuizService(quizRepo *repository.QuizRepository, attemptRepo *repository.QuizAttemptRepository, classService *ClassService) *QuizService {
	return &QuizService{quizRepo: quizRepo, attemptRepo: attemptRepo, classService: classService}
}

type QuizQuestionInput struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
}

type CreateQuizInput struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	TimeLimit    int                 `json:"timeLimit"`
	PassingScore *int                `json:"passingScore"`
	MaxAttempts  int                 `json:"maxAttempts"`
	IsPublished  bool                `json:"isPublished"`
	Questions    []QuizQuestionInput `json:"questions"`
}

// CreateQuiz 老师在自己的班级内创建测验
func (s *QuizService) CreateQuiz(classID string, userID uint, role model.UserRole, input CreateQuizInput) (*model.Quiz, error) {
	if _, err := s.classService.AuthorizeOwner(classID, userID, role); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		ClassID:     classID,
		Title:       input.Title,
		Description: input.Description,
		TimeLimit:   input.TimeLimit,
		MaxAttempts: input.MaxAttempts,
		IsPublished: input.IsPublished,
		CreatedBy:   userID,
	}
	if quiz.MaxAttempts < 1 {
		quiz.MaxAttempts = 1
	}
	if input.PassingScore != nil {
		quiz.PassingScore = *input.PassingScore
	} else {
		quiz.PassingScore = 60
	}

	quiz.Questions = buildQuestions(input.Questions)

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	zap.L().Info("quiz created", zap.String("quizID", quiz.ID), zap.String("classID", classID))
	return quiz, nil
}

func buildQuestions(inputs []QuizQuestionInput) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(inputs))
	for i, q := range inputs {
		opts, _ := json.Marshal(q.Options)
		questions = append(questions, model.QuizQuestion{
			Text:          q.Text,
			Options:       opts,
			CorrectAnswer: q.CorrectAnswer,
			Position:      i,
		})
	}
	return questions
}

type UpdateQuizInput struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	TimeLimit    *int                `json:"timeLimit"`
	PassingScore *int                `json:"passingScore"`
	MaxAttempts  *int                `json:"maxAttempts"`
	IsPublished  *bool               `json:"isPublished"`
	Questions    []QuizQuestionInput `json:"questions"`
}

func (s *QuizService) UpdateQuiz(quizID string, userID uint, role model.UserRole, input UpdateQuizInput) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	if _, err := s.classService.AuthorizeOwner(quiz.ClassID, userID, role); err != nil {
		return nil, err
	}

	if input.Title != "" {
		quiz.Title = input.Title
	}
	if input.Description != "" {
		quiz.Description = input.Description
	}
	if input.TimeLimit != nil {
		quiz.TimeLimit = *input.TimeLimit
	}
	if input.PassingScore != nil {
		quiz.PassingScore = *input.PassingScore
	}
	if input.MaxAttempts != nil && *input.MaxAttempts >= 1 {
		quiz.MaxAttempts = *input.MaxAttempts
	}
	if input.IsPublished != nil {
		quiz.IsPublished = *input.IsPublished
	}

	if input.Questions != nil {
		if err := s.quizRepo.ReplaceQuestions(quizID, buildQuestions(input.Questions)); err != nil {
			return nil, err
		}
	}

	quiz.Questions = nil
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return s.quizRepo.FindByID(quizID)
}

func (s *QuizService) DeleteQuiz(quizID string, userID uint, role model.UserRole) error {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return util.ErrQuizNotFound
	}
	if _, err := s.classService.AuthorizeOwner(quiz.ClassID, userID, role); err != nil {
		return err
	}
	return s.quizRepo.Delete(quizID)
}

// QuestionView 学生答题视图，永远不包含正确答案
type QuestionView struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Position int      `json:"position"`
}

// QuizTakingView 学生开始答题时返回的测验结构，附带本人的作答情况
type QuizTakingView struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	TimeLimit        int                 `json:"timeLimit"`
	PassingScore     int                 `json:"passingScore"`
	MaxAttempts      int                 `json:"maxAttempts"`
	AttemptsUsed     int                 `json:"attemptsUsed"`
	CanRetake        bool                `json:"canRetake"`
	AlreadySubmitted bool                `json:"alreadySubmitted"`
	BestScore        int                 `json:"bestScore"`
	Attempts         []model.QuizAttempt `json:"attempts,omitempty"` // 历史提交，分数降序
	QuestionCount    int                 `json:"questionCount"`
	Questions        []QuestionView      `json:"questions"`
}

// QuizSummaryView 学生列表视图，不含题目
type QuizSummaryView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TimeLimit     int       `json:"timeLimit"`
	PassingScore  int       `json:"passingScore"`
	MaxAttempts   int       `json:"maxAttempts"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func quizSummary(quiz *model.Quiz) QuizSummaryView {
	return QuizSummaryView{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		TimeLimit:     quiz.TimeLimit,
		PassingScore:  quiz.PassingScore,
		MaxAttempts:   quiz.MaxAttempts,
		QuestionCount: len(quiz.Questions),
		CreatedAt:     quiz.CreatedAt,
	}
}

// stripQuestions 构造去除答案的题目视图
func stripQuestions(questions []model.QuizQuestion) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			ID:       q.ID,
			Text:     q.Text,
			Options:  q.OptionList(),
			Position: q.Position,
		})
	}
	return views
}

// ListQuizzes 班级内的测验列表。学生只能看到已发布的，且列表中不含题目。
func (s *QuizService) ListQuizzes(classID string, userID uint, role model.UserRole) (interface{}, error) {
	class, err := s.classService.AuthorizeMember(classID, userID, role)
	if err != nil {
		return nil, err
	}

	isOwner := role == model.Admin || class.TeacherID == userID
	quizzes, err := s.quizRepo.ListByClass(classID, !isOwner)
	if err != nil {
		return nil, err
	}

	if isOwner {
		return quizzes, nil
	}

	views := make([]QuizSummaryView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, quizSummary(&quizzes[i]))
	}
	return views, nil
}

func (s *QuizService) takingView(quiz *model.Quiz, userID uint) (*QuizTakingView, error) {
	attempts, err := s.attemptRepo.ListByQuizAndUser(quiz.ID, userID)
	if err != nil {
		return nil, err
	}
	history := summarizeAttempts(attempts, quiz.MaxAttempts)
	return &QuizTakingView{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TimeLimit:        quiz.TimeLimit,
		PassingScore:     quiz.PassingScore,
		MaxAttempts:      quiz.MaxAttempts,
		AttemptsUsed:     history.AttemptsUsed,
		CanRetake:        history.CanRetake,
		AlreadySubmitted: history.AttemptsUsed > 0,
		BestScore:        history.BestScore,
		Attempts:         history.Attempts,
		QuestionCount:    len(quiz.Questions),
		Questions:        stripQuestions(quiz.Questions),
	}, nil
}

// GetQuiz 获取单个测验。老师拿到完整结构，学生拿到去答案视图。
func (s *QuizService) GetQuiz(quizID string, userID uint, role model.UserRole) (interface{}, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}

	class, err := s.classService.AuthorizeMember(quiz.ClassID, userID, role)
	if err != nil {
		return nil, err
	}

	if role == model.Admin || class.TeacherID == userID {
		return quiz, nil
	}

	if !quiz.IsPublished {
		return nil, util.ErrQuizNotFound
	}
	return s.takingView(quiz, userID)
}

// scoreAnswers 按题目顺序逐位比对答案。
// answers 比题目少时缺位按错算，比题目多时多余部分忽略。
// 分数为正确率四舍五入后的百分比，没有题目时为 0。
func scoreAnswers(questions []model.QuizQuestion, answers []int) (correct, score int) {
	total := len(questions)
	if total == 0 {
		return 0, 0
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	score = int(math.Round(float64(correct) / float64(total) * 100))
	return correct, score
}

type SubmitQuizInput struct {
	Answers []int `json:"answers"`
}

// SubmitAttempt 提交一次测验作答。
// 次数校验通过后判分并写入不可变的提交记录。
func (s *QuizService) SubmitAttempt(quizID string, userID uint, role model.UserRole, input SubmitQuizInput) (*model.QuizAttempt, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}

	// 班级成员均可提交：学生记录成绩，任课老师与管理员可自测
	if _, err := s.classService.AuthorizeMember(quiz.ClassID, userID, role); err != nil {
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotFound
	}

	used, err := s.attemptRepo.CountByQuizAndUser(quizID, userID)
	if err != nil {
		return nil, err
	}
	if int(used) >= quiz.MaxAttempts {
		monitoring.RecordQuizSubmission("rejected")
		return nil, &util.AttemptsExhaustedError{AttemptsUsed: int(used), MaxAttempts: quiz.MaxAttempts}
	}

	correct, score := scoreAnswers(quiz.Questions, input.Answers)
	passed := score >= quiz.PassingScore

	answersJSON, err := json.Marshal(input.Answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:         quizID,
		UserID:         userID,
		Answers:        answersJSON,
		CorrectCount:   correct,
		TotalQuestions: len(quiz.Questions),
		Score:          score,
		Passed:         passed,
		AttemptNumber:  int(used) + 1,
		CompletedAt:    time.Now(),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	if passed {
		monitoring.RecordQuizSubmission("passed")
	} else {
		monitoring.RecordQuizSubmission("failed")
	}
	zap.L().Info("quiz attempt submitted",
		zap.String("quizID", quizID),
		zap.Uint("userID", userID),
		zap.Int("score", score),
		zap.Bool("passed", passed),
		zap.Int("attemptNumber", attempt.AttemptNumber))

	return attempt, nil
}

// MyAttemptsResult 学生视角的历史成绩汇总
type MyAttemptsResult struct {
	Attempts     []model.QuizAttempt `json:"attempts"`
	AttemptsUsed int                 `json:"attemptsUsed"`
	MaxAttempts  int                 `json:"maxAttempts"`
	CanRetake    bool                `json:"canRetake"`
	BestScore    int                 `json:"bestScore"`
}

// GetMyAttempts 学生查看自己的提交历史，按分数从高到低
func (s *QuizService) GetMyAttempts(quizID string, userID uint, role model.UserRole) (*MyAttemptsResult, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	if _, err := s.classService.AuthorizeMember(quiz.ClassID, userID, role); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.ListByQuizAndUser(quizID, userID)
	if err != nil {
		return nil, err
	}

	return summarizeAttempts(attempts, quiz.MaxAttempts), nil
}

// summarizeAttempts 汇总一个学生的提交记录，按分数降序排列后取最高分
func summarizeAttempts(attempts []model.QuizAttempt, maxAttempts int) *MyAttemptsResult {
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Score > attempts[j].Score
	})

	best := 0
	if len(attempts) > 0 {
		best = attempts[0].Score
	}
	return &MyAttemptsResult{
		Attempts:     attempts,
		AttemptsUsed: len(attempts),
		MaxAttempts:  maxAttempts,
		CanRetake:    len(attempts) < maxAttempts,
		BestScore:    best,
	}
}

// AttemptResultView 老师视角的单条提交记录，带提交人信息
type AttemptResultView struct {
	model.QuizAttempt
	Student model.UserBrief `json:"student"`
}

// GetQuizResults 老师查看全部学生的提交记录，按提交先后排列
func (s *QuizService) GetQuizResults(quizID string, userID uint, role model.UserRole) ([]AttemptResultView, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	if _, err := s.classService.AuthorizeOwner(quiz.ClassID, userID, role); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	views := make([]AttemptResultView, 0, len(attempts))
	for _, a := range attempts {
		view := AttemptResultView{QuizAttempt: a}
		if a.User != nil {
			view.Student = a.User.Brief()
		}
		view.User = nil
		views = append(views, view)
	}
	return views, nil
}
