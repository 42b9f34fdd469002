package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrClassNotFound      = errors.New("class not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrProblemNotFound    = errors.New("problem not found")
	ErrProblemHidden      = errors.New("problem not available")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrNotTeacher         = errors.New("selected user is not a teacher")
)

// AttemptsExhaustedError 测验提交次数用尽。携带已用次数与上限，
// 便于前端渲染剩余次数。
type AttemptsExhaustedError struct {
	AttemptsUsed int
	MaxAttempts  int
}

func (e *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("已达到最大提交次数（%d 次）", e.MaxAttempts)
}
