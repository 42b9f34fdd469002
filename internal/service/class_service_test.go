package service

import (
	"testing"

	"classhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

// 任课老师与管理员不查成员表即视为班级成员，这也决定了他们可以提交测验自测
func TestAuthorizeMemberOwnerAndAdmin(t *testing.T) {
	class := &model.Class{TeacherID: 7}
	class.ID = "c1"

	s := &ClassService{}

	assert.NoError(t, s.authorizeMember(class, 7, model.Teacher))
	assert.NoError(t, s.authorizeMember(class, 99, model.Admin))
}

func TestMemberCacheKey(t *testing.T) {
	assert.Equal(t, "classhub:member:c1:42", memberCacheKey("c1", 42))
	assert.NotEqual(t, memberCacheKey("c1", 42), memberCacheKey("c2", 42))
	assert.NotEqual(t, memberCacheKey("c1", 42), memberCacheKey("c1", 43))
}
