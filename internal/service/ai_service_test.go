package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGradeResponse(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		maxScore     int
		wantScore    int
		wantFeedback string
		wantErr      bool
	}{
		{
			name:         "纯 JSON",
			content:      `{"score": 85, "feedback": "思路清晰"}`,
			maxScore:     100,
			wantScore:    85,
			wantFeedback: "思路清晰",
		},
		{
			name:         "markdown 代码块包裹",
			content:      "```json\n{\"score\": 70, \"feedback\": \"基本正确\"}\n```",
			maxScore:     100,
			wantScore:    70,
			wantFeedback: "基本正确",
		},
		{
			name:         "JSON 前后夹杂说明文字",
			content:      "这是评分结果：{\"score\": 92, \"feedback\": \"很好\"} 以上。",
			maxScore:     100,
			wantScore:    92,
			wantFeedback: "很好",
		},
		{
			name:      "小数分数四舍五入",
			content:   `{"score": 87.6, "feedback": "ok"}`,
			maxScore:  100,
			wantScore: 88,
		},
		{
			name:      "超出上限钳制到 maxScore",
			content:   `{"score": 150, "feedback": "ok"}`,
			maxScore:  100,
			wantScore: 100,
		},
		{
			name:      "负分钳制到 0",
			content:   `{"score": -10, "feedback": "ok"}`,
			maxScore:  100,
			wantScore: 0,
		},
		{
			name:      "自定义满分",
			content:   `{"score": 80, "feedback": "ok"}`,
			maxScore:  50,
			wantScore: 50,
		},
		{
			name:     "非 JSON 内容报错",
			content:  "抱歉，我无法评分。",
			maxScore: 100,
			wantErr:  true,
		},
		{
			name:     "空内容报错",
			content:  "",
			maxScore: 100,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseGradeResponse(tt.content, tt.maxScore)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			if tt.wantFeedback != "" {
				assert.Equal(t, tt.wantFeedback, result.Feedback)
			}
		})
	}
}
