package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"classhub_backend/internal/config"
)

// AIService 调用 OpenAI 兼容的 chat completions 接口为开放题打分
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig 配置热更新时替换 AI 接入参数
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GradeResult AI 评分结果
type GradeResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

const gradingSystemPrompt = "你是一名严格但公正的编程课助教，负责批改学生的开放式答题。" +
	"请根据题目要求与评分标准打分，并给出简短、具体、对学生有帮助的反馈。" +
	"你必须只输出一个 JSON 对象，格式为 {\"score\": <0到满分的整数>, \"feedback\": \"<中文反馈>\"}，不要输出任何其他内容。"

// GradeSubmission 请求 AI 对一份提交打分
func (s *AIService) GradeSubmission(ctx context.Context, problem, criteria, submission string, maxScore int) (*GradeResult, error) {
	userPrompt := fmt.Sprintf(
		"题目描述：\n%s\n\n评分标准：\n%s\n\n满分：%d\n\n学生提交：\n%s",
		problem, criteria, maxScore, submission,
	)

	content, err := s.chat(ctx, []AIChatMessage{
		{Role: "system", Content: gradingSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return nil, err
	}

	result, err := ParseGradeResponse(content, maxScore)
	if err != nil {
		return nil, fmt.Errorf("解析 AI 评分结果失败: %w", err)
	}
	return result, nil
}

func (s *AIService) chat(ctx context.Context, messages []AIChatMessage) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	reqBody := map[string]interface{}{
		"model":    cfg.Model,
		"messages": messages,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI API returned empty choices")
	}
	return completion.Choices[0].Message.Content, nil
}

var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseGradeResponse 从模型输出中提取评分 JSON。
// 模型偶尔会把 JSON 包在 markdown 代码块或说明文字里，这里做宽松提取，
// 分数越界时钳制到 [0, maxScore]。
func ParseGradeResponse(content string, maxScore int) (*GradeResult, error) {
	raw := strings.TrimSpace(content)
	if match := jsonBlockRe.FindString(raw); match != "" {
		raw = match
	}

	var parsed struct {
		Score    json.Number `json:"score"`
		Feedback string      `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}

	scoreF, err := parsed.Score.Float64()
	if err != nil {
		scoreF, err = strconv.ParseFloat(strings.TrimSpace(parsed.Score.String()), 64)
		if err != nil {
			return nil, err
		}
	}

	score := int(scoreF + 0.5)
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	return &GradeResult{Score: score, Feedback: parsed.Feedback}, nil
}
