package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cognisync/cognisync-api/internal/constants"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// LoadEstimator scores how demanding a task is on a 1..10 scale.
type LoadEstimator interface {
	EstimateLoad(ctx context.Context, task *models.Task) (int, error)
}

// HeuristicEstimator scores tasks from their text length and due date.
type HeuristicEstimator struct {
	now func() time.Time
}

func NewHeuristicEstimator() *HeuristicEstimator {
	return &HeuristicEstimator{now: time.Now}
}

func (e *HeuristicEstimator) EstimateLoad(_ context.Context, task *models.Task) (int, error) {
	return heuristicLoad(task, e.now()), nil
}

func heuristicLoad(task *models.Task, now time.Time) int {
	score := 3

	words := len(strings.Fields(task.Name + " " + task.Description))
	switch {
	case words > 120:
		score += 3
	case words > 40:
		score += 2
	case words > 12:
		score++
	}

	if task.DueDate != nil {
		remaining := task.DueDate.Sub(now)
		switch {
		case remaining < 0:
			score += 4
		case remaining <= 24*time.Hour:
			score += 3
		case remaining <= 72*time.Hour:
			score += 2
		case remaining <= 7*24*time.Hour:
			score++
		}
	}

	if task.IsUpcoming {
		score++
	}

	return clampLoad(score)
}

func clampLoad(score int) int {
	if score < constants.MinCognitiveLoad {
		return constants.MinCognitiveLoad
	}
	if score > constants.MaxCognitiveLoad {
		return constants.MaxCognitiveLoad
	}
	return score
}

// OpenAIEstimator asks a chat model for a score and falls back to the
// heuristic when the call or the reply is unusable.
type OpenAIEstimator struct {
	client   *openai.Client
	model    string
	fallback LoadEstimator
	log      *zap.Logger
}

// NewOpenAIEstimator creates an estimator backed by client.
func NewOpenAIEstimator(client *openai.Client, model string, log *zap.Logger) *OpenAIEstimator {
	if model == "" {
		model = openai.GPT4oMini
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenAIEstimator{
		client:   client,
		model:    model,
		fallback: NewHeuristicEstimator(),
		log:      log,
	}
}

// NewLoadEstimator returns the OpenAI estimator when apiKey is set and the
// heuristic otherwise.
func NewLoadEstimator(apiKey, model string, log *zap.Logger) LoadEstimator {
	if apiKey == "" {
		return NewHeuristicEstimator()
	}
	return NewOpenAIEstimator(openai.NewClient(apiKey), model, log)
}

var firstInteger = regexp.MustCompile(`-?\d+`)

func (e *OpenAIEstimator) EstimateLoad(ctx context.Context, task *models.Task) (int, error) {
	score, err := e.ask(ctx, task)
	if err != nil {
		e.log.Warn("openai load estimate failed", zap.Uint64("task_id", task.ID), zap.Error(err))
		return e.fallback.EstimateLoad(ctx, task)
	}
	return clampLoad(score), nil
}

func (e *OpenAIEstimator) ask(ctx context.Context, task *models.Task) (int, error) {
	dueDate := "none"
	if task.DueDate != nil {
		dueDate = task.DueDate.Format("2006-01-02")
	}

	prompt := fmt.Sprintf(`Rate the cognitive load of the following task for a neurodivergent employee on a scale from 1 (trivial) to 10 (overwhelming).

Today: %s
Task: %s
Description: %s
Due date: %s

Reply with a single integer only.`, time.Now().Format("2006-01-02"), task.Name, task.Description, dueDate)

	resp, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0,
		},
	)
	if err != nil {
		return 0, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	match := firstInteger.FindString(content)
	if match == "" {
		return 0, fmt.Errorf("no score in AI response: %q", content)
	}

	return strconv.Atoi(match)
}

// InsightService serves the lightweight recommendation endpoints.
type InsightService struct{}

func NewInsightService() *InsightService {
	return &InsightService{}
}

// SuggestTaskOrder orders task ids by ascending load. Equal loads keep their
// input order.
func (s *InsightService) SuggestTaskOrder(taskIDs []uint64, loads []int) ([]uint64, error) {
	if len(taskIDs) != len(loads) {
		return nil, ErrLengthMismatch
	}

	indices := make([]int, len(taskIDs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return loads[indices[a]] < loads[indices[b]]
	})

	ordered := make([]uint64, len(taskIDs))
	for i, idx := range indices {
		ordered[i] = taskIDs[idx]
	}
	return ordered, nil
}

// SensoryAlert returns the highest sensitivity reading.
func (s *InsightService) SensoryAlert(readings map[string]int) (int, error) {
	if len(readings) == 0 {
		return 0, ErrNoSensoryReadings
	}

	first := true
	var level int
	for _, value := range readings {
		if first || value > level {
			level = value
			first = false
		}
	}
	return level, nil
}
