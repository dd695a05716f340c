package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/fadilmartias/mockmate/internal/dto"
	"github.com/fadilmartias/mockmate/internal/model"
	"github.com/fadilmartias/mockmate/internal/service"
	"github.com/fadilmartias/mockmate/internal/util"
	"github.com/google/uuid"
)

type fakeTextGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type fakeStructuredGenerator struct {
	object   string
	err      error
	requests []service.ObjectRequest
}

func (f *fakeStructuredGenerator) GenerateObject(_ context.Context, req service.ObjectRequest, out any) error {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.object), out)
}

type memoryStore struct {
	mu         sync.Mutex
	interviews []model.Interview
	feedback   map[string]model.Feedback
	writes     int
	writeErr   error
	readErr    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{feedback: map[string]model.Feedback{}}
}

func (s *memoryStore) CreateInterview(_ context.Context, interview *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	if interview.ID == "" {
		interview.ID = uuid.NewString()
	}
	s.writes++
	s.interviews = append(s.interviews, *interview)
	return nil
}

func (s *memoryStore) FindInterviewByID(_ context.Context, id string) (*model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	for _, i := range s.interviews {
		if i.ID == id {
			found := i
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) sortedDesc(keep func(model.Interview) bool) []model.Interview {
	out := []model.Interview{}
	for _, i := range s.interviews {
		if keep(i) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (s *memoryStore) FindLatestInterviews(_ context.Context, excludeUserID string, limit int) ([]model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := s.sortedDesc(func(i model.Interview) bool { return i.Finalized && i.UserID != excludeUserID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) FindInterviewsByUserID(_ context.Context, userID string) ([]model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.sortedDesc(func(i model.Interview) bool { return i.UserID == userID }), nil
}

func (s *memoryStore) SaveFeedback(_ context.Context, feedback *model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	s.writes++
	s.feedback[feedback.ID] = *feedback
	return nil
}

func (s *memoryStore) FindFeedbackByInterviewAndUser(_ context.Context, interviewID, userID string) (*model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	for _, f := range s.feedback {
		if f.InterviewID == interviewID && f.UserID == userID {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

func jsonUnmarshal(s string, out any) error {
	return json.Unmarshal([]byte(s), out)
}

func validateFeedbackObject(obj dto.FeedbackObject) error {
	return util.ValidateStruct(obj)
}
