package service

import (
	"context"
	"sort"
	"time"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
)

// In-memory store fakes shared by the service tests.

type fakeStatusStore struct {
	status model.ExamStatus
}

func (f *fakeStatusStore) Get(ctx context.Context) (*model.ExamStatus, error) {
	st := f.status
	return &st, nil
}

func (f *fakeStatusStore) Activate(ctx context.Context, startTime time.Time, durationMinutes int) error {
	f.status = model.ExamStatus{IsActive: true, StartTime: &startTime, DurationMinutes: durationMinutes}
	return nil
}

func (f *fakeStatusStore) Deactivate(ctx context.Context) error {
	f.status.IsActive = false
	f.status.StartTime = nil
	return nil
}

type fakeQuestionStore struct {
	questions []model.Question
	nextID    int64
}

func (f *fakeQuestionStore) ReplaceAll(ctx context.Context, questions []model.Question) (int, error) {
	f.questions = nil
	f.nextID = 0
	for _, q := range questions {
		f.nextID++
		q.ID = f.nextID
		f.questions = append(f.questions, q)
	}
	return len(f.questions), nil
}

func (f *fakeQuestionStore) List(ctx context.Context) ([]model.Question, error) {
	out := make([]model.Question, len(f.questions))
	copy(out, f.questions)
	return out, nil
}

func (f *fakeQuestionStore) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQuestionStore) Count(ctx context.Context) (int, error) {
	return len(f.questions), nil
}

type fakeStudentStore struct {
	students map[string]*model.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[string]*model.Student)}
}

func (f *fakeStudentStore) Create(ctx context.Context, s *model.Student) error {
	if _, ok := f.students[s.StudentID]; ok {
		return repository.ErrDuplicateStudent
	}
	cp := *s
	f.students[s.StudentID] = &cp
	return nil
}

func (f *fakeStudentStore) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	s, ok := f.students[studentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) List(ctx context.Context) ([]model.Student, error) {
	ids := make([]string, 0, len(f.students))
	for id := range f.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Student, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.students[id])
	}
	return out, nil
}

func (f *fakeStudentStore) TouchLastConnected(ctx context.Context, studentID string, t time.Time) error {
	if s, ok := f.students[studentID]; ok {
		s.LastConnectedAt = t
	}
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, studentID string) error {
	delete(f.students, studentID)
	return nil
}

func (f *fakeStudentStore) Count(ctx context.Context) (int, error) {
	return len(f.students), nil
}

type answerKey struct {
	studentID  string
	questionID int64
}

type fakeAnswerStore struct {
	answers map[answerKey]model.Answer
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{answers: make(map[answerKey]model.Answer)}
}

func (f *fakeAnswerStore) Upsert(ctx context.Context, a *model.Answer) error {
	f.answers[answerKey{a.StudentID, a.QuestionID}] = *a
	return nil
}

func (f *fakeAnswerStore) MapByStudent(ctx context.Context, studentID string) (map[int64]string, error) {
	out := make(map[int64]string)
	for k, a := range f.answers {
		if k.studentID == studentID {
			out[k.questionID] = a.SelectedAnswer
		}
	}
	return out, nil
}

func (f *fakeAnswerStore) CountByStudent(ctx context.Context, studentID string) (int, error) {
	n := 0
	for k := range f.answers {
		if k.studentID == studentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAnswerStore) ListGroupedByStudent(ctx context.Context) ([]model.Submission, error) {
	grouped := make(map[string][]model.Answer)
	for _, a := range f.answers {
		grouped[a.StudentID] = append(grouped[a.StudentID], a)
	}
	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Submission, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Submission{
			StudentID:     id,
			Answers:       grouped[id],
			TotalAnswered: len(grouped[id]),
		})
	}
	return out, nil
}

type fakeScreenshotStore struct {
	shots []model.Screenshot
}

func (f *fakeScreenshotStore) Create(ctx context.Context, s *model.Screenshot) error {
	f.shots = append(f.shots, *s)
	return nil
}

func (f *fakeScreenshotStore) ListByStudent(ctx context.Context, studentID string) ([]model.Screenshot, error) {
	var out []model.Screenshot
	for _, s := range f.shots {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, name string, data []byte) error {
	f.blobs[name] = data
	return nil
}

func (f *fakeBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for name := range f.blobs {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

type memorySessionStore struct {
	sessions map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]string)}
}

func (m *memorySessionStore) Put(ctx context.Context, studentID, jti string, ttl time.Duration) error {
	m.sessions[studentID] = jti
	return nil
}

func (m *memorySessionStore) Get(ctx context.Context, studentID string) (string, error) {
	jti, ok := m.sessions[studentID]
	if !ok {
		return "", ErrNoSession
	}
	return jti, nil
}

func (m *memorySessionStore) Del(ctx context.Context, studentID string) error {
	delete(m.sessions, studentID)
	return nil
}

type recordingPublisher struct {
	events []ExamEvent
}

func (r *recordingPublisher) PublishExamEvent(ctx context.Context, ev ExamEvent) error {
	r.events = append(r.events, ev)
	return nil
}
