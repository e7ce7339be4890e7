package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
)

type fakeRepo struct {
	quizzes   map[uuid.UUID]*Quiz
	attempts  []QuizAttempt
	attemptFn func(*QuizAttempt) error
}

func newFakeRepo(quizzes ...*Quiz) *fakeRepo {
	f := &fakeRepo{quizzes: map[uuid.UUID]*Quiz{}}
	for _, q := range quizzes {
		f.quizzes[q.ID] = q
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Quiz, error) {
	return f.quizzes[id], nil
}

func (f *fakeRepo) CreateAttempt(_ context.Context, a *QuizAttempt) error {
	if f.attemptFn != nil {
		if err := f.attemptFn(a); err != nil {
			return err
		}
	}
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeRepo) ListAttempts(_ context.Context, userID, quizID uuid.UUID) ([]QuizAttempt, error) {
	var out []QuizAttempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		a := f.attempts[i]
		if a.UserID == userID && a.QuizID == quizID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCompleter struct {
	lessons  []uuid.UUID
	err      error
	checkErr error
}

func (f *fakeCompleter) CheckLesson(_ context.Context, _ uuid.UUID, lessonID uuid.UUID) (*progress.LessonRef, error) {
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &progress.LessonRef{LessonID: lessonID, IsPublished: true}, nil
}

func (f *fakeCompleter) CompleteLesson(_ context.Context, _ uuid.UUID, lessonID uuid.UUID) (*progress.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lessons = append(f.lessons, lessonID)
	return &progress.Snapshot{Percent: 50}, nil
}

func newTestService(repo QuizRepository, completer LessonCompleter) *quizService {
	return &quizService{
		repo:      repo,
		completer: completer,
		now:       func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestSubmitPassingCompletesLesson(t *testing.T) {
	f := twoQuestionQuiz(80)
	repo := newFakeRepo(f.quiz)
	completer := &fakeCompleter{}
	svc := newTestService(repo, completer)
	userID := uuid.New()

	resp, err := svc.Submit(context.Background(), userID, f.quiz.ID, SubmitDTO{
		Answers: Submission{f.q1: {f.a}, f.q2: {f.b, f.c}},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Score)
	assert.True(t, resp.Passed)
	assert.True(t, resp.LessonCompleted)
	require.NotNil(t, resp.CourseProgress)
	assert.Equal(t, 50, *resp.CourseProgress)
	assert.Equal(t, []uuid.UUID{f.quiz.LessonID}, completer.lessons)

	require.Len(t, repo.attempts, 1)
	attempt := repo.attempts[0]
	assert.Equal(t, userID, attempt.UserID)
	assert.Equal(t, 100, attempt.Score)

	var stored Submission
	require.NoError(t, json.Unmarshal(attempt.AnswersJSON, &stored))
	assert.ElementsMatch(t, []uuid.UUID{f.b, f.c}, stored[f.q2])
}

func TestSubmitFailingStillRecordsAttempt(t *testing.T) {
	f := twoQuestionQuiz(80)
	repo := newFakeRepo(f.quiz)
	completer := &fakeCompleter{}
	svc := newTestService(repo, completer)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		resp, err := svc.Submit(context.Background(), userID, f.quiz.ID, SubmitDTO{
			Answers: Submission{f.q1: {f.a}, f.q2: {f.b}},
		})
		require.NoError(t, err)
		assert.Equal(t, 50, resp.Score)
		assert.False(t, resp.Passed)
		assert.False(t, resp.LessonCompleted)
	}

	assert.Len(t, repo.attempts, 2)
	assert.Empty(t, completer.lessons)
}

func TestSubmitErrors(t *testing.T) {
	f := twoQuestionQuiz(80)
	ctx := context.Background()
	dto := SubmitDTO{Answers: Submission{f.q1: {f.a}, f.q2: {f.b, f.c}}}

	t.Run("NoCaller", func(t *testing.T) {
		svc := newTestService(newFakeRepo(f.quiz), &fakeCompleter{})
		_, err := svc.Submit(ctx, uuid.Nil, f.quiz.ID, dto)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("QuizNotFound", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeCompleter{})
		_, err := svc.Submit(ctx, uuid.New(), f.quiz.ID, dto)
		assert.ErrorIs(t, err, ErrQuizNotFound)
		assert.Equal(t, http.StatusNotFound, apperr.Status(err))
	})

	t.Run("MissingAnswers", func(t *testing.T) {
		svc := newTestService(newFakeRepo(f.quiz), &fakeCompleter{})
		_, err := svc.Submit(ctx, uuid.New(), f.quiz.ID, SubmitDTO{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("AttemptInsertIsFatal", func(t *testing.T) {
		repo := newFakeRepo(f.quiz)
		repo.attemptFn = func(*QuizAttempt) error { return errors.New("insert failed") }
		completer := &fakeCompleter{}
		svc := newTestService(repo, completer)

		_, err := svc.Submit(ctx, uuid.New(), f.quiz.ID, dto)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
		assert.Empty(t, completer.lessons)
	})

	t.Run("UnpublishedLesson", func(t *testing.T) {
		repo := newFakeRepo(f.quiz)
		completer := &fakeCompleter{checkErr: progress.ErrLessonNotFound}
		svc := newTestService(repo, completer)

		_, err := svc.Submit(ctx, uuid.New(), f.quiz.ID, dto)
		assert.ErrorIs(t, err, ErrQuizNotFound)
		assert.Empty(t, repo.attempts)
		assert.Empty(t, completer.lessons)
	})

	t.Run("NotEnrolled", func(t *testing.T) {
		repo := newFakeRepo(f.quiz)
		svc := newTestService(repo, &fakeCompleter{checkErr: progress.ErrNotEnrolled})

		_, err := svc.Submit(ctx, uuid.New(), f.quiz.ID, dto)
		assert.ErrorIs(t, err, progress.ErrNotEnrolled)
		assert.Equal(t, http.StatusForbidden, apperr.Status(err))
		assert.Empty(t, repo.attempts)
	})

	t.Run("CompletionFailure", func(t *testing.T) {
		repo := newFakeRepo(f.quiz)
		svc := newTestService(repo, &fakeCompleter{err: errors.New("failed to complete lesson: boom")})

		_, err := svc.Submit(ctx, uuid.New(), f.quiz.ID, dto)
		require.Error(t, err)
		assert.Len(t, repo.attempts, 1)
	})
}

func TestGetForTakingHidesAnswerKey(t *testing.T) {
	f := twoQuestionQuiz(80)
	svc := newTestService(newFakeRepo(f.quiz), &fakeCompleter{})

	view, err := svc.GetForTaking(context.Background(), f.quiz.ID)
	require.NoError(t, err)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "is_correct")
	assert.Len(t, view.Questions, 2)
	assert.Len(t, view.Questions[1].Answers, 3)
}

func TestSubmitHandler(t *testing.T) {
	f := twoQuestionQuiz(80)
	repo := newFakeRepo(f.quiz)
	h := NewHandler(newTestService(repo, &fakeCompleter{}))

	r := chi.NewRouter()
	r.Post("/quizzes/{id}/submit", h.Submit)

	userID := uuid.New()
	body := `{"answers":{"` + f.q1.String() + `":["` + f.a.String() + `"]}}`
	req := httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID.String()+"/submit", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithClaims(req.Context(), &auth.Claims{UserID: userID.String()}))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SubmitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 50, resp.Score)
	assert.False(t, resp.Passed)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID.String()+"/submit", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
