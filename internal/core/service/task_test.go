package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/pkg/test"
)

type TaskServiceSuite struct {
	suite.Suite
	users  port.UserRepository
	repo   port.TaskRepository
	svc    *TaskService
	userID int
}

func (s *TaskServiceSuite) SetupTest() {
	db := test.InitTestDB(s.T())

	s.users = repository.NewUserRepository(db)
	s.repo = repository.NewTaskRepository(db)
	s.svc = NewTaskService(s.repo)

	user, err := s.users.Create(context.Background(), domain.User{
		Username:     "owner@test.com",
		PasswordHash: "irrelevant",
	})

	s.Require().NoError(err)
	s.userID = user.ID
}

func TestTaskServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskServiceSuite))
}

func str(v string) *string { return &v }

func (s *TaskServiceSuite) createTask(req request.CreateTaskRequest) domain.Task {
	task, err := s.svc.Create(context.Background(), s.userID, &req)
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceSuite) TestCreateAssignsOwner() {
	task := s.createTask(request.CreateTaskRequest{
		Title:    str("Buy milk"),
		Priority: str("high"),
	})

	Expect(task.ID).ToNot(BeZero())
	Expect(task.Title).To(Equal("Buy milk"))
	Expect(task.UserID).ToNot(BeNil())
	Expect(*task.UserID).To(Equal(s.userID))
	Expect(task.BelongsToUser(s.userID)).To(BeTrue())
}

func (s *TaskServiceSuite) TestCreateRequiresTitle() {
	_, err := s.svc.Create(context.Background(), s.userID, &request.CreateTaskRequest{})

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(400))
	Expect(appErr.Message).To(Equal("Title is required."))
}

func (s *TaskServiceSuite) TestGetAllFiltersByTitleSubstring() {
	s.createTask(request.CreateTaskRequest{Title: str("Buy milk")})
	s.createTask(request.CreateTaskRequest{Title: str("Buy bread")})
	s.createTask(request.CreateTaskRequest{Title: str("Walk the dog")})

	tasks, err := s.svc.GetAllTasks(context.Background(), domain.TaskFilter{Title: str("Buy")})

	Expect(err).ToNot(HaveOccurred())
	Expect(tasks).To(HaveLen(2))
}

func (s *TaskServiceSuite) TestGetAllFiltersByExactPriority() {
	s.createTask(request.CreateTaskRequest{Title: str("a"), Priority: str("high")})
	s.createTask(request.CreateTaskRequest{Title: str("b"), Priority: str("highest")})
	s.createTask(request.CreateTaskRequest{Title: str("c")})

	tasks, err := s.svc.GetAllTasks(context.Background(), domain.TaskFilter{Priority: str("high")})

	Expect(err).ToNot(HaveOccurred())
	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Title).To(Equal("a"))
}

func (s *TaskServiceSuite) TestGetAllEmptyPriorityMatchesNull() {
	s.createTask(request.CreateTaskRequest{Title: str("a"), Priority: str("high")})
	s.createTask(request.CreateTaskRequest{Title: str("b")})

	tasks, err := s.svc.GetAllTasks(context.Background(), domain.TaskFilter{Priority: str("")})

	Expect(err).ToNot(HaveOccurred())
	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Title).To(Equal("b"))
}

func (s *TaskServiceSuite) TestGetAllExcludesSoftDeleted() {
	task := s.createTask(request.CreateTaskRequest{Title: str("gone")})
	s.createTask(request.CreateTaskRequest{Title: str("kept")})

	Expect(s.svc.Delete(context.Background(), task.ID, true)).To(Succeed())

	tasks, err := s.svc.GetAllTasks(context.Background(), domain.TaskFilter{})

	Expect(err).ToNot(HaveOccurred())
	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Title).To(Equal("kept"))
}

func (s *TaskServiceSuite) TestGetTaskNotFound() {
	_, err := s.svc.GetTask(context.Background(), 9999)

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(404))
	Expect(appErr.Message).To(Equal("Task not found."))
}

func (s *TaskServiceSuite) TestReplaceOverwritesEveryField() {
	task := s.createTask(request.CreateTaskRequest{
		Title:       str("original"),
		Description: str("desc"),
		Priority:    str("high"),
	})

	err := s.svc.Replace(context.Background(), task.ID, &request.TaskRequest{
		Title: str("replaced"),
	})

	Expect(err).ToNot(HaveOccurred())

	got, err := s.svc.GetTask(context.Background(), task.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(got.Title).To(Equal("replaced"))
	Expect(got.Description).To(BeNil())
	Expect(got.Priority).To(BeNil())
	Expect(got.UserID).To(BeNil())
}

func (s *TaskServiceSuite) TestReplaceRequiresTitle() {
	task := s.createTask(request.CreateTaskRequest{Title: str("original")})

	err := s.svc.Replace(context.Background(), task.ID, &request.TaskRequest{})

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(400))
	Expect(appErr.Message).To(Equal("Title is required."))
}

func (s *TaskServiceSuite) TestPatchMergesPresentFields() {
	task := s.createTask(request.CreateTaskRequest{
		Title:       str("original"),
		Description: str("desc"),
		Priority:    str("high"),
	})

	completedAt := time.Now().UTC().Truncate(time.Second)

	err := s.svc.Patch(context.Background(), task.ID, &request.TaskRequest{
		Title:       str("patched"),
		CompletedAt: &completedAt,
	})

	Expect(err).ToNot(HaveOccurred())

	got, err := s.svc.GetTask(context.Background(), task.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(got.Title).To(Equal("patched"))
	Expect(got.Description).ToNot(BeNil())
	Expect(*got.Description).To(Equal("desc"))
	Expect(got.Priority).ToNot(BeNil())
	Expect(*got.Priority).To(Equal("high"))
	Expect(got.CompletedAt).ToNot(BeNil())
}

func (s *TaskServiceSuite) TestPatchEmptyStringClearsToNull() {
	task := s.createTask(request.CreateTaskRequest{
		Title:       str("original"),
		Description: str("desc"),
		Priority:    str("high"),
	})

	err := s.svc.Patch(context.Background(), task.ID, &request.TaskRequest{
		Description: str(""),
		Priority:    str(""),
	})

	Expect(err).ToNot(HaveOccurred())

	got, err := s.svc.GetTask(context.Background(), task.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(got.Description).To(BeNil())
	Expect(got.Priority).To(BeNil())
	Expect(got.Title).To(Equal("original"))
}

func (s *TaskServiceSuite) TestPatchSoftDeletedTaskNotFound() {
	task := s.createTask(request.CreateTaskRequest{Title: str("gone")})
	Expect(s.svc.Delete(context.Background(), task.ID, true)).To(Succeed())

	err := s.svc.Patch(context.Background(), task.ID, &request.TaskRequest{Title: str("x")})

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(404))
}

func (s *TaskServiceSuite) TestSoftDeleteKeepsRowRetrievableByIDAny() {
	task := s.createTask(request.CreateTaskRequest{Title: str("gone")})

	Expect(s.svc.Delete(context.Background(), task.ID, true)).To(Succeed())

	_, err := s.repo.GetByID(context.Background(), task.ID)
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())

	got, err := s.repo.GetByIDAny(context.Background(), task.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(got.IsDeleted()).To(BeTrue())
}

func (s *TaskServiceSuite) TestSoftDeleteMissingTaskNotFound() {
	err := s.svc.Delete(context.Background(), 9999, true)

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(404))
}

func (s *TaskServiceSuite) TestHardDeleteRemovesRow() {
	task := s.createTask(request.CreateTaskRequest{Title: str("gone")})

	Expect(s.svc.Delete(context.Background(), task.ID, false)).To(Succeed())

	_, err := s.repo.GetByIDAny(context.Background(), task.ID)
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TaskServiceSuite) TestHardDeleteIsIdempotent() {
	Expect(s.svc.Delete(context.Background(), 9999, false)).To(Succeed())
	Expect(s.svc.Delete(context.Background(), 9999, false)).To(Succeed())
}
