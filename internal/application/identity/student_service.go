package identity

import (
	"context"
	"errors"

	"github.com/dormsync/backend/internal/domain/housing"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxEnrollAttempts bounds the retry loop closing the generated
// student-identifier race. Two concurrent enrollments can generate the
// same identifier; the unique constraint rejects one and it regenerates.
const maxEnrollAttempts = 3

// StudentService handles student enrollment and management
type StudentService struct {
	txScope        TransactionScope
	userRepo       identity.UserRepository
	profileRepo    identity.StudentProfileRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStudentService creates a new student service
func NewStudentService(
	txScope TransactionScope,
	userRepo identity.UserRepository,
	profileRepo identity.StudentProfileRepository,
	logger *zap.Logger,
) *StudentService {
	return &StudentService{
		txScope:     txScope,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StudentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create enrolls a new student: user, generated identifier, profile, and
// optional room placement, all in one transaction. When the identifier is
// generated, a unique-constraint collision restarts the whole transaction
// with a fresh sequence read.
func (s *StudentService) Create(ctx context.Context, input CreateStudentInput) (*StudentResult, error) {
	autoID := input.StudentID == nil || *input.StudentID == ""

	var (
		result *StudentResult
		events []shared.DomainEvent
	)

	for attempt := 1; attempt <= maxEnrollAttempts; attempt++ {
		err := s.txScope.Execute(ctx, func(repos EnrollmentRepositories) error {
			user, profile, err := s.enroll(ctx, repos, input)
			if err != nil {
				return err
			}
			events = user.GetDomainEvents()
			user.ClearDomainEvents()
			result = &StudentResult{User: toUserInfo(user), Profile: toProfileInfo(profile)}
			return nil
		})
		if err == nil {
			s.publishEvents(ctx, events)
			s.logger.Info("Student enrolled",
				zap.String("user_id", result.User.ID.String()),
				zap.Stringp("student_id", result.User.StudentID))
			return result, nil
		}

		if autoID && attempt < maxEnrollAttempts && isStudentIDCollision(err) {
			s.logger.Warn("Student identifier collision, retrying enrollment",
				zap.Int("attempt", attempt))
			continue
		}

		return nil, err
	}

	return nil, shared.NewDomainError("ENROLLMENT_FAILED", "Could not allocate a student identifier")
}

func (s *StudentService) enroll(ctx context.Context, repos EnrollmentRepositories, input CreateStudentInput) (*identity.User, *identity.StudentProfile, error) {
	users := repos.Users()

	taken, err := users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, identity.ErrEmailTaken
	}

	user, err := identity.NewStudent(input.FirstName, input.LastName, input.MiddleInitial, input.Email, input.Password)
	if err != nil {
		return nil, nil, err
	}

	studentID := ""
	if input.StudentID != nil && *input.StudentID != "" {
		studentID = *input.StudentID
		taken, err := users.ExistsByStudentID(ctx, studentID)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, identity.ErrStudentIDTaken
		}
	} else {
		generator := identity.NewStudentIDGenerator(users)
		studentID, err = generator.Next(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := user.AssignStudentID(studentID); err != nil {
		return nil, nil, err
	}

	if err := users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	profile := identity.NewStudentProfile(user.ID)
	if err := profile.SetContact(input.PhoneNumber, input.EmergencyContactName, input.EmergencyContactPhone); err != nil {
		return nil, nil, err
	}
	if input.EnrollmentDate != nil {
		profile.EnrollmentDate = *input.EnrollmentDate
	}

	if input.RoomID != nil {
		if err := s.placeInRoom(ctx, repos, profile, *input.RoomID, nil); err != nil {
			return nil, nil, err
		}
	}

	if err := repos.Profiles().Create(ctx, profile); err != nil {
		return nil, nil, err
	}

	return user, profile, nil
}

// placeInRoom locks the room row, checks capacity, and writes the room
// reference together with its code snapshot. excludeUserID skips the
// student's own row when a transfer re-counts occupants.
func (s *StudentService) placeInRoom(ctx context.Context, repos EnrollmentRepositories, profile *identity.StudentProfile, roomID uuid.UUID, excludeUserID *uuid.UUID) error {
	room, err := repos.Rooms().FindByIDForUpdate(ctx, roomID)
	if err != nil {
		return err
	}

	occupancy := housing.NewOccupancyService(repos.Profiles())
	if err := occupancy.EnsureCapacity(ctx, room, excludeUserID); err != nil {
		return err
	}

	profile.AssignRoom(room.ID, room.Code)
	return nil
}

// Update applies user, profile, and room changes in one transaction
func (s *StudentService) Update(ctx context.Context, input UpdateStudentInput) (*StudentResult, error) {
	var result *StudentResult

	err := s.txScope.Execute(ctx, func(repos EnrollmentRepositories) error {
		users := repos.Users()

		user, err := users.FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if !user.IsStudent() {
			return shared.ErrNotFound
		}

		profile, err := repos.Profiles().FindByUserID(ctx, input.UserID)
		if err != nil {
			return err
		}

		if input.FirstName != nil || input.LastName != nil || input.MiddleInitial != nil {
			first, last, mi := user.FirstName, user.LastName, user.MiddleInitial
			if input.FirstName != nil {
				first = *input.FirstName
			}
			if input.LastName != nil {
				last = *input.LastName
			}
			if input.MiddleInitial != nil {
				mi = *input.MiddleInitial
			}
			if err := user.SetName(first, last, mi); err != nil {
				return err
			}
		}

		if input.Email != nil && *input.Email != user.Email {
			taken, err := users.ExistsByEmail(ctx, *input.Email)
			if err != nil {
				return err
			}
			if taken {
				return identity.ErrEmailTaken
			}
			if err := user.SetEmail(*input.Email); err != nil {
				return err
			}
		}

		if input.Password != nil {
			if err := user.SetPassword(*input.Password); err != nil {
				return err
			}
		}

		if err := s.applyProfileChanges(ctx, repos, user, profile, input); err != nil {
			return err
		}

		if err := users.Update(ctx, user); err != nil {
			return err
		}
		if err := repos.Profiles().Update(ctx, profile); err != nil {
			return err
		}

		result = &StudentResult{User: toUserInfo(user), Profile: toProfileInfo(profile)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student updated", zap.String("user_id", input.UserID.String()))
	return result, nil
}

func (s *StudentService) applyProfileChanges(ctx context.Context, repos EnrollmentRepositories, user *identity.User, profile *identity.StudentProfile, input UpdateStudentInput) error {
	if input.PhoneNumber != nil || input.EmergencyContactName != nil || input.EmergencyContactPhone != nil {
		phone, contactName, contactPhone := profile.PhoneNumber, profile.EmergencyContactName, profile.EmergencyContactPhone
		if input.PhoneNumber != nil {
			phone = *input.PhoneNumber
		}
		if input.EmergencyContactName != nil {
			contactName = *input.EmergencyContactName
		}
		if input.EmergencyContactPhone != nil {
			contactPhone = *input.EmergencyContactPhone
		}
		if err := profile.SetContact(phone, contactName, contactPhone); err != nil {
			return err
		}
	}

	if input.Status != nil {
		if err := profile.SetStatus(*input.Status); err != nil {
			return err
		}
	}

	switch {
	case input.RemoveRoom:
		profile.UnassignRoom()
	case input.RoomID != nil:
		if profile.RoomID == nil || *profile.RoomID != *input.RoomID {
			if err := s.placeInRoom(ctx, repos, profile, *input.RoomID, &user.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// Get returns a student with their profile
func (s *StudentService) Get(ctx context.Context, userID uuid.UUID) (*StudentResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent() {
		return nil, shared.ErrNotFound
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StudentResult{User: toUserInfo(user), Profile: toProfileInfo(profile)}, nil
}

// List returns a paginated student listing with profiles attached
func (s *StudentService) List(ctx context.Context, input ListStudentsInput) (*shared.Paginated[StudentResult], error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize < 1 || input.PageSize > 100 {
		input.PageSize = 20
	}

	filter := identity.StudentFilter{
		Keyword:  input.Keyword,
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	users, total, err := s.userRepo.FindStudents(ctx, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID]*identity.StudentProfile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	students := make([]StudentResult, len(users))
	for i, u := range users {
		students[i] = StudentResult{User: toUserInfo(u), Profile: toProfileInfo(byUser[u.ID])}
	}

	page := shared.NewPaginated(students, total, input.Page, input.PageSize)
	return &page, nil
}

// Delete removes a student and their dependent records
func (s *StudentService) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsStudent() {
		return shared.ErrNotFound
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Student deleted", zap.String("user_id", userID.String()))
	return nil
}

// RegisterPushToken stores a device push token on the user
func (s *StudentService) RegisterPushToken(ctx context.Context, userID uuid.UUID, token string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.RegisterPushTarget(token)
	return s.userRepo.Update(ctx, user)
}

func (s *StudentService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

func isStudentIDCollision(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == identity.ErrStudentIDTaken.Code
}
