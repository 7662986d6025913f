package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	tx           database.Transactor
	userRepo     user.UserRepository
	scheduleRepo schedule.ScheduleRepository
}

func NewUserService(tx database.Transactor, userRepo user.UserRepository, scheduleRepo schedule.ScheduleRepository) user.UserService {
	return &UserServiceImpl{tx: tx, userRepo: userRepo, scheduleRepo: scheduleRepo}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}

	return user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: utils.TotalPages(total, filter.Limit),
		Showing:    utils.Showing(filter.Page, filter.Limit, total),
		Users:      responses,
	}, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrUserNotFound
	}
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         user.Role(req.Role),
	}
	if req.ScheduleID != nil && *req.ScheduleID != "" {
		newUser.ScheduleID = req.ScheduleID
	}
	req.Profile.Apply(&newUser)

	var created user.User
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkUnique(txCtx, newUser.Username, newUser.Email, ""); err != nil {
			return err
		}
		if newUser.ScheduleID != nil {
			if _, err := s.scheduleRepo.GetByID(txCtx, *newUser.ScheduleID); err != nil {
				return err
			}
		}
		created, err = s.userRepo.Create(txCtx, newUser)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "username", created.Username, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var updated user.User
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		existing.Username = strings.TrimSpace(req.Username)
		existing.Email = strings.TrimSpace(req.Email)
		existing.Role = user.Role(req.Role)
		existing.PasswordHash = ""
		if req.Password != nil && *req.Password != "" {
			if existing.PasswordHash, err = utils.HashPassword(*req.Password); err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
		}
		req.Profile.Apply(&existing)

		if err := s.checkUnique(txCtx, existing.Username, existing.Email, existing.ID); err != nil {
			return err
		}
		updated, err = s.userRepo.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user updated", "user_id", updated.ID)
	return user.NewUserResponse(updated), nil
}

// AssignSchedule implements user.UserService.
func (s *UserServiceImpl) AssignSchedule(ctx context.Context, req user.AssignScheduleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var updated user.User
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.ScheduleID != nil {
			if _, err := s.scheduleRepo.GetByID(txCtx, *req.ScheduleID); err != nil {
				return err
			}
		}
		if err := s.userRepo.AssignSchedule(txCtx, req.UserID, req.ScheduleID); err != nil {
			return err
		}
		var err error
		updated, err = s.userRepo.GetByID(txCtx, req.UserID)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("schedule assigned", "user_id", req.UserID, "schedule_id", req.ScheduleID)
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID string, id string) error {
	if actorID == id {
		return user.ErrCannotDeleteSelf
	}
	if !validator.IsValidUUID(id) {
		return user.ErrUserNotFound
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id, "deleted_by", actorID)
	return nil
}

func (s *UserServiceImpl) checkUnique(ctx context.Context, username, email, excludeID string) error {
	if exists, err := s.userRepo.ExistsByUsername(ctx, username, excludeID); err != nil {
		return err
	} else if exists {
		return user.ErrUsernameExists
	}
	if exists, err := s.userRepo.ExistsByEmail(ctx, email, excludeID); err != nil {
		return err
	} else if exists {
		return user.ErrUserEmailExists
	}
	return nil
}
