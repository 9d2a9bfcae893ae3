package service

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/repository"
	"github.com/dhiselink/dhiselink/internal/validation"
)

type UserService struct {
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	fileService    *FileService
	emailService   *EmailService
	contentService *ContentService
}

func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	fileService *FileService,
	emailService *EmailService,
	contentService *ContentService,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		fileService:    fileService,
		emailService:   emailService,
		contentService: contentService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepo.ByID(id)
}

func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return errors.New("account has no password set")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return errors.New("current password is incorrect")
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hashed := string(hashedBytes)
	user.PasswordHash = &hashed
	return s.userRepo.Update(user)
}

// DeleteAccount removes the user and everything they own: content rows
// across all tables, file records, storage objects and the profile.
// Hard deletes throughout; there is no recovery.
func (s *UserService) DeleteAccount(userID string) error {
	user, err := s.userRepo.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	var name string
	if profile != nil {
		name = profile.DisplayName()
		err = s.contentService.DeleteAllFor(profile)
		if err != nil {
			return fmt.Errorf("failed to delete owned content: %w", err)
		}
	}

	err = s.fileService.DeleteAllUserFilesFromStorage(userID)
	if err != nil {
		// Storage cleanup is best effort; the account deletion proceeds.
		slog.Warn("failed to delete user files from storage", "error", err, "user_id", userID)
	}

	err = s.profileRepo.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	err = s.userRepo.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	err = s.emailService.SendAccountDeletedEmail(user.Email, name)
	if err != nil {
		slog.Warn("failed to send account deletion email", "error", err, "email", user.Email)
	}

	slog.Info("account deleted", "user_id", userID, "email", user.Email)
	return nil
}
