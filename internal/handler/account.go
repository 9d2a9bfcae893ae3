package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dhiselink/dhiselink/internal/ctxkeys"
	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/ui"
	"github.com/dhiselink/dhiselink/internal/validation"
)

type AccountHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	profileService *service.ProfileService
	fileService    *service.FileService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService, fileService *service.FileService) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
		fileService:    fileService,
	}
}

func (h *AccountHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	email := r.FormValue("email")
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "valid email is required")
		return
	}

	if email == user.Email {
		ui.Error(w, http.StatusBadRequest, "email address is already set to this value")
		return
	}

	err = h.authService.RequestEmailChange(user.ID, email)
	if err != nil {
		slog.Warn("email change request failed", "error", err, "user_id", user.ID, "new_email", email)

		if errors.Is(err, service.ErrEmailAlreadyExists) {
			ui.Error(w, http.StatusConflict, "email already in use")
			return
		}
		if errors.Is(err, service.ErrInvalidEmail) {
			ui.Error(w, http.StatusBadRequest, "invalid email address")
			return
		}
		ui.Error(w, http.StatusInternalServerError, "failed to change email")
		return
	}

	slog.Info("email change requested", "user_id", user.ID, "old_email", user.Email, "new_email", email)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "verification required", "detail": "check your new email address to verify the change"})
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	currentPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirmPassword := r.FormValue("confirm_password")

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		ui.Error(w, http.StatusBadRequest, "all password fields are required")
		return
	}

	if newPassword != confirmPassword {
		ui.Error(w, http.StatusBadRequest, "new passwords do not match")
		return
	}

	err := h.userService.ChangePassword(user.ID, currentPassword, newPassword)
	if err != nil {
		slog.Warn("password update failed", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("password updated", "user_id", user.ID)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *AccountHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	newPassword := r.FormValue("new_password")
	confirmPassword := r.FormValue("confirm_password")

	if newPassword == "" || confirmPassword == "" {
		ui.Error(w, http.StatusBadRequest, "all fields are required")
		return
	}

	if newPassword != confirmPassword {
		ui.Error(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	err := h.authService.SetPassword(user.ID, newPassword)
	if err != nil {
		slog.Warn("set password failed", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("password set", "user_id", user.ID)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "password set", "detail": "you can now sign in with your password"})
}

func (h *AccountHandler) RemovePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.RemovePassword(user.ID)
	if err != nil {
		slog.Warn("remove password failed", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("password removed", "user_id", user.ID)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "password removed", "detail": "you can now only sign in with magic links"})
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(user.ID)
	if err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to delete account, please try again")
		return
	}

	slog.Info("account deleted", "user_id", user.ID, "email", user.Email)
	h.authService.ClearJWTCookie(w)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "account deleted"})
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	file, header, ok := h.formFile(w, r, "avatar", validation.ImageConstraints)
	if !ok {
		return
	}
	defer closeUpload(file)

	uploaded, err := h.fileService.Replace(user.ID, "profile", profile.ID, model.FileTypeAvatar, file, header, true) // Avatars are public
	if err != nil {
		slog.Error("failed to upload avatar", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to upload avatar")
		return
	}

	err = h.profileService.SetAvatarURL(profile, h.fileService.URL(uploaded))
	if err != nil {
		slog.Error("failed to store avatar url", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to upload avatar")
		return
	}

	ui.JSON(w, http.StatusOK, map[string]string{"status": "avatar uploaded", "url": profile.AvatarURL})
}

func (h *AccountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	err := h.fileService.DeleteByType("profile", profile.ID, model.FileTypeAvatar)
	if err != nil {
		slog.Error("failed to delete avatar", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to delete avatar")
		return
	}

	err = h.profileService.SetAvatarURL(profile, "")
	if err != nil {
		slog.Error("failed to clear avatar url", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to delete avatar")
		return
	}

	ui.JSON(w, http.StatusOK, map[string]string{"status": "avatar removed"})
}

// UploadLogo stores an organization logo. Individuals have no logo slot.
func (h *AccountHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	if profile.Organization == nil {
		ui.Error(w, http.StatusForbidden, "only organization accounts can upload a logo")
		return
	}

	file, header, ok := h.formFile(w, r, "logo", validation.ImageConstraints)
	if !ok {
		return
	}
	defer closeUpload(file)

	uploaded, err := h.fileService.Replace(user.ID, "profile", profile.ID, model.FileTypeLogo, file, header, true)
	if err != nil {
		slog.Error("failed to upload logo", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to upload logo")
		return
	}

	err = h.profileService.SetLogoURL(profile, h.fileService.URL(uploaded))
	if err != nil {
		slog.Error("failed to store logo url", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to upload logo")
		return
	}

	ui.JSON(w, http.StatusOK, map[string]string{"status": "logo uploaded", "url": profile.Organization.LogoURL})
}

// UploadResume stores an individual's resume as a private document.
func (h *AccountHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	if profile.Individual == nil {
		ui.Error(w, http.StatusForbidden, "only individual accounts can upload a resume")
		return
	}

	file, header, ok := h.formFile(w, r, "resume", validation.DocumentConstraints)
	if !ok {
		return
	}
	defer closeUpload(file)

	uploaded, err := h.fileService.Replace(user.ID, "profile", profile.ID, model.FileTypeResume, file, header, false) // Resumes are private
	if err != nil {
		slog.Error("failed to upload resume", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to upload resume")
		return
	}

	err = h.profileService.SetResumeURL(profile, h.fileService.URL(uploaded))
	if err != nil {
		slog.Error("failed to store resume url", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to upload resume")
		return
	}

	ui.JSON(w, http.StatusOK, map[string]string{"status": "resume uploaded", "url": profile.Individual.ResumeURL})
}

// formFile parses the multipart form, pulls the named file and validates it
func (h *AccountHandler) formFile(w http.ResponseWriter, r *http.Request, field string, constraints validation.FileConstraints) (multipart.File, *multipart.FileHeader, bool) {
	err := r.ParseMultipartForm(10 << 20)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "failed to parse form")
		return nil, nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "no file uploaded")
		return nil, nil, false
	}

	err = validation.ValidateFile(header, constraints)
	if err != nil {
		closeUpload(file)
		ui.Error(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	return file, header, true
}

func closeUpload(file multipart.File) {
	if err := file.Close(); err != nil {
		slog.Error("failed to close file", "error", err)
	}
}
