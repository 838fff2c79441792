package domain

var (
	MessageSuccessLogin           = "logged in successfully"
	MessageSuccessLogout          = "logged out successfully"
	MessageSuccessResetPassword   = "password reset successfully"
	MessageSuccessGetProfile      = "profile retrieved successfully"
	MessageSuccessGetPreferences  = "preferences retrieved successfully"
	MessageSuccessSavePreferences = "preferences saved successfully"

	MessageFailedLogin           = "failed to log in"
	MessageFailedLogout          = "failed to log out"
	MessageFailedResetPassword   = "failed to reset password"
	MessageFailedGetProfile      = "failed to retrieve profile"
	MessageFailedGetPreferences  = "failed to retrieve preferences"
	MessageFailedSavePreferences = "failed to save preferences"
)

type (
	LoginRequest struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token     string      `json:"token"`
		ExpiresAt int64       `json:"expires_at"`
		Redirect  string      `json:"redirect"`
		User      UserProfile `json:"user"`
	}

	ResetPasswordRequest struct {
		Code                 string `json:"code" validate:"required"`
		Password             string `json:"password" validate:"required,min=6"`
		PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	}

	UserProfile struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}

	PreferencesRequest struct {
		SidebarOpen *bool `json:"sidebar_open" validate:"required"`
	}

	PreferencesResponse struct {
		SidebarOpen bool `json:"sidebar_open"`
	}
)
