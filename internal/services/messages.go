package services

// User-facing notices of the account flows. The catalog mirrors the
// original deployment's message set; handlers surface them as flash-style
// notices, never as raw errors.
const (
	MsgOtherError = "Something went wrong. Please try again."

	MsgLoginEmailPwdFail = "Invalid e-mail or password."
	MsgLoginAgainLater   = "This account was used to log in a moment ago. Please log in again later."
	MsgAccountDisabled   = "This account is disabled."
	MsgPasswordMismatch  = "Invalid e-mail or password."
	MsgLoginUpdateFail   = "Logging in succeeded, but refreshing account data failed."
	MsgRole403           = "This account has no recognized role. Access denied."
	MsgUpdateErr         = "Updating account data failed."

	MsgBannedEmailSent = "Too many failed login attempts. The account has been disabled; check your mailbox for the unlock link."
	MsgBannedEmailFail = "Too many failed login attempts. The account has been disabled, but the unlock e-mail could not be delivered. Contact the administrator."

	MsgRegisterCreated       = "Account created. Check your mailbox for the activation link."
	MsgRegisterEmailFail     = "Account created, but the activation e-mail could not be delivered."
	MsgRegisterEmailBusy     = "An account with this e-mail already exists."

	MsgActivateSuccess  = "Account activated. You can log in now."
	MsgActivateFail     = "Activating the account failed. Please try again."
	MsgActivateToken404 = "No account matches this activation token."

	MsgResetterEmailBlank = "E-mail is required to reset a password."
	MsgResetterEmail404   = "No account matches this e-mail."
	MsgResetTokenExists   = "A password reset is already in progress for this account."
	MsgResetterEmailSent  = "Check your mailbox for the password reset link."
	MsgResetterEmailFail  = "The password reset e-mail could not be delivered."
	MsgResetterToken404   = "No account matches this reset token."
	MsgPwdCompareFail     = "The passwords do not match."
	MsgResetterSuccess    = "Password changed. You can log in now."

	MsgLogoutSuccess = "Logged out."
	MsgLogoutNothing = "No active account session; nothing to do."

	MsgSessionInvalid = "Session could not be verified. Please log in again."

	MsgProfileUpdated  = "Profile data saved."
	MsgProfilePartial  = "Profile data saved with warnings."
	MsgPDF404          = "There is no CV to remove."
	MsgPDFUploadFail   = "Uploading the CV failed."
	MsgPDFRemoved      = "CV removed."
	MsgPDFRemoveFail   = "Removing the CV failed."

	MsgAdmin403       = "Only an administrator may open this page."
	MsgAdminCreated   = "User created."
	MsgAdminBadID     = "No valid user ID was provided."
	MsgAdminUser404   = "No user with this ID exists."
	MsgAdminBadRole   = "Role must be either 'user' or 'admin'."
	MsgAdminBadRating = "Rating must be between 1 and 10."
)

// Email subjects and body lead-ins for the transactional mails.
const (
	mailBannedTitle   = "Your account has been disabled"
	mailBannedBody    = "Your account was disabled after too many failed login attempts. Unlock it here: "
	mailActivateTitle = "Activate your account"
	mailActivateBody  = "Your account was created. Activate it here: "
	mailResetTitle    = "Password reset"
	mailResetBody     = "A password reset was requested for your account. Change the password here: "
)
