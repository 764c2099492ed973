package services

import "fmt"

// The business layer surfaces two error categories. Handlers map them
// once at the boundary: BadRequestError -> 400, UnauthorizedError -> 401,
// anything else -> 500 with a generic message.

type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &BadRequestError{msg: msg}
}

func badRequestf(format string, args ...interface{}) error {
	return &BadRequestError{msg: fmt.Sprintf(format, args...)}
}

type UnauthorizedError struct {
	msg string
}

func (e *UnauthorizedError) Error() string { return e.msg }

func unauthorized(msg string) error {
	return &UnauthorizedError{msg: msg}
}

// Sentinel instances for conditions callers branch on.
var (
	ErrEmailTaken         = badRequest("email already registered")
	ErrInvalidCredentials = badRequest("invalid email or password")
	ErrPasswordNotSet     = badRequest("no password set for this account, sign in with Google")
	ErrPasswordAlreadySet = badRequest("account already has a password, sign in with it")
	ErrUserNotFound       = unauthorized("user not found")

	ErrFamilyNotFound      = badRequest("family not found")
	ErrNotFamilyMember     = unauthorized("you are not a member of this family")
	ErrNotFamilyAdmin      = unauthorized("you are not an admin of this family")
	ErrNotFamilyOwner      = unauthorized("you are not the owner of this family")
	ErrSameOwner           = badRequest("new owner must be different from current owner")
	ErrTargetNotMember     = badRequest("new owner must be a member of this family")
	ErrMemberNotFound      = badRequest("member not found")
	ErrCannotRemoveOwner   = badRequest("the family owner cannot be removed")
	ErrPixKeyRequired      = badRequest("a pix key is required for the pix payment method")
	ErrBankDetailsRequired = badRequest("bank details are required for the transfer payment method")

	ErrInviteNotFound = unauthorized("invite not found")
	ErrInviteExists   = badRequest("invite already exists")
	ErrInviteExpired  = badRequest("invite has expired")
	ErrAlreadyMember  = unauthorized("you are already a member of this family")
	ErrFamilyFull     = badRequest("family has reached its member limit")

	ErrPaymentNotFound  = badRequest("payment not found")
	ErrNotPaymentOwner  = unauthorized("you are not allowed to reverse this payment")
	ErrPaymentThisMonth = badRequest("payment for this month already exists")
	ErrReversalExpired  = badRequest("payment can only be reversed within 7 days of creation")
	ErrAlreadyReversed  = badRequest("payment has already been reversed")
)
