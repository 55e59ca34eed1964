package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")

	ErrRoleNotFound      = errors.New("record not found")
	ErrDuplicateRole     = errors.New("duplicate record")
	ErrRoleNameRequired  = errors.New("role name is required")
	ErrRoleWithoutModule = errors.New("at least one module must be assigned to the role")
	ErrUnknownModule     = errors.New("unknown module")
	ErrProtectedRole     = errors.New("the ADMINISTRADOR role cannot be deleted")

	ErrModuleNotFound     = errors.New("record not found")
	ErrDuplicateModule    = errors.New("duplicate record")
	ErrModuleNameRequired = errors.New("module name is required")

	ErrDuplicateUser = errors.New("duplicate record")
	ErrUnknownRole   = errors.New("unknown role")
)

// AuthErrorKind identifies why a request was refused by the authentication
// or authorization middleware.
type AuthErrorKind int

const (
	Unauthenticated AuthErrorKind = iota + 1
	MalformedToken
	WrongScheme
	InvalidToken
	ExpiredSession
	SessionNotFound
	NoRole
	InsufficientPermission
)

var authKindNames = map[AuthErrorKind]string{
	Unauthenticated:        "unauthenticated",
	MalformedToken:         "malformed_token",
	WrongScheme:            "wrong_scheme",
	InvalidToken:           "invalid_token",
	ExpiredSession:         "expired_session",
	SessionNotFound:        "session_not_found",
	NoRole:                 "no_role",
	InsufficientPermission: "insufficient_permission",
}

func (k AuthErrorKind) String() string {
	if s, ok := authKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// AuthError is a terminal credential fault. Every AuthError is rendered as
// 401 with Message as the response body.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Is matches any AuthError of the same kind.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnauthenticated        = &AuthError{Kind: Unauthenticated, Message: "access not authorized"}
	ErrMalformedToken         = &AuthError{Kind: MalformedToken, Message: "the submitted token is invalid"}
	ErrWrongScheme            = &AuthError{Kind: WrongScheme, Message: "authentication must use bearer format"}
	ErrInvalidToken           = &AuthError{Kind: InvalidToken, Message: "unauthorized access"}
	ErrExpiredSession         = &AuthError{Kind: ExpiredSession, Message: "session expired"}
	ErrSessionNotFound        = &AuthError{Kind: SessionNotFound, Message: "you must log in"}
	ErrNoRole                 = &AuthError{Kind: NoRole, Message: "access denied"}
	ErrInsufficientPermission = &AuthError{Kind: InsufficientPermission, Message: "access not authorized"}
)
