package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("el nombre de usuario ya existe")
	ErrUserEmailExists        = errors.New("el correo electrónico ya está en uso")
	ErrCannotDeleteSelf       = errors.New("no puedes eliminar tu propia cuenta")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrInsufficientPermission = errors.New("insufficient permissions")
)
