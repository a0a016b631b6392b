package menu

import "errors"

// Domain errors for catalog operations

var (
	ErrEmptyCompany = errors.New("menu item requires a company")
	ErrEmptyName    = errors.New("menu item requires a name")
)
