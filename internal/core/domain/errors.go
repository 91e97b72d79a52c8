package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidRefreshToken = errors.New("invalid refresh token")
var ErrForbidden = errors.New("access forbidden")
