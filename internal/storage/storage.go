package storage

import "errors"

var (
	ErrMediaNotFound   = errors.New("media item not found")
	ErrContentNotFound = errors.New("content not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrAdminExists     = errors.New("admin already exists")
	ErrAdminNotFound   = errors.New("admin not found")
)

var (
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrFileNotFound = errors.New("file not found")
)
