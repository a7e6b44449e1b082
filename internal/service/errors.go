package service

import "errors"

// ValidationError 本地校验失败，未发起任何网络请求
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func errValidation(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation 是否为本地校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
