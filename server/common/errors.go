package common

import "errors"

var (
	ErrRequestParamEmpty               = errors.New("request param empty")
	ErrRequestParamInvalid             = errors.New("request param invalid")
	ErrNotLoggedIn                     = errors.New("not logged in")
	ErrContentTypeNotMultipartFormData = errors.New("content type is not multipart/form-data")
)
