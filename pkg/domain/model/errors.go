package model

import "github.com/m-mizutani/goerr/v2"

// Error tags used to classify failures at the top level
var (
	ErrTagFileAccess    = goerr.NewTag("file_access")
	ErrTagUsage         = goerr.NewTag("usage")
	ErrTagInvalidOption = goerr.NewTag("invalid_option")
)
