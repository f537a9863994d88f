package storage

import "errors"

var (
	UnknownSchemeErr = errors.New("unrecognized storage URI")
	NotFoundErr      = errors.New("no such entry")
	NotADirectoryErr = errors.New("not a directory")
	InfoBeforeReadErr = errors.New("Info called before Read")
)
