package catalog

import "errors"

// Code is the stable identifier carried by every catalog failure.
type Code string

const (
	CodePersonaNotFound       Code = "PERSONA_NOT_FOUND"
	CodeFileNotFound          Code = "FILE_NOT_FOUND"
	CodeFileReadError         Code = "FILE_READ_ERROR"
	CodeInvalidFormat         Code = "INVALID_FORMAT"
	CodeInvalidPersonaConfig  Code = "INVALID_PERSONA_CONFIG"
	CodeInvalidTemplateConfig Code = "INVALID_TEMPLATE_CONFIG"
	CodeInvalidSettingsConfig Code = "INVALID_SETTINGS_CONFIG"
	CodeInvalidPanelType      Code = "INVALID_PANEL_TYPE"
)

// Error reports a failure to locate, read, decode or validate a catalog file.
// File is relative to the catalog root.
type Error struct {
	Code Code
	File string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the Code of the first *Error in err's chain, or "" if there
// is none.
func CodeOf(err error) Code {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return ""
}

// IsNotFound reports whether err means the requested persona does not exist.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case CodePersonaNotFound, CodeFileNotFound:
		return true
	}
	return false
}
