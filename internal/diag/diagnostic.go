package diag

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Line     int // 1-based script line, 0 when not tied to a line
}

func New(sev Severity, code Code, line int, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Line: line}
}

func NewError(code Code, line int, msg string) Diagnostic {
	return New(SevError, code, line, msg)
}
