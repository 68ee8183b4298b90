package parser

import "fmt"

// Diagnostic reports why a source file could not be parsed. Path is left
// empty by Parse; callers that know the file fill it in.
type Diagnostic struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func (d *Diagnostic) Error() string {
	if d.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line, d.Col, d.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Col, d.Msg)
}
