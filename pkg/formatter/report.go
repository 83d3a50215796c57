package formatter

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
	"github.com/siyuan-infoblox/pretty-import/pkg/errors"
	"github.com/siyuan-infoblox/pretty-import/pkg/lint"
)

// Entry is one violation as reported to the user
type Entry struct {
	Rule      string          `json:"rule"`
	MessageID lint.MessageID  `json:"messageId"`
	Message   string          `json:"message"`
	Severity  config.Severity `json:"severity"`
	Line      int             `json:"line"`
	Column    int             `json:"column"`
	Fixable   bool            `json:"fixable"`
}

// FileResult holds the outcome of processing one file
type FileResult struct {
	Path       string  `json:"path"`
	Violations []Entry `json:"violations"`
	Changed    bool    `json:"changed"`
	Error      string  `json:"error,omitempty"`
	Err        error   `json:"-"`

	original string
	fixed    string
}

func (r *FileResult) setError(err error) {
	r.Err = err
	r.Error = err.Error()
}

func (r *FileResult) addViolations(text string, violations []lint.Violation) {
	locator := lint.NewLocator(text)
	r.Violations = make([]Entry, 0, len(violations))
	for _, v := range violations {
		pos := locator.Position(v.Start)
		r.Violations = append(r.Violations, Entry{
			Rule:      v.Rule,
			MessageID: v.ID,
			Message:   v.Message(),
			Severity:  v.Severity,
			Line:      pos.Line,
			Column:    pos.Column,
			Fixable:   v.Fix != nil,
		})
	}
}

// HasErrors reports whether a violation of error severity was found
func (r *FileResult) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Severity == config.SeverityError {
			return true
		}
	}
	return false
}

func (g *formatter) printViolations(result *FileResult) {
	for _, v := range result.Violations {
		fmt.Fprintf(g.out(), errors.InfoMsgViolation+"\n", result.Path, v.Line, v.Column, v.Severity, v.Message, v.Rule)
	}
}

func (g *formatter) printJSON(results []*FileResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToEncodeReport, err)
	}
	fmt.Fprintln(g.out(), string(data))
	return nil
}
