package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonOutput mirrors the --json flag; the root command sets it before any
// subcommand runs.
var jsonOutput bool

func isJSONOutput() bool { return jsonOutput }

// Response is the envelope every command emits under --json. Exactly one
// envelope goes to stdout per invocation, success or failure.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo pairs a stable machine-readable code with the human message.
// Scripts should branch on Code, never on Message.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning reports a per-file problem that did not stop the run.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Meta carries counts and identifiers about the run itself.
type Meta struct {
	Count     int    `json:"count,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms,omitempty"`
	Session   string `json:"session,omitempty"`
}

func (r Response) emit() {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(r)
}

func outputSuccess(data interface{}, meta *Meta) {
	Response{OK: true, Data: data, Meta: meta}.emit()
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	Response{OK: true, Data: data, Warnings: warnings, Meta: meta}.emit()
}

func outputError(code, message string, details interface{}, suggestion string) {
	Response{OK: false, Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}}.emit()
}

// handleError reports err in the mode-appropriate way: as a JSON envelope
// under --json, returning nil so cobra does not print it a second time,
// otherwise as the command's error.
func handleError(code string, err error, suggestion string) error {
	if !jsonOutput {
		return err
	}
	outputError(code, err.Error(), nil, suggestion)
	return nil
}

// handleErrorMsg is handleError for failures that exist only as text.
func handleErrorMsg(code, message, suggestion string) error {
	if !jsonOutput {
		return fmt.Errorf("%s", message)
	}
	outputError(code, message, nil, suggestion)
	return nil
}
