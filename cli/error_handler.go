package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/tui/theme"
)

// ErrorHandler prints user-friendly messages for plantview errors.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose, Out: os.Stderr}
}

// Handle explains err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	icon := theme.IconError
	pe, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "%s Configuration file not found: %v\n", icon, detail(pe, "path"))
		fmt.Fprintln(out, "Run 'plantview config show' to see the effective defaults.")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		problems, _ := detail(pe, "problems").([]string)
		msg := pe.Message
		if len(problems) > 0 {
			msg, _, _ = strings.Cut(msg, "\n")
		}
		fmt.Fprintf(out, "%s Invalid configuration: %s\n", icon, msg)
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(out, "  %s\n", p)
			}
		}
		if pe.Cause != nil {
			fmt.Fprintf(out, "  %v\n", pe.Cause)
		}

	case errors.ErrCodeRequestFailed:
		fmt.Fprintf(out, "%s Could not reach the plant server at %v\n", icon, detail(pe, "url"))
		fmt.Fprintln(out, "Check that it is running, or pass --server.")

	case errors.ErrCodeUnexpectedStatus:
		fmt.Fprintf(out, "%s The plant server answered %v for %v %v\n", icon,
			detail(pe, "status"), detail(pe, "method"), detail(pe, "url"))

	case errors.ErrCodeDecodeFailed:
		fmt.Fprintf(out, "%s The plant server sent a response that is not valid plant data (%v)\n", icon, detail(pe, "url"))

	case errors.ErrCodeModuleNotFound:
		fmt.Fprintf(out, "%s Module '%v' not found\n", icon, detail(pe, "module"))
		fmt.Fprintln(out, "Run 'plantview status' to list module ids.")

	case errors.ErrCodeInvalidInput:
		fmt.Fprintf(out, "%s %s\n", icon, pe.Message)

	default:
		fmt.Fprintf(out, "%s Error: %v\n", icon, err)
	}

	if h.Verbose && pe != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", strings.TrimSpace(pe.ToJSON()))
	}
	return err
}

func detail(pe *errors.PlantError, key string) interface{} {
	if pe == nil || pe.Details == nil {
		return "?"
	}
	if v, ok := pe.Details[key]; ok {
		return v
	}
	return "?"
}
