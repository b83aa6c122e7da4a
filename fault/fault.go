package fault

import (
	"fmt"
	"strings"
)

// Standard fault codes raised locally by the SDK. Backend faults carry their
// own codes and are passed through unmodified.
const (
	CodeUnresolvedSchema = "kUnresolvedSchema"
	CodeInvalidArgument  = "kInvalidArgument"
	CodeInvalidResponse  = "kInvalidResponse"
	CodeRequestFailed    = "kRequestFailed"
)

// Fault is the standard error wrapper. Most callbacks deliver a Fault next
// to the value they retrieve; a nil fault means the call succeeded.
type Fault struct {
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	Message   string   `json:"message,omitempty"`
	Path      string   `json:"path,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Status    int      `json:"status,omitempty"`
	Subfaults []*Fault `json:"faults,omitempty"`
}

// Error implements the error interface.
func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString(f.Code)
	if f.Message != "" {
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	if f.Path != "" {
		fmt.Fprintf(&b, " (path %s)", f.Path)
	}
	return b.String()
}

// New creates a local fault with a code and message.
func New(code, message string) *Fault {
	return &Fault{Name: "fault", Code: code, Message: message}
}

// Newf creates a local fault with a formatted message.
func Newf(code, format string, args ...any) *Fault {
	return New(code, fmt.Sprintf(format, args...))
}

// UnresolvedSchema reports that no object definition could be resolved for
// the given name.
func UnresolvedSchema(name string) *Fault {
	return Newf(CodeUnresolvedSchema, "no object definition for %q", name)
}

// InvalidArgument reports a caller-side argument error.
func InvalidArgument(message string) *Fault {
	return New(CodeInvalidArgument, message)
}

// FromError wraps an arbitrary error as a fault. Faults pass through
// unmodified.
func FromError(err error) *Fault {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Fault); ok {
		return f
	}
	return New(CodeRequestFailed, err.Error())
}

// FromAttributes decodes a fault from a backend response envelope. Returns
// nil if the attributes do not describe a fault.
func FromAttributes(attrs map[string]any) *Fault {
	if attrs == nil {
		return nil
	}
	if obj, _ := attrs["object"].(string); obj != "fault" {
		return nil
	}
	f := &Fault{}
	f.Name, _ = attrs["name"].(string)
	f.Code, _ = attrs["code"].(string)
	f.Message, _ = attrs["message"].(string)
	f.Path, _ = attrs["path"].(string)
	f.Reason, _ = attrs["reason"].(string)
	if s, ok := attrs["status"].(float64); ok {
		f.Status = int(s)
	}
	if subs, ok := attrs["faults"].([]any); ok {
		for _, s := range subs {
			if m, ok := s.(map[string]any); ok {
				if sub := FromAttributes(m); sub != nil {
					f.Subfaults = append(f.Subfaults, sub)
				}
			}
		}
	}
	return f
}
