package varskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/varskema/varskema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeEncodeError   = "encode_error"
	CodeOverflow      = "overflow"
	CodeCustom        = "custom"
	// Definition-time codes (malformed StructSpec/FieldSpec; fatal at Build)
	CodeUnknownVariant     = "unknown_variant"
	CodeDuplicateOutputKey = "duplicate_output_key"
	CodeEmptySchema        = "empty_schema"
	CodeDuplicateField     = "duplicate_field"
)

// Issue represents a single validation or definition entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"variant":"insert",
	// "key":"full_name"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// msg resolves the human-readable message for an issue code.
func msg(code string) string { return i18n.T(code, nil) }

// issuesFromErr converts an error into Issues, wrapping non-Issues with the
// given fallback code.
func issuesFromErr(path, code string, err error) Issues {
	if err == nil {
		return nil
	}
	if i2, ok := AsIssues(err); ok {
		return i2
	}
	return Issues{Issue{Path: path, Code: code, Message: err.Error(), Cause: err}}
}

// rebaseIssues prefixes every issue path with base so child errors surface
// under the owning field.
func rebaseIssues(base, code string, err error) Issues {
	child := issuesFromErr(base, code, err)
	var out Issues
	for _, it := range child {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else if p[0] == '/' {
			p = base + p
		} else {
			p = base + "/" + p
		}
		out = AppendIssues(out, Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params})
	}
	return out
}
