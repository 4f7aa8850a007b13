package varskema_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	varskema "github.com/varskema/varskema"
)

func TestIssues_ErrorSummarizesFirstFew(t *testing.T) {
	var iss varskema.Issues
	for i := 0; i < 5; i++ {
		iss = varskema.AppendIssues(iss, varskema.Issue{
			Path: fmt.Sprintf("/f%d", i), Code: varskema.CodeRequired,
		})
	}
	got := iss.Error()
	if !strings.Contains(got, "required at /f0") {
		t.Fatalf("missing first issue: %q", got)
	}
	if strings.Contains(got, "/f3") {
		t.Fatalf("should truncate after three: %q", got)
	}
	if !strings.Contains(got, "total 5") {
		t.Fatalf("missing total: %q", got)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	base := varskema.Issues{{Path: "/x", Code: varskema.CodeInvalidType}}
	wrapped := fmt.Errorf("decoding payload: %w", base)
	iss, ok := varskema.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Path != "/x" {
		t.Fatalf("expected unwrap, got %v %v", iss, ok)
	}
	if _, ok := varskema.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error must not convert")
	}
	if _, ok := varskema.AsIssues(nil); ok {
		t.Fatalf("nil must not convert")
	}
}
