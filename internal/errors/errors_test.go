package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "E001",
			wantMsg: "Page used outside the app component",
			wantCat: CategoryRuntime,
		},
		{
			name:    "payload error",
			code:    "E040",
			wantMsg: "Malformed page payload",
			wantCat: CategoryPayload,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E002").WithDetail(`no component "X"`)
	if got, want := err.Error(), `E002: Component not found: no component "X"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "file %q not found", "page.json")
	if got, want := plain.Error(), `file "page.json" not found`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsAndUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := fmt.Errorf("outer: %w", New("E002").Wrap(sentinel))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
	if !stderrors.Is(err, New("E002")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("E003")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should be nil")
	}
	coded := New("E040")
	if FromError(coded, "E001") != coded {
		t.Error("FromError should return coded errors unchanged")
	}
	wrapped := FromError(stderrors.New("x"), "E041")
	if wrapped.Code != "E041" || wrapped.Wrapped == nil {
		t.Errorf("FromError() = %#v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E002").
		WithDetail(`no component is registered as "Users/Idx"`).
		WithSuggestion(`did you mean "Users/Index"?`)
	out := err.Format()

	for _, want := range []string{
		"ERROR E002: Component not found",
		`no component is registered as "Users/Idx"`,
		`Hint: did you mean "Users/Index"?`,
		"Learn more: https://vango.dev/docs/inertia/errors/E002",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	got := New("E040").WithSuggestion("re-encode").FormatJSON()
	want := `{"code":"E040","category":"payload","message":"Malformed page payload","suggestion":"re-encode","docUrl":"https://vango.dev/docs/inertia/errors/E040"}`
	if got != want {
		t.Errorf("FormatJSON() = %s, want %s", got, want)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("bootstrap: %w", New("E041")))
	if !strings.Contains(buf.String(), "ERROR E041") || !strings.Contains(buf.String(), "bootstrap:") {
		t.Errorf("Print() = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Print() = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
