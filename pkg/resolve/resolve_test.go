package resolve

import (
	"context"
	"errors"
	"testing"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/mount"
)

type module struct{ c *mount.Component }

func (m module) Default() *mount.Component { return m.c }

func TestNormalize(t *testing.T) {
	c := mount.New("Home", nil)

	tests := []struct {
		name    string
		in      any
		want    *mount.Component
		wantErr bool
	}{
		{"component", c, c, false},
		{"module", module{c}, c, false},
		{"empty module", module{}, nil, true},
		{"nil component", (*mount.Component)(nil), nil, true},
		{"string", "Home", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupported) {
				t.Errorf("error %v should wrap ErrUnsupported", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestComponentAdapter(t *testing.T) {
	c := mount.New("Users/Index", nil)
	fn := Component(func(ctx context.Context, name string) (any, error) {
		if name == "boom" {
			return nil, errors.New("boom")
		}
		return module{c}, nil
	})

	got, err := fn(context.Background(), "Users/Index")
	if err != nil || got != c {
		t.Fatalf("fn() = %v, %v", got, err)
	}
	if _, err := fn(context.Background(), "boom"); err == nil {
		t.Error("expected resolver error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fn(ctx, "Users/Index"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled resolve error = %v", err)
	}
}

func TestRegistry(t *testing.T) {
	home := mount.New("Home", nil)
	users := mount.New("Users/Index", nil)
	r := NewRegistry(home, users, nil)

	if names := r.Names(); len(names) != 2 || names[0] != "Home" {
		t.Errorf("Names() = %v", names)
	}

	got, err := r.Lookup(context.Background(), "Users/Index")
	if err != nil || got != users {
		t.Fatalf("Lookup() = %v, %v", got, err)
	}

	v, err := r.Resolve(context.Background(), "Home")
	if err != nil || v != home {
		t.Fatalf("Resolve() = %v, %v", v, err)
	}
}

func TestRegistryMissSuggests(t *testing.T) {
	r := NewRegistry(mount.New("Users/Index", nil), mount.New("Home", nil))

	_, err := r.Lookup(context.Background(), "Users/Idx")
	if !errors.Is(err, ErrComponentNotFound) {
		t.Fatalf("error %v should wrap ErrComponentNotFound", err)
	}
	var e *inerr.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T should be a coded error", err)
	}
	if e.Code != "E002" {
		t.Errorf("Code = %q, want E002", e.Code)
	}
	if e.Suggestion != `did you mean "Users/Index"?` {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}

	_, err = r.Lookup(context.Background(), "Completely/Different")
	if !errors.As(err, &e) || e.Suggestion != "" {
		t.Errorf("unexpected suggestion for distant name: %q", e.Suggestion)
	}
}
