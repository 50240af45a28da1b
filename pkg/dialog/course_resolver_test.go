package dialog

import (
	"context"
	"errors"
	"testing"

	"course-copilot-be/pkg/llm"
)

type fakeCatalog struct {
	courses []string
	err     error
}

func (f *fakeCatalog) ListCourses(ctx context.Context) ([]string, error) {
	return f.courses, f.err
}

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestResolveExactMatchSkipsModel(t *testing.T) {
	provider := &fakeLLM{}
	r := NewLLMCourseResolver(&fakeCatalog{courses: []string{"Algoritmos", "Base de Datos"}}, provider, nopLogger{})

	course, ok, err := r.Resolve(context.Background(), "  base de datos ")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !ok || course != "Base de Datos" {
		t.Errorf("Resolve = %q, %v", course, ok)
	}
	if provider.calls != 0 {
		t.Errorf("exact match made %d model calls", provider.calls)
	}
}

func TestResolveFuzzyMatchValidatedAgainstCatalog(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantOK   bool
		want     string
	}{
		{"model matches a real course", "Algoritmos", true, "Algoritmos"},
		{"model answer quoted", `"Algoritmos"`, true, "Algoritmos"},
		{"no match", "NO_MATCH", false, ""},
		{"invented course rejected", "Curso de Magia", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeLLM{response: tt.response}
			r := NewLLMCourseResolver(&fakeCatalog{courses: []string{"Algoritmos"}}, provider, nopLogger{})

			course, ok, err := r.Resolve(context.Background(), "algo")
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if ok != tt.wantOK || course != tt.want {
				t.Errorf("Resolve = %q, %v; want %q, %v", course, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveModelFailureDegradesToNoMatch(t *testing.T) {
	provider := &fakeLLM{err: errors.New("model down")}
	r := NewLLMCourseResolver(&fakeCatalog{courses: []string{"Algoritmos"}}, provider, nopLogger{})

	course, ok, err := r.Resolve(context.Background(), "algo")
	if err != nil {
		t.Fatalf("model failure must not error, got %v", err)
	}
	if ok || course != "" {
		t.Errorf("Resolve = %q, %v; want no match", course, ok)
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	provider := &fakeLLM{}
	r := NewLLMCourseResolver(&fakeCatalog{}, provider, nopLogger{})

	_, ok, err := r.Resolve(context.Background(), "algo")
	if err != nil || ok {
		t.Errorf("Resolve = %v, %v; want no match, nil", ok, err)
	}
	if provider.calls != 0 {
		t.Error("empty catalog must not reach the model")
	}
}

func TestResolveCatalogFailure(t *testing.T) {
	r := NewLLMCourseResolver(&fakeCatalog{err: errors.New("db down")}, &fakeLLM{}, nopLogger{})

	if _, _, err := r.Resolve(context.Background(), "algo"); err == nil {
		t.Error("expected catalog error to surface")
	}
}
