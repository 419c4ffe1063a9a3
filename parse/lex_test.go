package parse

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "   \t  ", nil},
		{"single", "build", []string{"build"}},
		{"simple", "deploy --release prog", []string{"deploy", "--release", "prog"}},
		{"irregular whitespace", "  wallet \t connect  ", []string{"wallet", "connect"}},
		{"no quoting semantics", `build "my target"`, []string{"build", `"my`, `target"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
