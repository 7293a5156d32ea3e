package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "Chrome concentrate, 50t", "Chrome concentrate, 50t"},
		{"apostrophe kept", "What's the grade?", "What's the grade?"},
		{"ampersand kept", "Rock & Ore", "Rock & Ore"},
		{"comparison kept", "grade > 40%", "grade > 40%"},
		{"tags stripped", "<b>Bold</b> offer", "Bold offer"},
		{"script removed", "Hello<script>alert('x')</script>", "Hello"},
		{"encoded script removed", "&lt;script&gt;alert(1)&lt;/script&gt;ok", "ok"},
		{"surrounding space trimmed", "  hi  ", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}
