package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "plain text passes through",
			raw:  "payment failed for my policy",
			want: "payment failed for my policy",
		},
		{
			name: "tags stripped",
			raw:  "<p>Please share the <b>policy copy</b></p>",
			want: "Please share the policy copy",
		},
		{
			name: "block tags become separators",
			raw:  "<div>first line</div><div>second line</div>",
			want: "first line second line",
		},
		{
			name: "script bodies dropped",
			raw:  "<p>visible</p><script>alert('hidden')</script><p>also visible</p>",
			want: "visible also visible",
		},
		{
			name: "style bodies dropped",
			raw:  "<style>.a { color: red; }</style>claim status",
			want: "claim status",
		},
		{
			name: "whitespace collapsed",
			raw:  "claim   \n\n  status\t\tupdate",
			want: "claim status update",
		},
		{
			name: "nested markup",
			raw:  "<div><ul><li>aadhaar update</li><li>pan update</li></ul></div>",
			want: "aadhaar update pan update",
		},
		{
			name: "entities decoded",
			raw:  "<p>claim &amp; endorsement</p>",
			want: "claim & endorsement",
		},
	}

	n := NewHTMLNormalizer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.raw))
		})
	}
}

func TestHTMLNormalizer_Pure(t *testing.T) {
	n := NewHTMLNormalizer()
	raw := "<p>the <b>surveyor</b> visited</p>"
	first := n.Normalize(raw)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, n.Normalize(raw))
	}
}
