package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ", wantOK: true},
		{url: "https://youtu.be/dQw4w9WgXcQ?t=42", want: "dQw4w9WgXcQ", wantOK: true},
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=x", want: "dQw4w9WgXcQ", wantOK: true},
		{url: "https://m.youtube.com/watch?v=abc_DEF-123", want: "abc_DEF-123", wantOK: true},
		{url: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ", wantOK: true},
		{url: "https://youtube.com/shorts/short1", want: "short1", wantOK: true},
		{url: "https://www.youtube.com/live/live42?si=x", want: "live42", wantOK: true},
		{url: "https://www.youtube.com/channel/UC123"},
		{url: "https://vimeo.com/12345"},
		{url: "https://youtu.be/"},
		{url: "not a url"},
		{url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := VideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
