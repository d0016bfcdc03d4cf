package crawler

import (
	"testing"
	"time"

	"newsharvest/internal/models"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name  string
		query models.HeadlineQuery
		want  string
	}{
		{
			name:  "window",
			query: models.NewHeadlineQuery("Acme Corp", day(2021, time.February, 1), day(2021, time.February, 7), 50),
			want:  "https://news.google.com/search?q=Acme%20Corp%20after%3A2021-02-01%20before%3A2021-02-07&hl=en-US&gl=US&ceid=US%3Ae",
		},
		{
			name:  "start only defaults end",
			query: models.NewHeadlineQuery("Acme Corp", day(2021, time.February, 1), nil, 50),
			want:  "https://news.google.com/search?q=Acme%20Corp%20after%3A2021-02-01%20before%3A2021-02-02&hl=en-US&gl=US&ceid=US%3Ae",
		},
		{
			name:  "no dates",
			query: models.NewHeadlineQuery("Apple", nil, nil, 50),
			want:  "https://news.google.com/search?q=Apple&hl=en-US&gl=US&ceid=US%3Ae",
		},
		{
			name:  "end only",
			query: models.NewHeadlineQuery("Apple", nil, day(2004, time.July, 31), 50),
			want:  "https://news.google.com/search?q=Apple%20before%3A2004-07-31&hl=en-US&gl=US&ceid=US%3Ae",
		},
		{
			name:  "reserved characters escaped",
			query: models.NewHeadlineQuery("AT&T Inc.", nil, nil, 50),
			want:  "https://news.google.com/search?q=AT%26T%20Inc.&hl=en-US&gl=US&ceid=US%3Ae",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSearchURL("https://news.google.com/search", tt.query, DefaultLocale)
			if got != tt.want {
				t.Errorf("BuildSearchURL() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}
