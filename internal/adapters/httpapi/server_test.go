package httpapi

import (
	"reflect"
	"testing"
)

func TestExtractItemTitles(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss><channel>
<title>CERT-In Advisories</title>
<item><title> Phishing campaign targeting banks </title><link>x</link></item>
<item><title>Malware spread via QR codes</title></item>
<item><title>UPI fraud advisory</title></item>
</channel></rss>`

	got := extractItemTitles(feed, 5)
	want := []string{
		"Phishing campaign targeting banks",
		"Malware spread via QR codes",
		"UPI fraud advisory",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractItemTitlesLimit(t *testing.T) {
	feed := "<item><title>a</title></item>" +
		"<item><title>b</title></item>" +
		"<item><title>c</title></item>"

	got := extractItemTitles(feed, 2)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected first two titles, got %v", got)
	}
}

func TestExtractItemTitlesSkipsChannelTitle(t *testing.T) {
	feed := "<channel><title>Feed Title</title><item><title>only</title></item></channel>"
	got := extractItemTitles(feed, 5)
	if len(got) != 1 || got[0] != "only" {
		t.Errorf("channel-level title must be ignored, got %v", got)
	}
}

func TestExtractItemTitlesMalformed(t *testing.T) {
	for _, feed := range []string{"", "plain text", "<item><title>unclosed", "<item></item>"} {
		got := extractItemTitles(feed, 5)
		if len(got) != 0 {
			t.Errorf("expected no titles for %q, got %v", feed, got)
		}
	}
}
