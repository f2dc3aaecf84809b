package gnews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"golang" - Google News</title>
    <item>
      <title>Go 1.25 released with faster GC - TechCrunch</title>
      <link>https://news.google.com/rss/articles/CBMiabc123</link>
      <pubDate>Mon, 24 Aug 2026 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>&lt;a href="https://example.com"&gt;Kubernetes turns ten&lt;/a&gt;&amp;nbsp;years old</title>
      <link>https://www.google.com/url?rct=j&amp;url=https://example.com/k8s-ten&amp;ct=ga</link>
      <pubDate>Mon, 24 Aug 2026 13:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Third story about WebAssembly</title>
      <link>https://example.com/wasm</link>
      <pubDate>Mon, 24 Aug 2026 14:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestParseFeedPreservesOrder(t *testing.T) {
	topics, err := parseFeed(context.Background(), []byte(fixtureFeed), "golang", 0)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "Go 1.25 released with faster GC - TechCrunch", topics[0].Title)
	assert.Equal(t, "Third story about WebAssembly", topics[2].Title)
	for _, topic := range topics {
		assert.Equal(t, "golang", topic.Query)
	}
}

func TestParseFeedStripsHTMLFromTitles(t *testing.T) {
	topics, err := parseFeed(context.Background(), []byte(fixtureFeed), "golang", 0)
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes turns ten years old", topics[1].Title)
}

func TestParseFeedUnwrapsRedirectLinks(t *testing.T) {
	topics, err := parseFeed(context.Background(), []byte(fixtureFeed), "golang", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/k8s-ten", topics[1].Link)
	// Links without a url parameter stay untouched.
	assert.Equal(t, "https://news.google.com/rss/articles/CBMiabc123", topics[0].Link)
}

func TestParseFeedRespectsLimit(t *testing.T) {
	topics, err := parseFeed(context.Background(), []byte(fixtureFeed), "golang", 2)
	require.NoError(t, err)
	assert.Len(t, topics, 2)
}

func TestParseFeedBadXML(t *testing.T) {
	_, err := parseFeed(context.Background(), []byte("not xml"), "golang", 0)
	assert.Error(t, err)
}

func TestExtractActualLink(t *testing.T) {
	assert.Equal(t, "https://example.com/story",
		extractActualLink("https://www.google.com/url?rct=j&url=https://example.com/story&ct=ga"))
	assert.Equal(t, "https://example.com/direct",
		extractActualLink("https://example.com/direct"))
}

func TestSearchFeedURL(t *testing.T) {
	u := searchFeedURL("artificial intelligence")
	assert.Contains(t, u, "news.google.com/rss/search")
	assert.Contains(t, u, "q=artificial+intelligence")
}
