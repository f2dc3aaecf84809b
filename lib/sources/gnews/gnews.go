package gnews

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/jasidev/trendpost/lib/logger"
	"github.com/jasidev/trendpost/lib/types"
	"github.com/jasidev/trendpost/lib/web"
)

// Client fetches topic candidates from the Google News search feed,
// one request per configured query.
type Client struct {
	queries     []string
	maxPerQuery int
	log         *logger.Logger
}

func NewClient(queries []string, maxPerQuery int, log *logger.Logger) *Client {
	return &Client{queries: queries, maxPerQuery: maxPerQuery, log: log}
}

type feed struct {
	XMLName xml.Name `xml:"rss"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Items []item `xml:"item"`
}

type item struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

func searchFeedURL(query string) string {
	return "https://news.google.com/rss/search?q=" + url.QueryEscape(query) + "&hl=en-US&gl=US&ceid=US:en"
}

// extractActualLink unwraps Google redirect links of the form
// https://www.google.com/url?...&url=<target>&... into the target.
// Links without a url parameter are returned as they are.
func extractActualLink(encodedURL string) string {
	parsedURL, err := url.Parse(encodedURL)
	if err != nil {
		return encodedURL
	}
	target := parsedURL.Query().Get("url")
	if target == "" {
		return encodedURL
	}
	return target
}

// Search runs one feed request and returns candidates in feed order.
// Feed order is the provider's relevance ranking; selection downstream
// depends on it being preserved.
func (c *Client) Search(ctx context.Context, query string) ([]types.Topic, error) {
	xmlBytes, err := web.Get(ctx, searchFeedURL(query))
	if err != nil {
		return nil, err
	}
	return parseFeed(ctx, xmlBytes, query, c.maxPerQuery)
}

func parseFeed(ctx context.Context, xmlBytes []byte, query string, limit int) ([]types.Topic, error) {
	var f feed
	if err := xml.Unmarshal(xmlBytes, &f); err != nil {
		return nil, fmt.Errorf("unmarshaling feed xml: %w", err)
	}

	var topics []types.Topic
	for _, entry := range f.Channel.Items {
		if limit > 0 && len(topics) >= limit {
			break
		}
		link := extractActualLink(entry.Link)
		title := web.StripTags(entry.Title)
		if title == "" && link != "" {
			// Some entries carry a bare link only; fall back to the page title.
			if pageTitle, err := web.ExtractTitle(ctx, link); err == nil {
				title = pageTitle
			}
		}
		if title == "" {
			continue
		}
		topics = append(topics, types.Topic{Title: title, Link: link, Date: entry.PubDate, Query: query})
	}
	return topics, nil
}

// Topics collects candidates across all configured queries. A failing
// query is logged and skipped; only a run where every query fails is an
// error.
func (c *Client) Topics(ctx context.Context) ([]types.Topic, error) {
	var all []types.Topic
	failures := 0
	for _, query := range c.queries {
		topics, err := c.Search(ctx, query)
		if err != nil {
			c.log.Warning("search failed for query %q: %v", query, err)
			failures++
			continue
		}
		c.log.Info("query %q returned %v candidates", query, len(topics))
		all = append(all, topics...)
	}
	if failures == len(c.queries) {
		return nil, fmt.Errorf("all %v search queries failed", len(c.queries))
	}
	return all, nil
}
