package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// FetchResult contains the text extracted from a remote document
type FetchResult struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Text        string   `json:"text"`
	Links       []string `json:"links,omitempty"`
	StatusCode  int      `json:"status_code"`
	ContentType string   `json:"content_type,omitempty"`
}

// Options configures a Fetcher
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// MaxBytes caps how much of a response body is read. Zero means no cap.
	MaxBytes int64
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

func NewFetcher(opts Options) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
	}
}

// Fetch downloads a document and extracts its visible text. HTML is parsed,
// text/plain is used as is.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	result := &FetchResult{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes)
	}

	if isPlainText(result.ContentType) {
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		result.Text = string(raw)
		return result, nil
	}

	parsed, err := ParseHTML(body, rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}
	result.Title = parsed.Title
	result.Text = parsed.Text
	result.Links = parsed.Links
	return result, nil
}

func isPlainText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/plain"
}

// ParseHTML extracts the title, visible text and outbound links of an HTML
// document. Relative links are resolved against baseURL when it is set.
func ParseHTML(body io.Reader, baseURL string) (*FetchResult, error) {
	result := &FetchResult{URL: baseURL, Links: make([]string, 0)}
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false
	inTitle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				result.Text = cleanText(textBuilder.String())
				return result, nil
			}
			return nil, tokenizer.Err()

		case html.StartTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			case "title":
				inTitle = true
			case "a":
				for _, attr := range token.Attr {
					if attr.Key == "href" {
						if link := cleanLink(attr.Val, baseURL); link != "" {
							result.Links = append(result.Links, link)
						}
					}
				}
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			case "title":
				inTitle = false
			}

		case html.TextToken:
			data := tokenizer.Token().Data
			if inTitle {
				result.Title = strings.TrimSpace(data)
			}
			if !inScript && !inStyle {
				text := strings.TrimSpace(data)
				if text != "" {
					textBuilder.WriteString(text + " ")
				}
			}
		}
	}
}

// cleanText removes excessive whitespace
func cleanText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// cleanLink handles relative URLs
func cleanLink(href, baseURL string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}

	if strings.HasPrefix(href, "http") {
		return href
	}
	if baseURL == "" {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}
