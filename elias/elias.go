package elias

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"eliasstats/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("eliasstats/elias")

// ErrEmptyReport is returned by FetchReport when the report body has no
// meaningful content.
var ErrEmptyReport = errors.New("report is empty")

const (
	minReportLength = 10
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

type ClientOptions struct {
	// PageURL is the media central page listing the league-wide reports.
	PageURL string
	Timeout time.Duration
}

// Client fetches the stats page and its text reports over one cookie
// session, so the CDN sees the same cookies the page handed out.
type Client struct {
	PageURL *url.URL
	Http    *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	pageURL, err := url.Parse(opts.PageURL)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	client := resty.New()
	client.SetCookieJar(jar)
	client.SetTimeout(timeout)
	client.SetHeaders(map[string]string{
		"User-Agent":      userAgent,
		"Referer":         "https://www.nba.com/",
		"Accept":          "text/html,text/plain,*/*",
		"Accept-Language": "en-US,en;q=0.9",
	})

	return &Client{
		PageURL: pageURL,
		Http:    client,
	}, nil
}

// EstablishSession loads the stats page, keeping whatever cookies it sets,
// and returns the parsed page for link discovery.
func (c *Client) EstablishSession(ctx context.Context) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:EstablishSession")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.PageURL.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch stats page")
		return nil, utils.ErrorWithTrace(err)
	}
	if res.IsError() {
		err := fmt.Errorf("stats page returned %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, utils.ErrorWithTrace(err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse stats page")
		return nil, utils.ErrorWithTrace(err)
	}
	doc.Url = c.PageURL
	return doc, nil
}

// Link is a report anchor found on the stats page.
type Link struct {
	Name string
	Slug string
	URL  string
}

// Slugify turns a report name as shown on the page into its storage slug:
// "Ratios - Players" -> "ratios___players".
func Slugify(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "-", "_")
	return strings.ToLower(r.Replace(strings.ToUpper(strings.TrimSpace(name))))
}

// DiscoverLinks lists the report anchors on the stats page: links to .txt
// files or anything under the EliasGameStats path. Relative hrefs resolve
// against the page URL; duplicates are dropped.
func DiscoverLinks(doc *goquery.Document) []Link {
	links := []Link{}
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		name := strings.Join(strings.Fields(s.Text()), " ")
		if name == "" || !(strings.HasSuffix(href, ".txt") || strings.Contains(href, "EliasGameStats")) {
			return
		}
		target, err := url.Parse(href)
		if err != nil {
			return
		}
		if doc.Url != nil {
			target = doc.Url.ResolveReference(target)
		}
		u := target.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, Link{Name: name, Slug: Slugify(name), URL: u})
	})
	return links
}

// FetchReport downloads one report. Reports served as HTML are reduced to
// the text of their <pre> block, or of the whole page when there is none.
func (c *Client) FetchReport(ctx context.Context, reportURL string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchReport")
	defer span.End()
	span.SetAttributes(attribute.String("url", reportURL))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(reportURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch report")
		return "", utils.ErrorWithTrace(err)
	}
	if res.IsError() {
		err := fmt.Errorf("%s returned %s", reportURL, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return "", utils.ErrorWithTrace(err)
	}

	body := res.Body()
	content := string(body)
	if isHTML(res.Header().Get("Content-Type"), body) {
		content, err = htmlReportText(body)
		if err != nil {
			span.RecordError(err)
			return "", utils.ErrorWithTrace(err)
		}
	}
	if len(strings.TrimSpace(content)) < minReportLength {
		span.SetStatus(codes.Error, "empty report")
		return "", ErrEmptyReport
	}
	span.SetAttributes(attribute.Int("chars", len(content)))
	return content, nil
}

func isHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")) || bytes.HasPrefix(trimmed, []byte("<html"))
}

func htmlReportText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	if pre := doc.Find("pre").First(); pre.Length() > 0 {
		return pageText(pre.Get(0)), nil
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return pageText(body.Get(0)), nil
	}
	return pageText(doc.Get(0)), nil
}

func pageText(node *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return buf.String()
}
