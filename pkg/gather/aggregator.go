package gather

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/concurrent"
	"github.com/Protocol-Lattice/docassist/pkg/upload"
)

// Aggregator fetches URLs and reads files into a Bundle. Each source gets a
// single attempt.
type Aggregator struct {
	Client *http.Client
	Files  *upload.Reader
	// MaxBytes caps each fetched body; zero or less means no cap.
	MaxBytes int64
	// Concurrency above 1 resolves sources in parallel. Output order is the
	// same either way.
	Concurrency int
}

func NewAggregator(client *http.Client, files *upload.Reader) *Aggregator {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if files == nil {
		files = upload.NewDefaultReader()
	}
	return &Aggregator{
		Client:      client,
		Files:       files,
		MaxBytes:    files.MaxBytes,
		Concurrency: 1,
	}
}

type source struct {
	kind SourceKind
	url  string
	file upload.File
}

func (s source) label() string {
	if s.kind == KindFile {
		return s.file.Name
	}
	return s.url
}

type outcome struct {
	entry *Entry
	err   error
}

// Aggregate resolves every URL and then every file. Blank URLs are dropped.
// With no sources at all the bundle carries ErrNoContextRetrieved.
func (a *Aggregator) Aggregate(ctx context.Context, urls []string, files []upload.File) *Bundle {
	sources := make([]source, 0, len(urls)+len(files))
	for _, u := range CleanURLs(urls) {
		sources = append(sources, source{kind: KindURL, url: u})
	}
	for _, f := range files {
		sources = append(sources, source{kind: KindFile, file: f})
	}

	bundle := &Bundle{}
	if len(sources) == 0 {
		bundle.Errors = append(bundle.Errors, ErrNoContextRetrieved)
		return bundle
	}

	var outcomes []outcome
	if a.Concurrency <= 1 {
		outcomes = make([]outcome, len(sources))
		for i, s := range sources {
			outcomes[i] = a.resolve(ctx, s)
		}
	} else {
		outcomes, _ = concurrent.ParallelMap(ctx, sources, func(ctx context.Context, s source) (outcome, error) {
			return a.resolve(ctx, s), nil
		}, a.Concurrency)
	}

	for i, o := range outcomes {
		switch {
		case o.entry != nil:
			bundle.Entries = append(bundle.Entries, *o.entry)
		case o.err != nil:
			bundle.Errors = append(bundle.Errors, o.err)
		default:
			// never started: ctx ended while waiting for a slot
			bundle.Errors = append(bundle.Errors, sourceErr(sources[i], context.Cause(ctx)))
		}
	}

	ctxlog.FromContext(ctx).Debug("context gathered",
		"sources", len(sources), "entries", len(bundle.Entries), "errors", len(bundle.Errors))
	return bundle
}

func (a *Aggregator) resolve(ctx context.Context, s source) outcome {
	var (
		body string
		err  error
	)
	if s.kind == KindURL {
		body, err = a.fetch(ctx, s.url)
	} else {
		body, err = a.reader().ReadText(s.file)
	}
	if err != nil {
		serr := sourceErr(s, err)
		ctxlog.FromContext(ctx).Warn("context source failed", "kind", s.kind, "source", s.label(), "error", serr.Reason)
		return outcome{err: serr}
	}
	return outcome{entry: &Entry{Label: s.label(), Body: body}}
}

func (a *Aggregator) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := a.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.Status)
	}
	buf, err := upload.ReadLimited(resp.Body, a.MaxBytes)
	if err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Debug("fetched context url", "url", url, "bytes", len(buf))
	return string(buf), nil
}

func (a *Aggregator) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

func (a *Aggregator) reader() *upload.Reader {
	if a.Files != nil {
		return a.Files
	}
	return upload.NewDefaultReader()
}

type statusError string

func (s statusError) Error() string { return string(s) }

func sourceErr(s source, err error) *SourceError {
	reason := "canceled"
	if err != nil {
		reason = err.Error()
	}
	return &SourceError{Kind: s.kind, Label: s.label(), Reason: reason, Err: err}
}

// CleanURLs trims each entry and drops blanks, keeping order.
func CleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if s := strings.TrimSpace(u); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseURLs splits newline-separated input into cleaned URLs.
func ParseURLs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return CleanURLs(strings.Split(raw, "\n"))
}
