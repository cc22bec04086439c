package loki

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultBatchSize     = 20
	defaultFlushInterval = time.Second
)

type Options struct {
	// URL is the Loki base URL, e.g. http://loki:3100.
	URL string
	// Labels become the stream labels of every pushed line.
	Labels        map[string]string
	BatchSize     int
	FlushInterval time.Duration
	Client        *http.Client
}

// Writer buffers log lines and sends them to Loki's push API. It is safe for
// concurrent use and can back a zap core.
type Writer struct {
	url       string
	labels    map[string]string
	batchSize int
	client    *http.Client

	mu     sync.Mutex
	buf    [][]string
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewWriter returns a Writer pushing to opts.URL, or nil when no URL is set.
func NewWriter(opts Options) *Writer {
	if opts.URL == "" {
		return nil
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 5 * time.Second}
	}
	w := &Writer{
		url:       strings.TrimSuffix(opts.URL, "/") + "/loki/api/v1/push",
		labels:    opts.Labels,
		batchSize: opts.BatchSize,
		client:    opts.Client,
		buf:       make([][]string, 0, opts.BatchSize),
		ticker:    time.NewTicker(opts.FlushInterval),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.flushLoop()
	return w
}

// Write implements io.Writer. Each non-empty line becomes one Loki entry.
func (w *Writer) Write(p []byte) (n int, err error) {
	n = len(p)
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.mu.Lock()
		w.buf = append(w.buf, []string{strconv.FormatInt(time.Now().UnixNano(), 10), string(line)})
		needFlush := len(w.buf) >= w.batchSize
		w.mu.Unlock()
		if needFlush {
			w.flush()
		}
	}
	return n, nil
}

// Sync flushes buffered lines; it lets the writer act as a zapcore.WriteSyncer.
func (w *Writer) Sync() error {
	w.flush()
	return nil
}

func (w *Writer) flushLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			w.flush()
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return
	}
	values := w.buf
	w.buf = make([][]string, 0, w.batchSize)
	w.mu.Unlock()

	raw, err := json.Marshal(pushRequest{Streams: []stream{{Stream: w.labels, Values: values}}})
	if err != nil {
		return
	}
	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close stops the background flusher and pushes what is left.
func (w *Writer) Close() error {
	w.ticker.Stop()
	close(w.done)
	w.wg.Wait()
	w.flush()
	return nil
}
