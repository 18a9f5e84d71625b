package exporter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/atelier/backend/internal/domain/shared"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultMarginMM      = 12.0
)

// RenderRequest carries one HTML document and the page setup from the
// report template it was built with.
type RenderRequest struct {
	HTML        string
	Title       string
	PaperSize   reporting.PaperSize
	Orientation reporting.Orientation
	Timeout     time.Duration
}

// PDFRenderer renders an HTML document to a PDF byte stream
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) ([]byte, error)
	Close() error
}

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// DefaultTimeout for rendering operations
	DefaultTimeout time.Duration
	// RemoteURL points at a remote Chrome instance; empty launches one locally
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpRenderer renders HTML to PDF using Chrome DevTools Protocol
type ChromedpRenderer struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(config *ChromedpConfig) (*ChromedpRenderer, error) {
	if config == nil {
		config = &ChromedpConfig{}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		config: config,
		logger: logger,
	}
	r.initAllocator()

	return r, nil
}

func (r *ChromedpRenderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) ([]byte, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, shared.NewDomainError("RENDER_FAILED", "HTML content is empty")
	}
	if !req.PaperSize.IsValid() {
		return nil, shared.NewDomainError("RENDER_FAILED", "Invalid paper size: "+string(req.PaperSize))
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	widthMM, heightMM := paperDimensionsMM(req.PaperSize)
	landscape := req.Orientation == reporting.OrientationLandscape

	var pdfData []byte
	started := time.Now()

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, req.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(widthMM)).
				WithPaperHeight(mmToInches(heightMM)).
				WithMarginTop(mmToInches(defaultMarginMM)).
				WithMarginRight(mmToInches(defaultMarginMM)).
				WithMarginBottom(mmToInches(defaultMarginMM)).
				WithMarginLeft(mmToInches(defaultMarginMM)).
				WithLandscape(landscape).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, shared.NewDomainError("RENDER_FAILED", "Generated PDF is empty")
	}

	r.logger.Debug("pdf rendered",
		zap.String("title", req.Title),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(started)))

	return pdfData, nil
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// paperDimensionsMM returns portrait width and height in millimeters
func paperDimensionsMM(size reporting.PaperSize) (float64, float64) {
	if size == reporting.PaperLetter {
		return 215.9, 279.4
	}
	return 210, 297 // A4
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
