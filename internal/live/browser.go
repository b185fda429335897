package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/hltv"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

const (
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

	// The anti-bot interstitial can take far longer than a plain page load.
	challengeWait = 60 * time.Second
)

// BrowserProvider renders JS-gated pages in a headless browser. The browser
// allocator lives for the provider lifetime; every operation runs in its own
// tab, released on success and failure alike. When an anti-bot challenge
// indicator is present after navigation, the wait for content is extended
// within a bounded budget.
type BrowserProvider struct {
	baseURL   string
	headless  bool
	timeout   time.Duration
	extractor *hltv.Extractor
	logger    zerolog.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewBrowserProvider(params Params, logger zerolog.Logger) *BrowserProvider {
	timeout := time.Duration(params.BrowserTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://www.hltv.org"
	}
	return &BrowserProvider{
		baseURL:   baseURL,
		headless:  params.BrowserHeadless,
		timeout:   timeout,
		extractor: hltv.NewExtractor(baseURL, logger),
		logger:    logger,
	}
}

func (p *BrowserProvider) ensureInit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.allocCtx != nil {
		return nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", p.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(browserUserAgent),
	)
	p.allocCtx, p.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	p.logger.Info().Bool("headless", p.headless).Msg("browser provider initialized")
	return nil
}

func (p *BrowserProvider) LiveMatches(ctx context.Context) ([]domain.LiveMatch, error) {
	html, err := p.renderPage(ctx, p.baseURL+"/matches", ".liveMatches")
	if err != nil {
		return nil, err
	}
	return p.extractor.ParseLiveMatches(html)
}

func (p *BrowserProvider) MatchLiveData(ctx context.Context, matchID, url string) (*domain.LiveMatch, error) {
	if url == "" {
		return nil, domain.ErrNotFound
	}

	html, err := p.renderPage(ctx, url, ".mapholder")
	if err != nil {
		return nil, err
	}

	detail, err := p.extractor.ParseMatchDetail(html, matchID)
	if err != nil {
		return nil, err
	}

	return p.extractor.ParseLiveDetail(html, domain.LiveMatch{
		MatchID: matchID,
		Team1:   detail.Team1,
		Team2:   detail.Team2,
		Event:   detail.Event,
		Format:  detail.Format,
		URL:     url,
	})
}

// renderPage navigates a fresh tab to url, waits for waitSelector and
// returns the rendered document.
func (p *BrowserProvider) renderPage(ctx context.Context, url, waitSelector string) (string, error) {
	if err := p.ensureInit(); err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(p.allocCtx)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, p.timeout)
	defer cancelRun()

	var challenged bool
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Evaluate(`document.querySelector("div#challenge-running, div.cf-browser-verification") !== null`, &challenged),
	)
	if err != nil {
		return "", fmt.Errorf("failed to navigate %s: %w", url, err)
	}

	waitCtx := runCtx
	if challenged {
		p.logger.Info().Str("url", url).Msg("anti-bot challenge detected, extending wait")
		var cancelWait context.CancelFunc
		waitCtx, cancelWait = context.WithTimeout(tabCtx, challengeWait)
		defer cancelWait()
	}

	var html string
	err = chromedp.Run(waitCtx,
		chromedp.WaitReady(waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}
	return html, nil
}

func (p *BrowserProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.allocCancel != nil {
		p.allocCancel()
		p.allocCtx = nil
		p.allocCancel = nil
	}
	return nil
}
