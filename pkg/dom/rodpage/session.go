// Package rodpage hosts the dom.Control interface on a live browser page
// driven by go-rod. Values are written through the element properties and
// events are real DOM events, so page scripts (masks, validators) react as
// they would to a user.
package rodpage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Options configures the browser launch.
type Options struct {
	Headless bool
	Bin      string
	// ControlURL connects to an already running browser instead of launching.
	ControlURL string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

func WithHeadless(headless bool) Option {
	return func(o *Options) { o.Headless = headless }
}

func WithBin(path string) Option {
	return func(o *Options) { o.Bin = path }
}

func WithControlURL(url string) Option {
	return func(o *Options) { o.ControlURL = url }
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.Timeout = timeout
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// Session owns a browser and the page opened in it.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *Page
	logger   *zap.Logger
}

// Open launches (or connects to) a browser and navigates to url.
func Open(ctx context.Context, url string, opts ...Option) (*Session, error) {
	o := Options{Headless: true, Timeout: 30 * time.Second, Logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s := &Session{logger: o.Logger}
	controlURL := o.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(o.Headless)
		if o.Bin != "" {
			l = l.Bin(o.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("rodpage: launch: %w", err)
		}
		s.launcher = l
		controlURL = u
		o.Logger.Debug("launched browser", zap.String("control_url", u), zap.Bool("headless", o.Headless))
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("rodpage: connect: %w", err)
	}
	s.browser = browser

	navCtx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("rodpage: open %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		o.Logger.Debug("wait load failed", zap.String("url", url), zap.Error(err))
	}
	s.page = Wrap(page.Context(ctx), o.Logger)
	return s, nil
}

// Page returns the opened page.
func (s *Session) Page() *Page {
	return s.page
}

// Close shuts the browser down and removes the launcher profile.
func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.cleanup()
	if err != nil {
		return fmt.Errorf("rodpage: close: %w", err)
	}
	return nil
}

func (s *Session) cleanup() {
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
}
