package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

const (
	loginURL = "https://www.instagram.com/accounts/login/"

	cookieDeclineXPath = `//button[contains(text(), 'Decline optional cookies') or contains(text(), 'Alle optionalen Cookies ablehnen')]`
	loginCloseXPath    = `//*[local-name()='svg' and @aria-label='Close']/ancestor::div[@role='button']`
)

// RodResolver drives a stealth Chrome tab to read the caption and thumbnail
// of a public post. Cookie and login popups block the page source, so both
// are dismissed best-effort before reading.
type RodResolver struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	gate     *Gate
	logger   providers.Logger
	timeout  time.Duration
}

// NewResolver is the injection point for the browser-backed resolver.
func NewResolver(conf *structures.Config, logger providers.Logger) (Resolver, error) {
	return NewRodResolver(conf, logger)
}

func NewRodResolver(conf *structures.Config, logger providers.Logger) (*RodResolver, error) {
	l := launcher.New().
		Headless(conf.Fetch.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("lang", "en-US,en;q=0.9")

	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	r := &RodResolver{
		browser:  browser,
		launcher: l,
		gate:     NewGate(conf.Fetch.MinDelay, conf.Fetch.MaxDelay),
		logger:   logger,
		timeout:  conf.Fetch.Timeout,
	}
	if conf.Fetch.Username != "" && conf.Fetch.Password != "" {
		r.login(conf.Fetch.Username, conf.Fetch.Password)
	}
	return r, nil
}

// login authenticates the browser session once at startup. Captions of
// public posts are served to anonymous visitors too, so a failed login is
// logged and the resolver carries on without a session.
func (r *RodResolver) login(username, password string) {
	page, err := stealth.Page(r.browser)
	if err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login tab: %v", err)
		return
	}
	defer page.Close()
	page = page.Timeout(r.timeout)

	if err := page.Navigate(loginURL); err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login navigate: %v", err)
		return
	}
	if err := page.WaitLoad(); err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login page load: %v", err)
		return
	}
	r.dismiss(page, cookieDeclineXPath, "cookie consent")

	if err := r.fill(page, `input[name="username"]`, username); err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login username field: %v", err)
		return
	}
	if err := r.fill(page, `input[name="password"]`, password); err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login password field: %v", err)
		return
	}

	submit, err := page.Element(`button[type="submit"]`)
	if err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login submit button: %v", err)
		return
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		r.logger.Warnf(providers.TypeFetch, "Login submit: %v", err)
		return
	}
	// Instagram redirects after a short delay, give the session time to land.
	time.Sleep(5 * time.Second)
	r.logger.Infof(providers.TypeFetch, "Logged in as %s", username)
}

func (r *RodResolver) fill(page *rod.Page, selector, value string) error {
	el, err := page.Element(selector)
	if err != nil {
		return err
	}
	return el.Input(value)
}

func (r *RodResolver) Resolve(ctx context.Context, postURL string) (string, string, error) {
	r.gate.Wait()

	// Reels serve the same og: tags on their /p/ page.
	pageURL := strings.Replace(postURL, "/reel/", "/p/", 1)

	page, err := stealth.Page(r.browser)
	if err != nil {
		return "", "", fmt.Errorf("create tab: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	page = page.Context(navCtx)

	if err := page.Navigate(pageURL); err != nil {
		return "", "", fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		r.logger.Warnf(providers.TypeFetch, "Wait load timed out for %s: %v", pageURL, err)
	}

	r.dismiss(page, cookieDeclineXPath, "cookie consent")
	r.dismiss(page, loginCloseXPath, "login popup")

	pageHTML, err := page.HTML()
	if err != nil {
		return "", "", fmt.Errorf("read page %s: %w", pageURL, err)
	}

	caption := captionFromHTML(pageHTML)
	if caption == "" {
		return "", "", fmt.Errorf("no caption found for %s", pageURL)
	}
	return caption, thumbnailFromHTML(pageHTML), nil
}

// dismiss clicks the first element matching the XPath if it shows up
// quickly. Popups don't always appear, so failure is only logged.
func (r *RodResolver) dismiss(page *rod.Page, xpath, what string) {
	el, err := page.Timeout(5 * time.Second).ElementX(xpath)
	if err != nil {
		r.logger.Debugf(providers.TypeFetch, "No %s to dismiss: %v", what, err)
		return
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		r.logger.Debugf(providers.TypeFetch, "Could not dismiss %s: %v", what, err)
		return
	}
	time.Sleep(time.Second)
}

func (r *RodResolver) Close() {
	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			r.logger.Warnf(providers.TypeFetch, "Browser close: %v", err)
		}
	}
	if r.launcher != nil {
		r.launcher.Cleanup()
	}
}
