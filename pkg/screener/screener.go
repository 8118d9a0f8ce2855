package screener

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/root4loot/goutils/log"
)

// Classification folders, created under Options.OutputDir. A screenshot lands
// in exactly one of them depending on how the navigation went.
const (
	ReachableDir    = "Reachable"
	NotReachableDir = "Not Reachable"
)

// ErrNotStarted is returned in a Result when Capture is called before Start.
var ErrNotStarted = errors.New("browser not started")

// Screener owns a single shared browser session and captures classified
// screenshots of URLs, one at a time.
type Screener struct {
	Options Options

	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Options contains the capture settings.
type Options struct {
	CaptureHeight           int    // Height of the capture
	CaptureWidth            int    // Width of the capture
	Timeout                 int    // Timeout for each navigation (seconds)
	IgnoreCertificateErrors bool   // Ignore certificate errors
	DisableHTTP2            bool   // Disable HTTP2
	Headless                bool   // Run the browser in headless mode
	UserAgent               string // User agent
	OutputDir               string // Parent of the classification folders
}

// Result contains the outcome of a single URL capture.
type Result struct {
	URL        string
	StatusCode int
	Reachable  bool
	Image      Image
	Path       string
	Error      error
}

func init() {
	log.Init("massscreener")
	log.SetLevel(log.InfoLevel)
}

// DefaultOptions returns an Options struct initialized with default values.
func DefaultOptions() Options {
	return Options{
		CaptureHeight:           768,
		CaptureWidth:            1366,
		Timeout:                 1200,
		IgnoreCertificateErrors: true,
		DisableHTTP2:            true,
		Headless:                true,
		UserAgent:               "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
		OutputDir:               ".",
	}
}

// NewScreener creates a Screener with default options.
func NewScreener() *Screener {
	return &Screener{
		Options: DefaultOptions(),
	}
}

// NewScreenerWithOptions creates a Screener with the provided options.
func NewScreenerWithOptions(options Options) *Screener {
	return &Screener{
		Options: options,
	}
}

// Start launches the browser and connects to it. The session is shared by
// every subsequent Capture call and released by Close.
func (s *Screener) Start() error {
	path, _ := launcher.LookPath()

	l := launcher.New().
		Headless(s.Options.Headless).
		Bin(path).
		NoSandbox(true)

	if s.Options.UserAgent != "" {
		l.Set("user-agent", s.Options.UserAgent)
	}

	if s.Options.IgnoreCertificateErrors {
		l.Set("ignore-certificate-errors", "true")
	}

	if s.Options.DisableHTTP2 {
		l.Set("disable-http2", "true")
	}

	browserURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("error launching browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("error connecting to browser: %w", err)
	}

	s.launcher = l
	s.browser = browser

	return nil
}

// Close shuts down the shared browser session.
func (s *Screener) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Debugf("Error closing browser: %v", err)
		}
		s.browser = nil
	}

	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
}

// EnsureOutputDirs creates the Reachable and Not Reachable folders under
// Options.OutputDir.
func (s *Screener) EnsureOutputDirs() error {
	for _, dir := range []string{ReachableDir, NotReachableDir} {
		if err := os.MkdirAll(filepath.Join(s.Options.OutputDir, dir), os.ModePerm); err != nil {
			return fmt.Errorf("error creating output folder %s: %w", dir, err)
		}
	}

	return nil
}

// Run ensures the output folders exist, starts the browser, and captures each
// URL strictly in input order, one at a time. Per-URL failures are logged and
// do not stop the run; the returned error covers setup only.
func (s *Screener) Run(urls []string) ([]Result, error) {
	if err := s.EnsureOutputDirs(); err != nil {
		return nil, err
	}

	if err := s.Start(); err != nil {
		return nil, err
	}
	defer s.Close()

	results := make([]Result, 0, len(urls))
	for _, url := range urls {
		results = append(results, s.Capture(url))
	}

	return results, nil
}

// outputPath returns the classified destination for a URL.
func (s *Screener) outputPath(rawURL string, reachable bool) string {
	name := Filename(rawURL)
	if reachable {
		return filepath.Join(s.Options.OutputDir, ReachableDir, name+".png")
	}
	return filepath.Join(s.Options.OutputDir, NotReachableDir, name+"_not_reachable.png")
}
