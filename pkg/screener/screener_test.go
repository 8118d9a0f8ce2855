package screener

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	options := DefaultOptions()

	if options.Timeout != 1200 {
		t.Errorf("Expected navigation timeout of 1200 seconds, got %d", options.Timeout)
	}

	if options.CaptureWidth != 1366 || options.CaptureHeight != 768 {
		t.Errorf("Expected 1366x768 viewport, got %dx%d", options.CaptureWidth, options.CaptureHeight)
	}

	if !options.Headless {
		t.Error("Expected headless mode to be enabled")
	}

	if !options.IgnoreCertificateErrors {
		t.Error("Expected certificate errors to be ignored")
	}

	if options.OutputDir != "." {
		t.Errorf("Expected output dir to be the working directory, got %s", options.OutputDir)
	}
}

func TestEnsureOutputDirs(t *testing.T) {
	options := DefaultOptions()
	options.OutputDir = t.TempDir()

	s := NewScreenerWithOptions(options)
	if err := s.EnsureOutputDirs(); err != nil {
		t.Fatalf("Failed to create output dirs: %v", err)
	}

	for _, dir := range []string{ReachableDir, NotReachableDir} {
		info, err := os.Stat(filepath.Join(options.OutputDir, dir))
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}

	// Creating them again must not fail.
	if err := s.EnsureOutputDirs(); err != nil {
		t.Errorf("Expected existing dirs to be accepted: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	options := DefaultOptions()
	options.OutputDir = "out"
	s := NewScreenerWithOptions(options)

	tests := []struct {
		name      string
		url       string
		reachable bool
		want      string
	}{
		{
			name:      "reachable",
			url:       "https://example.com",
			reachable: true,
			want:      filepath.Join("out", ReachableDir, "example.com.png"),
		},
		{
			name:      "not reachable",
			url:       "https://this-domain-does-not-exist.invalid",
			reachable: false,
			want:      filepath.Join("out", NotReachableDir, "this-domain-does-not-exist.invalid_not_reachable.png"),
		},
		{
			name:      "path flattened",
			url:       "https://example.com/admin/login",
			reachable: true,
			want:      filepath.Join("out", ReachableDir, "example.com_admin_login.png"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.outputPath(tt.url, tt.reachable); got != tt.want {
				t.Errorf("outputPath(%q, %v) = %q, want %q", tt.url, tt.reachable, got, tt.want)
			}
		})
	}
}

func TestOutputPathDistinctURLs(t *testing.T) {
	s := NewScreener()

	p1 := s.outputPath("https://example.com", true)
	p2 := s.outputPath("https://example.org", true)

	if p1 == p2 {
		t.Errorf("Expected distinct paths for distinct URLs, both were %q", p1)
	}
}

func TestCaptureBeforeStart(t *testing.T) {
	s := NewScreener()

	result := s.Capture("https://example.com")
	if !errors.Is(result.Error, ErrNotStarted) {
		t.Errorf("Expected ErrNotStarted, got %v", result.Error)
	}

	if result.Reachable {
		t.Error("Expected result to be classified not reachable")
	}

	if result.Path != "" {
		t.Errorf("Expected no file to be written, got path %s", result.Path)
	}
}
