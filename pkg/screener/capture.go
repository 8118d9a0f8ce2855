package screener

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/root4loot/goutils/log"
)

// failureCaptureTimeout bounds the best-effort screenshot taken after a
// navigation failure, since the navigation deadline is usually spent by then.
const failureCaptureTimeout = time.Minute

// overlayJS renders the visited URL in a fixed, semi-transparent box in the
// bottom-right corner of the page so the address survives into the capture.
const overlayJS = `(url) => {
	let urlBar = document.createElement('div');
	urlBar.style.position = 'fixed';
	urlBar.style.bottom = '0';
	urlBar.style.right = '0';
	urlBar.style.width = '250px';
	urlBar.style.height = 'auto';
	urlBar.style.backgroundColor = 'rgba(0, 0, 0, 0.2)';
	urlBar.style.color = 'black';
	urlBar.style.fontSize = '20px';
	urlBar.style.padding = '10px';
	urlBar.style.zIndex = '9999';
	urlBar.style.fontFamily = 'Arial, sans-serif';
	urlBar.style.overflowY = 'auto';
	urlBar.style.textAlign = 'center';
	urlBar.innerText = url;
	document.body.appendChild(urlBar);
}`

// Capture visits a single URL on the shared browser and saves a full-page
// screenshot to the path matching its reachability. Failures never propagate:
// they are logged, classified as not reachable, and recorded on the Result.
func (s *Screener) Capture(rawURL string) Result {
	result := Result{URL: rawURL}

	if s.browser == nil {
		result.Error = ErrNotStarted
		log.Errorf("Error visiting %s: %v", rawURL, result.Error)
		return result
	}

	log.Debugf("Attempting capture on %s", rawURL)

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		result.Error = fmt.Errorf("error opening page: %w", err)
		log.Errorf("Error visiting %s: %v", rawURL, result.Error)
		return result
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.Options.Timeout)*time.Second)
	defer cancel()

	// All navigation work runs on a deadline-bound clone; the original page
	// handle stays free of it so cleanup and the failure capture still work
	// once the deadline is spent.
	bound := page.Context(ctx)

	status, err := s.navigate(bound, rawURL)
	if err != nil {
		result.Error = err
		log.Errorf("Error visiting %s: %v", rawURL, err)
		s.captureFailure(page, &result)
		return result
	}

	result.StatusCode = status
	result.Reachable = status < 400

	if result.Reachable {
		log.Resultf("URL reachable: %s", rawURL)
	} else {
		log.Warnf("URL not reachable: %s", rawURL)
	}

	if _, err := bound.Eval(overlayJS, rawURL); err != nil {
		result.Error = fmt.Errorf("error adding URL overlay: %w", err)
		result.Reachable = false
		log.Errorf("Error visiting %s: %v", rawURL, result.Error)
		s.captureFailure(page, &result)
		return result
	}

	img, err := bound.Screenshot(true, nil)
	if err != nil {
		result.Error = fmt.Errorf("error capturing screenshot: %w", err)
		result.Reachable = false
		log.Errorf("Error visiting %s: %v", rawURL, result.Error)
		s.captureFailure(page, &result)
		return result
	}
	result.Image = img

	if err := s.saveScreenshot(&result); err != nil {
		result.Error = err
		log.Errorf("Error saving screenshot for %s: %v", rawURL, err)
		return result
	}

	log.Infof("Screenshot saved as %s", result.Path)

	return result
}

// navigate sets the viewport, loads the URL, and returns the HTTP status of
// the first response received for it.
func (s *Screener) navigate(page *rod.Page, rawURL string) (int, error) {
	if s.Options.CaptureWidth != 0 && s.Options.CaptureHeight != 0 {
		viewport := &proto.EmulationSetDeviceMetricsOverride{
			Width:             s.Options.CaptureWidth,
			Height:            s.Options.CaptureHeight,
			DeviceScaleFactor: 1,
			Mobile:            false,
		}

		if err := page.SetViewport(viewport); err != nil {
			return 0, fmt.Errorf("error setting viewport: %w", err)
		}
	}

	var e proto.NetworkResponseReceived
	wait := page.WaitEvent(&e)

	if err := page.Navigate(rawURL); err != nil {
		return 0, fmt.Errorf("error navigating to %s: %w", rawURL, err)
	}

	wait()

	if e.Response == nil {
		if err := page.GetContext().Err(); err != nil {
			return 0, fmt.Errorf("%s timed out after %v: %w", rawURL, time.Duration(s.Options.Timeout)*time.Second, err)
		}
		return 0, fmt.Errorf("no response received from %s", rawURL)
	}

	if err := page.WaitLoad(); err != nil {
		return 0, fmt.Errorf("error waiting for %s to load: %w", rawURL, err)
	}

	return e.Response.Status, nil
}

// captureFailure grabs whatever the page currently shows after a failure and
// saves it to the not-reachable path. The URL is stamped onto the image bytes
// because the page itself can no longer be trusted to render an overlay. Best
// effort: if the capture fails too, only the already-logged error remains.
func (s *Screener) captureFailure(page *rod.Page, result *Result) {
	ctx, cancel := context.WithTimeout(context.Background(), failureCaptureTimeout)
	defer cancel()

	img, err := page.Context(ctx).Screenshot(true, nil)
	if err != nil {
		log.Debugf("Could not capture failure state for %s: %v", result.URL, err)
		return
	}

	stamped, err := Image(img).AddURLFooter(result.URL)
	if err != nil {
		log.Debugf("Could not stamp URL onto screenshot for %s: %v", result.URL, err)
		stamped = img
	}
	result.Image = stamped

	if err := s.saveScreenshot(result); err != nil {
		log.Debugf("Could not save failure screenshot for %s: %v", result.URL, err)
		return
	}

	log.Debugf("Failure screenshot saved as %s", result.Path)
}

// saveScreenshot writes the result's image to its classified path and records
// the path on the result.
func (s *Screener) saveScreenshot(result *Result) error {
	path := s.outputPath(result.URL, result.Reachable)

	if err := os.WriteFile(path, result.Image, 0644); err != nil {
		return fmt.Errorf("error saving screenshot: %w", err)
	}

	result.Path = path
	return nil
}
