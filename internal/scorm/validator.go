package scorm

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/scormforge/scormforge/consts"
)

// Validator re-opens an assembled archive and checks the generated artifacts
// against a fixed rule set. Rule failures never surface as errors; everything
// lands in the report.
type Validator struct {
	maxRecomputeDistance int
	rules                map[string]func(content string) error
}

// NewValidator creates a validator. maxRecomputeDistance bounds how far the
// navigation state recompute may sit after the content-load completion point.
func NewValidator(maxRecomputeDistance int) *Validator {
	if maxRecomputeDistance <= 0 {
		maxRecomputeDistance = 500
	}
	v := &Validator{maxRecomputeDistance: maxRecomputeDistance}
	v.rules = map[string]func(string) error{
		consts.NavigationPath: v.checkNavigation,
		consts.StylesPath:     v.checkStyles,
		consts.IndexPath:      v.checkIndex,
	}
	return v
}

// Validate inspects the archive bytes and returns the report. All failures,
// including an unreadable archive, are captured as report entries.
func (v *Validator) Validate(archive []byte) *ValidationReport {
	report := &ValidationReport{}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		report.addError("archive", "failed to open ZIP archive: "+err.Error())
		return report
	}

	for path, rule := range v.rules {
		content, err := readEntry(zr, path)
		if err != nil {
			report.addError(path, "file not found in package")
			continue
		}
		if err := rule(content); err != nil {
			report.addError(path, err.Error())
		} else {
			report.addPass(path, "validation passed")
		}
	}

	v.checkTopicPages(zr, report)

	return report
}

// checkNavigation verifies the navigation script's structure, including the
// ordering invariant: state must be recomputed only after the new page's
// content and widgets exist in the DOM.
func (v *Validator) checkNavigation(content string) error {
	if !strings.Contains(content, "shouldBlockNavigation()") {
		return fmt.Errorf("navigation blocking function not found")
	}
	if !strings.Contains(content, "updateNavigationState()") {
		return fmt.Errorf("navigation state update not found")
	}
	if ok, reason := v.recomputeHappensAfterContentLoad(content); !ok {
		return fmt.Errorf("%s", reason)
	}
	if !strings.Contains(content, "[SCORM Navigation] Sidebar click:") {
		return fmt.Errorf("sidebar navigation logging not found")
	}
	if !strings.Contains(content, "window.checkFillInBlank") {
		return fmt.Errorf("fill-in-blank check function not found")
	}
	if !strings.Contains(content, "window.checkMultipleChoice") {
		return fmt.Errorf("multiple choice check function not found")
	}
	return nil
}

// recomputeHappensAfterContentLoad encodes the ordering invariant as a
// bounded-distance check over the rendered text. The heuristic lives behind
// this predicate so it can be replaced by a real parse without touching the
// rule set.
func (v *Validator) recomputeHappensAfterContentLoad(content string) (bool, string) {
	blockStart := strings.Index(content, ".then(html => {")
	if blockStart < 0 {
		return false, "navigateToPage then block not found"
	}
	block := content[blockStart:]

	audioPos := strings.Index(block, "initializePageAudio(pageId)")
	if audioPos < 0 {
		return false, "initializePageAudio not found in then block"
	}

	navPos := strings.Index(block[audioPos:], "updateNavigationState()")
	if navPos < 0 {
		return false, "updateNavigationState() not found after initializePageAudio in then block"
	}
	if navPos > v.maxRecomputeDistance {
		return false, "updateNavigationState() too far from content load"
	}
	return true, ""
}

// checkStyles verifies the stylesheet layout rules and rejects the oversized
// fixed min-height that pushes the footer off screen inside LMS iframes
func (v *Validator) checkStyles(content string) error {
	if strings.Contains(content, "min-height: 800px !important") {
		return fmt.Errorf("found problematic min-height: 800px !important that pushes footer off screen")
	}
	if !strings.Contains(content, "body") || !strings.Contains(content, "height: 100vh") {
		return fmt.Errorf("body missing proper height: 100vh")
	}
	if !strings.Contains(content, ".main-area") || !strings.Contains(content, "display: flex") {
		return fmt.Errorf("main area missing flex layout")
	}
	if !strings.Contains(content, ".footer") {
		return fmt.Errorf("footer styles missing")
	}
	if !strings.Contains(content, ".nav-button:disabled") {
		return fmt.Errorf("disabled navigation button styles missing")
	}
	if !strings.Contains(content, ".knowledge-check-container") {
		return fmt.Errorf("knowledge check container styles missing")
	}
	if !strings.Contains(content, ".kc-fill-blank") {
		return fmt.Errorf("fill-in-blank input styles missing")
	}
	return nil
}

// checkIndex verifies the shell exposes the elements the navigation script
// wires up
func (v *Validator) checkIndex(content string) error {
	if !strings.Contains(content, `id="prev-button"`) {
		return fmt.Errorf("previous button not found")
	}
	if !strings.Contains(content, `id="next-button"`) {
		return fmt.Errorf("next button not found")
	}
	if !strings.Contains(content, `id="content-container"`) {
		return fmt.Errorf("content container not found")
	}
	if !strings.Contains(content, `id="scorm-alert-container"`) {
		return fmt.Errorf("alert container not found")
	}
	return nil
}

// checkTopicPages cross-checks every topic page carrying a knowledge check:
// fill-in-blank inputs must carry the styling class and wire their submit to
// the unified handler. This catches the drift where a question type exists in
// the templates but the navigation script never learned to handle it.
func (v *Validator) checkTopicPages(zr *zip.Reader, report *ValidationReport) {
	for _, f := range zr.File {
		name := f.Name
		if !strings.HasPrefix(name, consts.PagesPrefix+"topic-") || !strings.HasSuffix(name, ".html") {
			continue
		}
		content, err := readEntry(zr, name)
		if err != nil {
			continue
		}
		if !strings.Contains(content, "knowledge-check-container") {
			continue
		}
		if strings.Contains(content, "fill-blank-") {
			if !strings.Contains(content, "kc-fill-blank") {
				report.addError(name, "fill-in-blank input missing proper class")
			}
			if !strings.Contains(content, `onclick="window.submitAllKnowledgeChecks`) {
				report.addError(name, "fill-in-blank submit button missing proper onclick handler")
			}
		}
	}
}

func readEntry(zr *zip.Reader, path string) (string, error) {
	f, err := zr.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ValidationEntry is one per-path outcome
type ValidationEntry struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationReport aggregates per-path outcomes of one validation run
type ValidationReport struct {
	Passes []ValidationEntry `json:"passes"`
	Errors []ValidationEntry `json:"errors"`
}

func (r *ValidationReport) addPass(path, message string) {
	r.Passes = append(r.Passes, ValidationEntry{Path: path, Message: message})
}

func (r *ValidationReport) addError(path, message string) {
	r.Errors = append(r.Errors, ValidationEntry{Path: path, Message: message})
}

// HasErrors reports whether any rule failed
func (r *ValidationReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary renders the human-readable report with the full per-file
// diagnostic list
func (r *ValidationReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Validation Report: %d success, %d errors\n", len(r.Passes), len(r.Errors))
	if len(r.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  - %s: %s\n", e.Path, e.Message)
		}
	}
	return b.String()
}
