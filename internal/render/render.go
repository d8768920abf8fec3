// Package render produces the text artifacts of a package: HTML pages, the
// navigation script, and the stylesheet. Templates are registered once at
// construction and executed by name. All helpers are pure functions, so
// identical input renders identical output.
package render

import (
	"bytes"
	"html"
	"reflect"
	"strings"
	"text/template"

	"github.com/scormforge/scormforge/pkg/errors"
)

// Renderer renders named templates with the helper set
type Renderer struct {
	tmpl  *template.Template
	hosts []string
}

// NewRenderer creates a renderer. hosts are the URL substrings that mark a
// media URL as an externally hosted video; they feed the isExternalVideo and
// extractExternalVideoID helpers and the MediaIsExternalVideo classifier.
func NewRenderer(hosts []string) *Renderer {
	r := &Renderer{hosts: hosts}
	r.initTemplates()
	return r
}

func (r *Renderer) initTemplates() {
	funcMap := template.FuncMap{
		// eq and or shadow the builtins: eq compares by deep equality, or
		// reports whether any argument is truthy in the JSON sense
		"eq":                     deepEqual,
		"or":                     anyTruthy,
		"isExternalVideo":        r.IsExternalVideo,
		"extractExternalVideoID": r.ExtractExternalVideoID,
		"add":                    func(a, b int) int { return a + b },
		"escape":                 html.EscapeString,
	}

	r.tmpl = template.New("scorm").Funcs(funcMap)

	template.Must(r.tmpl.New("index").Parse(indexTemplate))
	template.Must(r.tmpl.New("welcome").Parse(welcomeTemplate))
	template.Must(r.tmpl.New("objectives").Parse(objectivesTemplate))
	template.Must(r.tmpl.New("topic").Parse(topicTemplate))
	template.Must(r.tmpl.New("assessment").Parse(assessmentTemplate))
	template.Must(r.tmpl.New("media_items").Parse(mediaItemsTemplate))
	template.Must(r.tmpl.New("audio_block").Parse(audioBlockTemplate))
	template.Must(r.tmpl.New("navigation").Parse(navigationTemplate))
	template.Must(r.tmpl.New("styles").Parse(stylesTemplate))
}

// Render executes the named template against data
func (r *Renderer) Render(name string, data any) (string, error) {
	if r.tmpl.Lookup(name) == nil {
		return "", errors.New(errors.ErrCodeTemplateNotFound, "unknown template: "+name)
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.ErrTemplate("failed to render template "+name, err)
	}
	return buf.String(), nil
}

// IsExternalVideo reports whether the URL matches a known external video host
func (r *Renderer) IsExternalVideo(url string) bool {
	for _, h := range r.hosts {
		if h != "" && strings.Contains(url, h) {
			return true
		}
	}
	return false
}

// MediaIsExternalVideo is the single classification point for media items:
// the explicit flag wins when present, otherwise the embed URL and then the
// plain URL are matched against the host markers.
func (r *Renderer) MediaIsExternalVideo(explicit *bool, url, embedURL string) bool {
	if explicit != nil {
		return *explicit
	}
	return r.IsExternalVideo(embedURL) || r.IsExternalVideo(url)
}

// ExtractExternalVideoID pulls the platform video id out of the two URL
// shapes in use: .../watch?v=ID[&...] and short links .../ID[?...]. Returns
// the empty string when neither shape matches.
func (r *Renderer) ExtractExternalVideoID(url string) string {
	if i := strings.Index(url, "watch?v="); i >= 0 {
		id := url[i+len("watch?v="):]
		if j := strings.IndexByte(id, '&'); j >= 0 {
			id = id[:j]
		}
		return id
	}
	if !r.IsExternalVideo(url) {
		return ""
	}
	trimmed := url
	if j := strings.IndexByte(trimmed, '?'); j >= 0 {
		trimmed = trimmed[:j]
	}
	if k := strings.LastIndexByte(trimmed, '/'); k >= 0 && k+1 < len(trimmed) {
		return trimmed[k+1:]
	}
	return ""
}

func deepEqual(a, b any) bool { return reflect.DeepEqual(a, b) }

// anyTruthy implements JSON truthiness: null, false, zero numbers, empty
// strings and empty collections are falsy
func anyTruthy(vals ...any) bool {
	for _, v := range vals {
		if truthy(v) {
			return true
		}
	}
	return false
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return truthy(rv.Elem().Interface())
	default:
		return true
	}
}
