// Package view renders a FetchState as an HTML page of user cards or as
// plain text.
package view

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"math"
	texttemplate "text/template"
	"time"

	"github.com/h2hsecure/usercards/internal/domain"
)

const (
	PageTemplate  = "page"
	usersTemplate = "users"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").ParseFS(templatesFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.New("").ParseFS(templatesFS, "templates/*.txt.tmpl"))
)

// Page is the data of the "page" template.
type Page struct {
	ViewId         string
	State          domain.FetchState
	RefreshURL     string
	RefreshSeconds int
}

// NewPage builds a page that polls refreshURL every refresh while the
// state is loading. An empty refreshURL disables polling.
func NewPage(viewId string, state domain.FetchState, refreshURL string, refresh time.Duration) Page {
	return Page{
		ViewId:         viewId,
		State:          state,
		RefreshURL:     refreshURL,
		RefreshSeconds: int(math.Max(1, math.Ceil(refresh.Seconds()))),
	}
}

// Templates is the HTML template set, for gin's HTML renderer.
func Templates() *htmltemplate.Template {
	return htmlTemplates
}

func Render(w io.Writer, page Page) error {
	if err := htmlTemplates.ExecuteTemplate(w, PageTemplate, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func RenderText(w io.Writer, state domain.FetchState) error {
	if err := textTemplates.ExecuteTemplate(w, usersTemplate, state); err != nil {
		return fmt.Errorf("render text: %w", err)
	}
	return nil
}
