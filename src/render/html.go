package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jiaming2012/broker-client/src/view"
)

//go:embed templates/*.html
var templateFS embed.FS

type HTMLRenderer struct {
	login *template.Template
	order *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	funcs := template.FuncMap{
		"formatNumber": view.FormatNumber,
	}

	login, err := template.New("login.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("NewHTMLRenderer: failed to parse login template: %w", err)
	}

	order, err := template.New("order.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/order.html")
	if err != nil {
		return nil, fmt.Errorf("NewHTMLRenderer: failed to parse order template: %w", err)
	}

	return &HTMLRenderer{login: login, order: order}, nil
}

func (r *HTMLRenderer) RenderLogin(w io.Writer, page *view.LoginPage) error {
	if err := r.login.Execute(w, page); err != nil {
		return fmt.Errorf("RenderLogin: %w", err)
	}

	return nil
}

func (r *HTMLRenderer) RenderOrder(w io.Writer, page *view.OrderPage) error {
	if err := r.order.Execute(w, page); err != nil {
		return fmt.Errorf("RenderOrder: %w", err)
	}

	return nil
}
