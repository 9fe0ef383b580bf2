package views

import (
	"net/url"
	"strconv"
)

// Pager enlaces de paginación conservando los filtros de la consulta.
type Pager struct {
	Path       string
	Query      url.Values
	PageNumber int
	PageSize   int
	Total      int
}

// Pages número total de páginas (mínimo 1).
func (p Pager) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Link URL de la página n.
func (p Pager) Link(n int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = v
	}
	q.Set("page_number", strconv.Itoa(n))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	return p.Path + "?" + q.Encode()
}

func pager(b *writer, p Pager) {
	pages := p.Pages()
	b.rawf(`<p class="pager">Total: %d · Página %d de %d `, p.Total, p.PageNumber, pages)
	if p.PageNumber > 1 {
		b.rawf(`<a href="%s">« Anterior</a>`, e(p.Link(p.PageNumber-1)))
	}
	if p.PageNumber < pages {
		b.rawf(`<a href="%s">Siguiente »</a>`, e(p.Link(p.PageNumber+1)))
	}
	b.raw(`</p>`)
}
