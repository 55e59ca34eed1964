package service

import (
	"math"

	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

const (
	defaultPerPage = 8
	maxPerPage     = 100
	// maxPage keeps (page-1)*perPage within an int32 so the store skip never
	// overflows. Pages past the end are simply empty.
	maxPage = math.MaxInt32 / maxPerPage
)

func normalizeFilter(f ports.ListFilter) ports.ListFilter {
	if f.Pagina < 1 {
		f.Pagina = 1
	}
	if f.Pagina > maxPage {
		f.Pagina = maxPage
	}
	if f.PorPagina <= 0 {
		f.PorPagina = defaultPerPage
	}
	if f.PorPagina > maxPerPage {
		f.PorPagina = maxPerPage
	}
	return f
}

func listMeta(total int64, perPage int) ports.ListMeta {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	return ports.ListMeta{LastPage: last, Total: total}
}
