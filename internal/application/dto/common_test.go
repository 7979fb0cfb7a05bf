package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
)

func TestPageRequest_DefaultsYOffset(t *testing.T) {
	var p dto.PageRequest
	p.DefaultPage()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = dto.PageRequest{Page: 3, Limit: 25}
	p.DefaultPage()
	assert.Equal(t, 50, p.Offset())
}

func TestNewPagination_Calculos(t *testing.T) {
	cases := []struct {
		name               string
		page, limit, total int
		want               dto.Pagination
	}{
		{
			name: "total exacto en paginas completas",
			page: 1, limit: 10, total: 20,
			want: dto.Pagination{CurrentPage: 1, TotalPages: 2, TotalRecords: 20, HasNext: true, HasPrev: false},
		},
		{
			name: "pagina parcial al final redondea hacia arriba",
			page: 3, limit: 10, total: 21,
			want: dto.Pagination{CurrentPage: 3, TotalPages: 3, TotalRecords: 21, HasNext: false, HasPrev: true},
		},
		{
			name: "pagina intermedia tiene ambas direcciones",
			page: 2, limit: 5, total: 12,
			want: dto.Pagination{CurrentPage: 2, TotalPages: 3, TotalRecords: 12, HasNext: true, HasPrev: true},
		},
		{
			name: "sin registros",
			page: 1, limit: 10, total: 0,
			want: dto.Pagination{CurrentPage: 1, TotalPages: 0, TotalRecords: 0, HasNext: false, HasPrev: false},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dto.NewPagination(tc.page, tc.limit, tc.total))
		})
	}
}
