package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func doc(docType, status string) *entity.Document {
	return &entity.Document{Type: docType, Status: status}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones del ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestDocument_TablaDeTransiciones(t *testing.T) {
	casos := []struct {
		status   string
		submit   bool
		approve  bool
		reject   bool
		complete bool
		cancel   bool
	}{
		{entity.DocStatusDRAFT, true, true, false, false, true},
		{entity.DocStatusWAITING, false, true, true, false, true},
		{entity.DocStatusREADY, false, false, false, true, true},
		{entity.DocStatusDONE, false, false, false, false, false},
		{entity.DocStatusCANCELED, false, false, false, false, false},
	}
	for _, tc := range casos {
		t.Run(tc.status, func(t *testing.T) {
			d := doc(entity.DocTypeRECEIPT, tc.status)
			assert.Equal(t, tc.submit, d.CanSubmit(), "submit")
			assert.Equal(t, tc.approve, d.CanApprove(), "approve")
			assert.Equal(t, tc.reject, d.CanReject(), "reject")
			assert.Equal(t, tc.complete, d.CanComplete(), "complete")
			assert.Equal(t, tc.cancel, d.CanCancel(), "cancel")
		})
	}
}

func TestDocument_EstadosTerminales(t *testing.T) {
	assert.True(t, doc(entity.DocTypeRECEIPT, entity.DocStatusDONE).IsTerminal())
	assert.True(t, doc(entity.DocTypeRECEIPT, entity.DocStatusCANCELED).IsTerminal())
	assert.False(t, doc(entity.DocTypeRECEIPT, entity.DocStatusDRAFT).IsTerminal())
	assert.False(t, doc(entity.DocTypeRECEIPT, entity.DocStatusWAITING).IsTerminal())
	assert.False(t, doc(entity.DocTypeRECEIPT, entity.DocStatusREADY).IsTerminal())
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas salientes (requieren reserva)
// ──────────────────────────────────────────────────────────────────────────────

func TestDocument_LineasSalientes(t *testing.T) {
	pos := entity.DocumentLine{Quantity: decimal.NewFromInt(5)}
	neg := entity.DocumentLine{Quantity: decimal.NewFromInt(-5)}

	assert.False(t, doc(entity.DocTypeRECEIPT, "").IsOutboundLine(pos), "una entrada nunca reserva")
	assert.True(t, doc(entity.DocTypeDELIVERY, "").IsOutboundLine(pos))
	assert.True(t, doc(entity.DocTypeTRANSFER, "").IsOutboundLine(pos), "el traslado reserva en origen")
	assert.True(t, doc(entity.DocTypeADJUSTMENT, "").IsOutboundLine(neg))
	assert.False(t, doc(entity.DocTypeADJUSTMENT, "").IsOutboundLine(pos), "un ajuste positivo no reserva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación estructural
// ──────────────────────────────────────────────────────────────────────────────

func TestDocument_Validate(t *testing.T) {
	line := func(q int64) entity.DocumentLine {
		return entity.DocumentLine{ProductID: "p1", Quantity: decimal.NewFromInt(q)}
	}

	casos := []struct {
		nombre string
		d      entity.Document
		ok     bool
	}{
		{
			nombre: "entrada válida",
			d: entity.Document{Type: entity.DocTypeRECEIPT, WarehouseID: "w1", ContactID: "c1",
				Lines: []entity.DocumentLine{line(10)}},
			ok: true,
		},
		{
			nombre: "tipo desconocido",
			d:      entity.Document{Type: "PURCHASE", WarehouseID: "w1", Lines: []entity.DocumentLine{line(1)}},
		},
		{
			nombre: "sin líneas",
			d:      entity.Document{Type: entity.DocTypeRECEIPT, WarehouseID: "w1", ContactID: "c1"},
		},
		{
			nombre: "entrada sin tercero",
			d:      entity.Document{Type: entity.DocTypeRECEIPT, WarehouseID: "w1", Lines: []entity.DocumentLine{line(1)}},
		},
		{
			nombre: "salida con cantidad negativa",
			d: entity.Document{Type: entity.DocTypeDELIVERY, WarehouseID: "w1", ContactID: "c1",
				Lines: []entity.DocumentLine{line(-1)}},
		},
		{
			nombre: "traslado a sí mismo",
			d: entity.Document{Type: entity.DocTypeTRANSFER, WarehouseID: "w1", ToWarehouseID: "w1",
				Lines: []entity.DocumentLine{line(1)}},
		},
		{
			nombre: "traslado válido",
			d: entity.Document{Type: entity.DocTypeTRANSFER, WarehouseID: "w1", ToWarehouseID: "w2",
				Lines: []entity.DocumentLine{line(1)}},
			ok: true,
		},
		{
			nombre: "ajuste negativo válido",
			d: entity.Document{Type: entity.DocTypeADJUSTMENT, WarehouseID: "w1",
				Lines: []entity.DocumentLine{line(-3)}},
			ok: true,
		},
		{
			nombre: "ajuste con cantidad cero",
			d: entity.Document{Type: entity.DocTypeADJUSTMENT, WarehouseID: "w1",
				Lines: []entity.DocumentLine{line(0)}},
		},
		{
			nombre: "línea sin producto",
			d: entity.Document{Type: entity.DocTypeADJUSTMENT, WarehouseID: "w1",
				Lines: []entity.DocumentLine{{Quantity: decimal.NewFromInt(1)}}},
		},
		{
			nombre: "costo negativo",
			d: entity.Document{Type: entity.DocTypeRECEIPT, WarehouseID: "w1", ContactID: "c1",
				Lines: []entity.DocumentLine{{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(-5)}}},
		},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}
