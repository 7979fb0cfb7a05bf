package documents_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/documents"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// stubVoucherGenerator devuelve un PDF fijo y cuenta las invocaciones.
type stubVoucherGenerator struct {
	calls int
}

func (g *stubVoucherGenerator) GenerateVoucherPDF(
	_ context.Context,
	_ *entity.Document,
	_ *entity.Warehouse,
	_ *entity.Warehouse,
	_ *entity.Contact,
	_ []documents.VoucherLineForPDF,
) ([]byte, error) {
	g.calls++
	return []byte("%PDF-stub"), nil
}

func newVoucherUC(e *engine, gen documents.VoucherPDFGenerator) *documents.VoucherUseCase {
	return documents.NewVoucherUseCase(
		&memDocumentRepo{store: e.store},
		&memProductRepo{store: e.store},
		&memWarehouseRepo{store: e.store},
		&memContactRepo{store: e.store},
		gen,
	)
}

// completedReceipt crea y completa una entrada, devolviendo su respuesta.
func completedReceipt(t *testing.T, e *engine) *dto.DocumentResponse {
	t.Helper()
	ctx := context.Background()
	doc, err := e.uc.Create(ctx, testUser, dto.CreateDocumentRequest{
		Type:        entity.DocTypeRECEIPT,
		WarehouseID: testW1,
		ContactID:   testVendor,
		Lines:       []dto.DocumentLineRequest{{ProductID: testProductID, UOM: "94", Quantity: qty(10)}},
	})
	require.NoError(t, err)
	_, err = e.uc.Approve(ctx, doc.ID, testApprover)
	require.NoError(t, err)
	done, err := e.uc.Complete(ctx, doc.ID, testApprover)
	require.NoError(t, err)
	return done
}

func TestVoucher_DocumentoCompletadoGeneraPDF(t *testing.T) {
	e := newEngine(t)
	doc := completedReceipt(t, e)
	gen := &stubVoucherGenerator{}
	uc := newVoucherUC(e, gen)

	pdf, filename, err := uc.DownloadVoucherPDF(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "comprobante_"+doc.Reference+".pdf", filename)
	assert.Equal(t, 1, gen.calls)
}

func TestVoucher_DocumentoSinCompletarRetornaInvalido(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	doc, err := e.uc.Create(ctx, testUser, dto.CreateDocumentRequest{
		Type:        entity.DocTypeRECEIPT,
		WarehouseID: testW1,
		ContactID:   testVendor,
		Lines:       []dto.DocumentLineRequest{{ProductID: testProductID, UOM: "94", Quantity: qty(10)}},
	})
	require.NoError(t, err)
	gen := &stubVoucherGenerator{}

	_, _, err = newVoucherUC(e, gen).DownloadVoucherPDF(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, gen.calls)
}

func TestVoucher_DocumentoInexistenteRetornaNotFound(t *testing.T) {
	e := newEngine(t)
	_, _, err := newVoucherUC(e, &stubVoucherGenerator{}).DownloadVoucherPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La bodega del documento borrada después de completarlo debe reportarse como
// not-found, no como error interno: el repo devuelve (nil, nil) y el caso de
// uso no puede envolver un error nulo.
func TestVoucher_BodegaAusenteRetornaNotFound(t *testing.T) {
	e := newEngine(t)
	doc := completedReceipt(t, e)

	e.store.mu.Lock()
	delete(e.store.warehouses, testW1)
	e.store.mu.Unlock()

	gen := &stubVoucherGenerator{}
	_, _, err := newVoucherUC(e, gen).DownloadVoucherPDF(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, gen.calls)
}

func TestVoucher_BodegaDestinoAusenteRetornaNotFound(t *testing.T) {
	e := newEngine(t)
	e.seedReceipt(t, testW1, qty(10))

	ctx := context.Background()
	doc, err := e.uc.Create(ctx, testUser, dto.CreateDocumentRequest{
		Type:          entity.DocTypeTRANSFER,
		WarehouseID:   testW1,
		ToWarehouseID: testW2,
		Lines:         []dto.DocumentLineRequest{{ProductID: testProductID, UOM: "94", Quantity: qty(5)}},
	})
	require.NoError(t, err)
	_, err = e.uc.Approve(ctx, doc.ID, testApprover)
	require.NoError(t, err)
	_, err = e.uc.Complete(ctx, doc.ID, testApprover)
	require.NoError(t, err)

	e.store.mu.Lock()
	delete(e.store.warehouses, testW2)
	e.store.mu.Unlock()

	_, _, err = newVoucherUC(e, &stubVoucherGenerator{}).DownloadVoucherPDF(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
