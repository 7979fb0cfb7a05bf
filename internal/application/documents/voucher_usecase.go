package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// VoucherLineForPDF es una línea del documento enriquecida con los datos del
// producto que el comprobante imprime.
type VoucherLineForPDF struct {
	entity.DocumentLine
	ProductSKU  string
	ProductName string
}

// VoucherPDFGenerator es el puerto de generación del comprobante en PDF.
// La implementación concreta vive en infrastructure/pdf.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(
		ctx context.Context,
		doc *entity.Document,
		warehouse *entity.Warehouse,
		toWarehouse *entity.Warehouse,
		contact *entity.Contact,
		lines []VoucherLineForPDF,
	) ([]byte, error)
}

// VoucherUseCase genera el comprobante imprimible de un documento de inventario.
// Solo se permite para documentos ya aplicados al stock (DONE).
type VoucherUseCase struct {
	docRepo       repository.DocumentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	contactRepo   repository.ContactRepository
	generator     VoucherPDFGenerator
}

// NewVoucherUseCase construye el caso de uso inyectando todas sus dependencias.
func NewVoucherUseCase(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	contactRepo repository.ContactRepository,
	generator VoucherPDFGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{
		docRepo:       docRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		contactRepo:   contactRepo,
		generator:     generator,
	}
}

// DownloadVoucherPDF recupera el documento con sus líneas, verifica que ya fue
// completado y genera el comprobante.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrInvalidInput     si el documento no está en DONE.
func (uc *VoucherUseCase) DownloadVoucherPDF(ctx context.Context, documentID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar documento ───────────────────────────────────────────────────
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("voucher: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Validar que ya fue aplicado al stock ───────────────────────────────
	if doc.Status != entity.DocStatusDONE {
		return nil, "", fmt.Errorf("%w: el documento está en estado %s, solo los documentos completados tienen comprobante",
			domain.ErrInvalidInput, doc.Status)
	}

	// ── 3. Cargar bodega(s) ───────────────────────────────────────────────────
	warehouse, err := uc.warehouseRepo.GetByID(doc.WarehouseID)
	if err != nil {
		return nil, "", fmt.Errorf("voucher: obtener bodega: %w", err)
	}
	if warehouse == nil {
		return nil, "", fmt.Errorf("voucher: bodega %s: %w", doc.WarehouseID, domain.ErrNotFound)
	}
	var toWarehouse *entity.Warehouse
	if doc.ToWarehouseID != "" {
		toWarehouse, err = uc.warehouseRepo.GetByID(doc.ToWarehouseID)
		if err != nil {
			return nil, "", fmt.Errorf("voucher: obtener bodega destino: %w", err)
		}
		if toWarehouse == nil {
			return nil, "", fmt.Errorf("voucher: bodega destino %s: %w", doc.ToWarehouseID, domain.ErrNotFound)
		}
	}

	// ── 4. Cargar tercero (opcional: los ajustes y traslados no llevan) ───────
	var contact *entity.Contact
	if doc.ContactID != "" {
		contact, err = uc.contactRepo.GetByID(doc.ContactID)
		if err != nil {
			return nil, "", fmt.Errorf("voucher: obtener tercero: %w", err)
		}
	}

	// ── 5. Enriquecer líneas con nombre y SKU del producto ────────────────────
	enriched := make([]VoucherLineForPDF, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		name := "Producto " + l.ProductID // fallback
		sku := ""
		if product, pErr := uc.productRepo.GetByID(l.ProductID); pErr == nil && product != nil {
			name = product.Name
			sku = product.SKU
		}
		enriched = append(enriched, VoucherLineForPDF{
			DocumentLine: l,
			ProductSKU:   sku,
			ProductName:  name,
		})
	}

	// ── 6. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateVoucherPDF(ctx, doc, warehouse, toWarehouse, contact, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("voucher: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("comprobante_%s.pdf", doc.Reference)
	return pdfBytes, filename, nil
}
