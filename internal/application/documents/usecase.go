package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// LifecycleUseCase gobierna el ciclo de vida de los documentos de inventario:
// create → submit → approve → complete, con reject/cancel en los estados no
// terminales. Toda transición que toca saldos corre dentro de una transacción
// con la fila del documento bloqueada (SELECT FOR UPDATE), de modo que dos
// complete o cancel concurrentes sobre el mismo documento nunca pasan ambos.
type LifecycleUseCase struct {
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	contactRepo   repository.ContactRepository
	poster        *stock.Poster
	reserver      *stock.Reserver
	log           *logger.Logger
}

// NewLifecycleUseCase construye el caso de uso. docRepo/productRepo/etc. van
// atados al pool (lecturas); las escrituras usan los repos de la tx.
func NewLifecycleUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	contactRepo repository.ContactRepository,
	poster *stock.Poster,
	reserver *stock.Reserver,
	log *logger.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:      txRunner,
		docRepo:       docRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		contactRepo:   contactRepo,
		poster:        poster,
		reserver:      reserver,
		log:           log,
	}
}

// Create valida la estructura y las referencias del documento y lo persiste
// en DRAFT. No tiene ningún efecto sobre saldos.
func (uc *LifecycleUseCase) Create(ctx context.Context, createdBy string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	now := time.Now()
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Reference:     in.Reference,
		Status:        entity.DocStatusDRAFT,
		WarehouseID:   in.WarehouseID,
		ToWarehouseID: in.ToWarehouseID,
		FromLocation:  in.FromLocation,
		ToLocation:    in.ToLocation,
		ContactID:     in.ContactID,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, line := range in.Lines {
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			LineNo:    i + 1,
			ProductID: line.ProductID,
			UOM:       line.UOM,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}
	if doc.Reference == "" {
		doc.Reference = generateReference(doc.Type)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	// Referencias: producto(s), bodega(s) y tercero deben existir
	for _, line := range doc.Lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrNotFound)
		}
	}
	if wh, err := uc.warehouseRepo.GetByID(doc.WarehouseID); err != nil || wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", doc.WarehouseID, domain.ErrNotFound)
	}
	if doc.Type == entity.DocTypeTRANSFER {
		if wh, err := uc.warehouseRepo.GetByID(doc.ToWarehouseID); err != nil || wh == nil {
			return nil, fmt.Errorf("bodega destino %s: %w", doc.ToWarehouseID, domain.ErrNotFound)
		}
	}
	if doc.ContactID != "" {
		if c, err := uc.contactRepo.GetByID(doc.ContactID); err != nil || c == nil {
			return nil, fmt.Errorf("tercero %s: %w", doc.ContactID, domain.ErrNotFound)
		}
	}

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		return repos.Documents.Create(doc)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("document_id", doc.ID).
		Str("type", doc.Type).
		Str("reference", doc.Reference).
		Msg("documento creado")
	return toDocumentResponse(doc), nil
}

// Submit pasa un borrador a espera de aprobación. Sin efecto sobre stock.
func (uc *LifecycleUseCase) Submit(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, id, func(repos TxRepos, doc *entity.Document) error {
		if !doc.CanSubmit() {
			return fmt.Errorf("documento %s en %s no puede enviarse: %w", doc.ID, doc.Status, domain.ErrConflict)
		}
		prev := doc.Status
		doc.Status = entity.DocStatusWAITING
		doc.UpdatedAt = time.Now()
		return repos.Documents.Update(doc, prev)
	})
}

// Approve pasa el documento a READY. Para las líneas salientes (DELIVERY,
// TRANSFER, ajustes negativos) aparta la cantidad en la clave de origen; si
// alguna línea no tiene disponible suficiente la aprobación completa falla y
// no queda ninguna reserva parcial.
func (uc *LifecycleUseCase) Approve(ctx context.Context, id, validatedBy string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, id, func(repos TxRepos, doc *entity.Document) error {
		if !doc.CanApprove() {
			return fmt.Errorf("documento %s en %s no puede aprobarse: %w", doc.ID, doc.Status, domain.ErrConflict)
		}
		now := time.Now()
		if err := uc.reserver.Reserve(repos.Balances, repos.Reservations, doc, now); err != nil {
			return err
		}
		prev := doc.Status
		doc.Status = entity.DocStatusREADY
		doc.ValidatedBy = validatedBy
		doc.ValidatedAt = &now
		doc.UpdatedAt = now
		return repos.Documents.Update(doc, prev)
	})
}

// Reject rechaza un documento en espera de aprobación y registra el motivo.
// Libera cualquier reserva por si existiera (no se espera ninguna en WAITING).
func (uc *LifecycleUseCase) Reject(ctx context.Context, id, reason string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, id, func(repos TxRepos, doc *entity.Document) error {
		if !doc.CanReject() {
			return fmt.Errorf("documento %s en %s no puede rechazarse: %w", doc.ID, doc.Status, domain.ErrConflict)
		}
		now := time.Now()
		if err := uc.reserver.Release(repos.Balances, repos.Reservations, doc.ID, now); err != nil {
			return err
		}
		prev := doc.Status
		doc.Status = entity.DocStatusCANCELED
		doc.CanceledReason = reason
		doc.UpdatedAt = now
		return repos.Documents.Update(doc, prev)
	})
}

// Complete ejecuta READY → DONE: asienta en el libro y actualiza el saldo de
// cada línea, libera la reserva exactamente una vez y marca el documento DONE.
// Todo dentro de una sola transacción; un documento que ya no está READY en
// el momento de ejecutar devuelve ErrConflict sin tocar nada (doble complete).
func (uc *LifecycleUseCase) Complete(ctx context.Context, id, performedBy string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, id, func(repos TxRepos, doc *entity.Document) error {
		if !doc.CanComplete() {
			return fmt.Errorf("documento %s en %s no puede completarse: %w", doc.ID, doc.Status, domain.ErrConflict)
		}
		now := time.Now()
		for _, line := range doc.Lines {
			if err := uc.postLine(repos, doc, line, performedBy, now); err != nil {
				return err
			}
		}
		if err := uc.reserver.Release(repos.Balances, repos.Reservations, doc.ID, now); err != nil {
			return err
		}
		doc.Status = entity.DocStatusDONE
		doc.CompletedAt = &now
		doc.UpdatedAt = now
		return repos.Documents.Update(doc, entity.DocStatusREADY)
	})
}

// Cancel cancela un documento no terminal y registra el motivo. Si estaba
// READY libera su reserva; nunca genera asientos en el libro.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, id, reason string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, id, func(repos TxRepos, doc *entity.Document) error {
		if !doc.CanCancel() {
			return fmt.Errorf("documento %s en %s no puede cancelarse: %w", doc.ID, doc.Status, domain.ErrConflict)
		}
		now := time.Now()
		if doc.Status == entity.DocStatusREADY {
			if err := uc.reserver.Release(repos.Balances, repos.Reservations, doc.ID, now); err != nil {
				return err
			}
		}
		prev := doc.Status
		doc.Status = entity.DocStatusCANCELED
		doc.CanceledReason = reason
		doc.UpdatedAt = now
		return repos.Documents.Update(doc, prev)
	})
}

// GetByID obtiene un documento con sus líneas.
func (uc *LifecycleUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

// GetByReference obtiene un documento por su referencia legible.
func (uc *LifecycleUseCase) GetByReference(ctx context.Context, reference string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

// List lista documentos con filtros y paginación.
func (uc *LifecycleUseCase) List(ctx context.Context, filter repository.DocumentFilter, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	page.DefaultPage()
	total, err := uc.docRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	docs, err := uc.docRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Documents:  out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// transition carga el documento con bloqueo de fila dentro de una transacción
// y aplica fn. El bloqueo serializa transiciones concurrentes sobre el mismo
// documento; el compare-and-set de Update es la segunda barrera.
func (uc *LifecycleUseCase) transition(
	ctx context.Context,
	id string,
	fn func(repos TxRepos, doc *entity.Document) error,
) (*dto.DocumentResponse, error) {
	var result *entity.Document
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		doc, err := repos.Documents.GetForUpdate(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
		}
		if err := fn(repos, doc); err != nil {
			return err
		}
		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("document_id", result.ID).
		Str("status", result.Status).
		Msg("transición de documento")
	return toDocumentResponse(result), nil
}

// postLine asienta los movimientos de una línea según el tipo de documento.
// Las dos patas de un TRANSFER (salida en origen, entrada en destino) van en
// la misma transacción: nunca queda el origen descontado sin el destino
// incrementado ni al revés.
func (uc *LifecycleUseCase) postLine(repos TxRepos, doc *entity.Document, line entity.DocumentLine, performedBy string, now time.Time) error {
	switch doc.Type {
	case entity.DocTypeRECEIPT:
		_, err := uc.poster.PostMovement(repos.Balances, repos.Ledger, stock.Movement{
			Key:          entity.BalanceKey{ProductID: line.ProductID, WarehouseID: doc.WarehouseID, Location: doc.ToLocation},
			Quantity:     line.Quantity,
			MovementType: entity.MovementTypeIN,
			DocumentID:   doc.ID,
			LineNo:       line.LineNo,
			PerformedBy:  performedBy,
			At:           now,
		})
		return err
	case entity.DocTypeDELIVERY:
		_, err := uc.poster.PostMovement(repos.Balances, repos.Ledger, stock.Movement{
			Key:          entity.BalanceKey{ProductID: line.ProductID, WarehouseID: doc.WarehouseID, Location: doc.FromLocation},
			Quantity:     line.Quantity.Neg(),
			MovementType: entity.MovementTypeOUT,
			DocumentID:   doc.ID,
			LineNo:       line.LineNo,
			PerformedBy:  performedBy,
			At:           now,
		})
		return err
	case entity.DocTypeADJUSTMENT:
		_, err := uc.poster.PostMovement(repos.Balances, repos.Ledger, stock.Movement{
			Key:          entity.BalanceKey{ProductID: line.ProductID, WarehouseID: doc.WarehouseID, Location: doc.FromLocation},
			Quantity:     line.Quantity,
			MovementType: entity.MovementTypeADJUSTMENT,
			DocumentID:   doc.ID,
			LineNo:       line.LineNo,
			PerformedBy:  performedBy,
			At:           now,
		})
		return err
	case entity.DocTypeTRANSFER:
		// Pata de salida en la bodega origen
		if _, err := uc.poster.PostMovement(repos.Balances, repos.Ledger, stock.Movement{
			Key:           entity.BalanceKey{ProductID: line.ProductID, WarehouseID: doc.WarehouseID, Location: doc.FromLocation},
			Quantity:      line.Quantity.Neg(),
			MovementType:  entity.MovementTypeTRANSFER,
			DocumentID:    doc.ID,
			LineNo:        line.LineNo,
			FromWarehouse: doc.WarehouseID,
			ToWarehouse:   doc.ToWarehouseID,
			PerformedBy:   performedBy,
			At:            now,
		}); err != nil {
			return err
		}
		// Pata de entrada en la bodega destino
		_, err := uc.poster.PostMovement(repos.Balances, repos.Ledger, stock.Movement{
			Key:           entity.BalanceKey{ProductID: line.ProductID, WarehouseID: doc.ToWarehouseID, Location: doc.ToLocation},
			Quantity:      line.Quantity,
			MovementType:  entity.MovementTypeTRANSFER,
			DocumentID:    doc.ID,
			LineNo:        line.LineNo,
			FromWarehouse: doc.WarehouseID,
			ToWarehouse:   doc.ToWarehouseID,
			PerformedBy:   performedBy,
			At:            now,
		})
		return err
	}
	return fmt.Errorf("tipo de documento %s: %w", doc.Type, domain.ErrInvalidInput)
}

// generateReference construye una referencia legible: TYPE-xxxxxxxx.
func generateReference(docType string) string {
	return docType + "-" + strings.SplitN(uuid.New().String(), "-", 2)[0]
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	lines := make([]dto.DocumentLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.DocumentLineResponse{
			LineNo:    l.LineNo,
			ProductID: l.ProductID,
			UOM:       l.UOM,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		})
	}
	return &dto.DocumentResponse{
		ID:             d.ID,
		Type:           d.Type,
		Reference:      d.Reference,
		Status:         d.Status,
		WarehouseID:    d.WarehouseID,
		ToWarehouseID:  d.ToWarehouseID,
		FromLocation:   d.FromLocation,
		ToLocation:     d.ToLocation,
		ContactID:      d.ContactID,
		Lines:          lines,
		CreatedBy:      d.CreatedBy,
		ValidatedBy:    d.ValidatedBy,
		CanceledReason: d.CanceledReason,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
