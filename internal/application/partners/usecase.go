package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/sri"
)

// FieldError error de validación asociado a un campo del formulario.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() []error { return []error{domain.ErrInvalidInput, e.Err} }

// UseCase alta de clientes y proveedores con validación local del documento.
type UseCase struct {
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(customers repository.CustomerRepository, suppliers repository.SupplierRepository) *UseCase {
	return &UseCase{customers: customers, suppliers: suppliers}
}

// CreateCustomer valida y registra un cliente en el backend. Sin tipo de documento se asume cédula.
func (uc *UseCase) CreateCustomer(ctx context.Context, in dto.CreatePartnerRequest) (*entity.Customer, error) {
	p, err := normalize(in, sri.DocumentCedula)
	if err != nil {
		return nil, err
	}
	created, err := uc.customers.Create(ctx, &entity.Customer{
		Name:         p.Name,
		DocumentType: p.DocumentType,
		Document:     p.Document,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return created, nil
}

// CreateSupplier valida y registra un proveedor en el backend. Sin tipo de documento se asume RUC.
func (uc *UseCase) CreateSupplier(ctx context.Context, in dto.CreatePartnerRequest) (*entity.Supplier, error) {
	p, err := normalize(in, sri.DocumentRUC)
	if err != nil {
		return nil, err
	}
	created, err := uc.suppliers.Create(ctx, &entity.Supplier{
		Name:         p.Name,
		DocumentType: p.DocumentType,
		Document:     p.Document,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("crear proveedor: %w", err)
	}
	return created, nil
}

// ValidateDocument valida un documento sin registrar nada.
// Un documento inválido no es un error: se informa en la respuesta.
func (uc *UseCase) ValidateDocument(in dto.ValidateDocumentRequest) (*dto.ValidateDocumentResponse, error) {
	docType := sri.DocumentType(strings.ToLower(strings.TrimSpace(in.DocumentType)))
	if !docType.Valid() {
		return nil, &FieldError{Field: "document_type", Err: sri.ErrUnknownDocumentType}
	}
	doc := CleanDocument(in.Document)
	out := &dto.ValidateDocumentResponse{Valid: true, DocumentType: string(docType), Document: doc}
	if err := sri.Validate(docType, doc); err != nil {
		out.Valid = false
		out.Reason = string(sri.ReasonOf(err))
		return out, nil
	}
	if docType == sri.DocumentRUC && sri.IsNaturalPersonRUC(doc) {
		cedula, err := sri.CedulaFromRUC(doc)
		if err != nil {
			return nil, err
		}
		out.NaturalPerson = true
		out.Cedula = cedula
	}
	return out, nil
}

// CleanDocument quita espacios, guiones y puntos que el usuario suele escribir.
func CleanDocument(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

func normalize(in dto.CreatePartnerRequest, defaultType sri.DocumentType) (dto.CreatePartnerRequest, error) {
	out := dto.CreatePartnerRequest{
		Name:     strings.TrimSpace(in.Name),
		Document: CleanDocument(in.Document),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
	}
	if out.Name == "" {
		return out, &FieldError{Field: "name", Err: errors.New("el nombre es requerido")}
	}
	docType := sri.DocumentType(strings.ToLower(strings.TrimSpace(in.DocumentType)))
	if docType == "" {
		docType = defaultType
	}
	if !docType.Valid() {
		return out, &FieldError{Field: "document_type", Err: sri.ErrUnknownDocumentType}
	}
	out.DocumentType = string(docType)
	if out.Document == "" {
		return out, &FieldError{Field: "document", Err: sri.ErrInvalidFormat}
	}
	if err := sri.Validate(docType, out.Document); err != nil {
		return out, &FieldError{Field: "document", Err: err}
	}
	if out.Email != "" && !strings.Contains(out.Email, "@") {
		return out, &FieldError{Field: "email", Err: errors.New("correo inválido")}
	}
	return out, nil
}
