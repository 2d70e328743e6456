package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// CatalogUseCase CRUD de categorías, proveedores y clientes.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	customerRepo repository.CustomerRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
	}
}

// ── Categorías ──────────────────────────────────────────────────────────────

func (uc *CatalogUseCase) CreateCategory(req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

func (uc *CatalogUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	cats, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (uc *CatalogUseCase) UpdateCategory(id string, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	cat.Name = req.Name
	if err := uc.categoryRepo.Update(cat); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

func (uc *CatalogUseCase) DeleteCategory(id string) error {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return uc.categoryRepo.Delete(id)
}

// ── Proveedores ─────────────────────────────────────────────────────────────

func (uc *CatalogUseCase) CreateSupplier(req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	sup := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Contact:   req.Contact,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.supplierRepo.Create(sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (uc *CatalogUseCase) ListSuppliers(page dto.PageRequest) ([]dto.SupplierResponse, error) {
	sups, err := uc.supplierRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(sups))
	for _, s := range sups {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *CatalogUseCase) UpdateSupplier(id string, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	sup.Name = req.Name
	sup.Contact = req.Contact
	sup.Address = req.Address
	if err := uc.supplierRepo.Update(sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (uc *CatalogUseCase) DeleteSupplier(id string) error {
	sup, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sup == nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return uc.supplierRepo.Delete(id)
}

// ── Clientes ────────────────────────────────────────────────────────────────

func (uc *CatalogUseCase) CreateCustomer(req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	cust := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.customerRepo.Create(cust); err != nil {
		return nil, err
	}
	return toCustomerResponse(cust), nil
}

func (uc *CatalogUseCase) GetCustomer(id string) (*dto.CustomerResponse, error) {
	cust, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return toCustomerResponse(cust), nil
}

func (uc *CatalogUseCase) ListCustomers(page dto.PageRequest) ([]dto.CustomerResponse, error) {
	custs, err := uc.customerRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(custs))
	for _, c := range custs {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CatalogUseCase) UpdateCustomer(id string, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	cust, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	cust.Name = req.Name
	cust.Phone = req.Phone
	cust.Address = req.Address
	if err := uc.customerRepo.Update(cust); err != nil {
		return nil, err
	}
	return toCustomerResponse(cust), nil
}

func (uc *CatalogUseCase) DeleteCustomer(id string) error {
	cust, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cust == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return uc.customerRepo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, Contact: s.Contact, Address: s.Address}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address}
}
