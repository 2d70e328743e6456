package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `id, name, category_id, supplier_id, quantity_in_stock, buying_price, selling_price, expiry_date, created_at, updated_at`

// MedicineRepo implementación de MedicineRepository sobre PostgreSQL (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un medicamento nuevo.
func (r *MedicineRepo) Create(med *entity.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		med.ID, med.Name, med.CategoryID, med.SupplierID, med.QuantityInStock,
		med.BuyingPrice, med.SellingPrice, med.ExpiryDate, med.CreatedAt, med.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: medicamento %s", domain.ErrDuplicate, med.Name)
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID. Devuelve nil si no existe.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get medicine")
}

// GetForUpdate obtiene el medicamento bloqueando la fila (SELECT FOR UPDATE).
func (r *MedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get medicine for update")
}

// Update actualiza los datos del medicamento. El stock no se toca aquí:
// solo UpdateStock, bajo el reconciliador, lo muta.
func (r *MedicineRepo) Update(med *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, category_id = $3, supplier_id = $4, buying_price = $5,
		    selling_price = $6, expiry_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		med.ID, med.Name, med.CategoryID, med.SupplierID,
		med.BuyingPrice, med.SellingPrice, med.ExpiryDate, med.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	return nil
}

// UpdateStock fija la foto de stock. Solo lo llama el reconciliador, con la
// fila ya bloqueada por GetForUpdate.
func (r *MedicineRepo) UpdateStock(id string, quantity int64) error {
	query := `UPDATE medicines SET quantity_in_stock = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return nil
}

// List lista el catálogo paginado por nombre.
func (r *MedicineRepo) List(limit, offset int) ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAll devuelve el catálogo completo (reportes con ventas cero).
func (r *MedicineRepo) ListAll() ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all medicines: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByIDs devuelve los medicamentos cuyos IDs estén en la lista.
func (r *MedicineRepo) ListByIDs(ids []string) ([]*entity.Medicine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = ANY($1) ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list medicines by ids: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Delete elimina un medicamento.
func (r *MedicineRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *MedicineRepo) scanOne(row pgx.Row, op string) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(
		&m.ID, &m.Name, &m.CategoryID, &m.SupplierID, &m.QuantityInStock,
		&m.BuyingPrice, &m.SellingPrice, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func (r *MedicineRepo) scanMany(rows pgx.Rows) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for rows.Next() {
		var m entity.Medicine
		err := rows.Scan(
			&m.ID, &m.Name, &m.CategoryID, &m.SupplierID, &m.QuantityInStock,
			&m.BuyingPrice, &m.SellingPrice, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
