package memstore

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/storage/sqlconfig"
)

var _ sqlconfig.ICategoryTable = (*categoriesTable)(nil)

type categoriesTable struct {
	sess *session
}

func (t *categoriesTable) Insert(_ context.Context, category *sqlconfig.Category) error {
	row := *category
	var err error
	t.sess.write(func(d *data) func(*data) {
		for _, existing := range d.categories {
			if existing.UserID == row.UserID && existing.Name == row.Name {
				err = sqlconfig.ErrDuplicate
				return nil
			}
		}
		d.categories[row.ID] = row
		return func(d *data) { delete(d.categories, row.ID) }
	})
	return err
}

func (t *categoriesTable) List(_ context.Context, userID uuid.UUID) ([]*sqlconfig.Category, error) {
	var result []*sqlconfig.Category
	t.sess.read(func(d *data) {
		for _, row := range d.categories {
			if row.UserID == userID {
				row := row
				result = append(result, &row)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (t *categoriesTable) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	deleted := false
	t.sess.write(func(d *data) func(*data) {
		row, ok := d.categories[id]
		if !ok || row.UserID != userID {
			return nil
		}
		delete(d.categories, id)
		deleted = true
		return func(d *data) { d.categories[id] = row }
	})
	return deleted, nil
}
