package sqlconfig

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const categoriesTable = "categories"

var categoryColumns = []string{"id", "user_id", "name", "color", "icon"}

var _ ICategoryTable = (*CategoriesTable)(nil)

type CategoriesTable struct {
	exec bob.Executor
}

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

func (t *CategoriesTable) Insert(ctx context.Context, category *Category) error {
	query := psql.Insert(
		im.Into(categoriesTable, categoryColumns...),
		im.Values(psql.Arg(category.ID, category.UserID, category.Name, category.Color, category.Icon)),
	)
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return fmt.Errorf("insert category: %w", wrapUnique(err))
	}
	return nil
}

func (t *CategoriesTable) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns(columnList(categoryColumns)...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[Category]())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (t *CategoriesTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From(categoriesTable),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
