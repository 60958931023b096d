package warehouse

import (
	"context"
	"fmt"

	"github.com/Sayanabha/snowConnect/internal/domain"
	"github.com/Sayanabha/snowConnect/internal/repository"
)

// UserRepository runs one statement on one session per call.
type UserRepository struct {
	connector  Connector
	statements statementBuilder
}

// NewUserRepository fails when the connector is missing or the table name is
// not a valid qualified identifier.
func NewUserRepository(connector Connector, table string) (*UserRepository, error) {
	if connector == nil {
		return nil, fmt.Errorf("warehouse connector is required")
	}
	statements, err := newStatementBuilder(table)
	if err != nil {
		return nil, err
	}
	return &UserRepository{connector: connector, statements: statements}, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	session, err := r.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	stmt := r.statements.list()
	rows, err := session.QueryContext(ctx, stmt.Text, stmt.Args()...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int32) (domain.User, bool, error) {
	session, err := r.connector.Connect(ctx)
	if err != nil {
		return domain.User{}, false, err
	}
	defer session.Close()

	stmt := r.statements.getByID(id)
	rows, err := session.QueryContext(ctx, stmt.Text, stmt.Args()...)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("query user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.User{}, false, fmt.Errorf("query user: %w", err)
		}
		return domain.User{}, false, nil
	}
	user, err := scanUser(rows)
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// Create inserts name and email and returns the affected row count. The
// generated id is copied into user when the driver reports one.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	res, err := r.exec(ctx, r.statements.insert(user.Name, user.Email))
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	if res.insertID > 0 {
		user.ID = int32(res.insertID)
	}
	return res.affected, nil
}

func (r *UserRepository) Update(ctx context.Context, id int32, user domain.User) (bool, error) {
	res, err := r.exec(ctx, r.statements.update(id, user.Name, user.Email))
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return res.affected > 0, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int32) (bool, error) {
	res, err := r.exec(ctx, r.statements.delete(id))
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.affected > 0, nil
}

type execResult struct {
	affected int64
	insertID int64
}

func (r *UserRepository) exec(ctx context.Context, stmt Statement) (execResult, error) {
	session, err := r.connector.Connect(ctx)
	if err != nil {
		return execResult{}, err
	}
	defer session.Close()

	res, err := session.ExecContext(ctx, stmt.Text, stmt.Args()...)
	if err != nil {
		return execResult{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return execResult{}, fmt.Errorf("rows affected: %w", err)
	}
	out := execResult{affected: affected}
	// snowflake reports no last insert id
	if id, err := res.LastInsertId(); err == nil {
		out.insertID = id
	}
	return out, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (domain.User, error) {
	var (
		user      domain.User
		createdAt any
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &createdAt); err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.CreatedAt = DecodeTimestamp(createdAt)
	return user, nil
}
