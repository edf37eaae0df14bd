package seed

import (
	"context"
	"errors"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/memory"
)

// MemoryWriter seeds a memory.Store, matching rows by the same natural keys as Postgres.
type MemoryWriter struct {
	Store      *memory.Store
	categories map[string]int64
	authors    map[string]int64
	books      map[string]int64
}

func NewMemoryWriter(store *memory.Store) *MemoryWriter {
	return &MemoryWriter{
		Store:      store,
		categories: map[string]int64{},
		authors:    map[string]int64{},
		books:      map[string]int64{},
	}
}

func (w *MemoryWriter) Category(_ context.Context, name string) (int64, error) {
	if id, ok := w.categories[name]; ok {
		return id, nil
	}
	id := w.Store.AddCategory(name).ID
	w.categories[name] = id
	return id, nil
}

func (w *MemoryWriter) Author(_ context.Context, name string) (int64, error) {
	if id, ok := w.authors[name]; ok {
		return id, nil
	}
	id := w.Store.AddAuthor(name).ID
	w.authors[name] = id
	return id, nil
}

func (w *MemoryWriter) Book(_ context.Context, b entity.Book) (int64, error) {
	if id, ok := w.books[b.Title]; ok {
		return id, nil
	}
	id := w.Store.AddBook(b).ID
	w.books[b.Title] = id
	return id, nil
}

func (w *MemoryWriter) User(ctx context.Context, u entity.User) (int64, error) {
	existing, err := w.Store.Users().GetByEmail(ctx, u.Email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}
	return w.Store.AddUser(u).ID, nil
}

func (w *MemoryWriter) HasLoans(ctx context.Context, userID int64) (bool, error) {
	loans, err := w.Store.Loans().ListByUser(ctx, userID)
	return len(loans) > 0, err
}

func (w *MemoryWriter) Loan(ctx context.Context, l *entity.Loan) error {
	return w.Store.Loans().Create(ctx, l)
}
