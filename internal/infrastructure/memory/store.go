// Package memory holds an in-process implementation of the repositories.
// It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
)

// Store keeps users, categories, authors, books and loans in memory.
// All views share one lock.
type Store struct {
	mu         sync.RWMutex
	users      []*entity.User
	categories []*entity.Category
	authors    []*entity.Author
	books      []*entity.Book
	loans      []*entity.Loan
	nextID     map[string]int64
}

func NewStore() *Store {
	return &Store{nextID: map[string]int64{}}
}

func (s *Store) id(kind string) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

// AddUser stores a copy of u with a fresh ID and returns it.
func (s *Store) AddUser(u entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id("user")
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users = append(s.users, &u)
	cp := u
	return &cp
}

func (s *Store) AddCategory(name string) *entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &entity.Category{ID: s.id("category"), Name: name}
	s.categories = append(s.categories, c)
	return &entity.Category{ID: c.ID, Name: c.Name}
}

func (s *Store) AddAuthor(name string) *entity.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &entity.Author{ID: s.id("author"), Name: name}
	s.authors = append(s.authors, a)
	return &entity.Author{ID: a.ID, Name: a.Name}
}

// AddBook stores a copy of b with a fresh ID. Category and Author are matched by ID.
func (s *Store) AddBook(b entity.Book) *entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id("book")
	s.books = append(s.books, &b)
	return s.bookCopy(&b)
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Books() *BookRepository { return &BookRepository{s: s} }
func (s *Store) Loans() *LoanRepository { return &LoanRepository{s: s} }

// bookCopy resolves the category and author references from the store tables.
func (s *Store) bookCopy(b *entity.Book) *entity.Book {
	cp := *b
	if b.Category != nil {
		cp.Category = nil
		for _, c := range s.categories {
			if c.ID == b.Category.ID {
				cp.Category = &entity.Category{ID: c.ID, Name: c.Name}
			}
		}
	}
	if b.Author != nil {
		cp.Author = nil
		for _, a := range s.authors {
			if a.ID == b.Author.ID {
				cp.Author = &entity.Author{ID: a.ID, Name: a.Name}
			}
		}
	}
	return &cp
}

type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *UserRepository) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type BookRepository struct{ s *Store }

func (r *BookRepository) GetByID(_ context.Context, id int64) (*entity.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.books {
		if b.ID == id {
			return r.s.bookCopy(b), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BookRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.books)), nil
}

func (r *BookRepository) CountByCategory(_ context.Context) ([]entity.CategoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := map[string]int64{}
	order := make([]string, 0)
	for _, b := range r.s.books {
		name := r.s.bookCopy(b).CategoryName()
		if b.Category == nil || name == "" {
			continue
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name]++
	}
	out := make([]entity.CategoryCount, 0, len(order))
	for _, name := range order {
		out = append(out, entity.CategoryCount{Name: name, Total: totals[name]})
	}
	return out, nil
}

func (r *BookRepository) Search(_ context.Context, f repository.BookFilter) ([]*entity.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	title := strings.ToLower(f.Title)
	out := make([]*entity.Book, 0)
	for _, b := range r.s.books {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if f.CategoryID != 0 && (b.Category == nil || b.Category.ID != f.CategoryID) {
			continue
		}
		if f.AuthorID != 0 && (b.Author == nil || b.Author.ID != f.AuthorID) {
			continue
		}
		out = append(out, r.s.bookCopy(b))
	}
	return out, nil
}

func (r *BookRepository) UpdateCoverURL(_ context.Context, id int64, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.books {
		if b.ID == id {
			b.CoverURL = url
			return nil
		}
	}
	return repository.ErrNotFound
}

type LoanRepository struct{ s *Store }

func (r *LoanRepository) Create(_ context.Context, l *entity.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.id("loan")
	cp := *l
	r.s.loans = append(r.s.loans, &cp)
	return nil
}

func (r *LoanRepository) ListByUser(_ context.Context, userID int64) ([]*entity.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Loan, 0)
	for _, l := range r.s.loans {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LoanRepository) CountDueBefore(_ context.Context, day time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, l := range r.s.loans {
		if l.IsOverdue(day) {
			n++
		}
	}
	return n, nil
}

func (r *LoanRepository) CountDueOnOrAfter(_ context.Context, day time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, l := range r.s.loans {
		if l.IsOutstanding(day) {
			n++
		}
	}
	return n, nil
}

func (r *LoanRepository) ListDueOnOrAfter(_ context.Context, day time.Time, limit int) ([]*entity.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Loan, 0)
	for _, l := range r.s.loans {
		if l.IsOutstanding(day) {
			cp := *l
			out = append(out, &cp)
		}
	}
	slices.SortStableFunc(out, func(a, b *entity.Loan) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.BookRepository = (*BookRepository)(nil)
	_ repository.LoanRepository = (*LoanRepository)(nil)
)
