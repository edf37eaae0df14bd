// Package seed loads a demo catalog, users and loans into a store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

// Writer is implemented by postgres.SeedWriter and MemoryWriter.
type Writer interface {
	Category(ctx context.Context, name string) (int64, error)
	Author(ctx context.Context, name string) (int64, error)
	Book(ctx context.Context, b entity.Book) (int64, error)
	User(ctx context.Context, u entity.User) (int64, error)
	HasLoans(ctx context.Context, userID int64) (bool, error)
	Loan(ctx context.Context, l *entity.Loan) error
}

type bookSeed struct {
	title, description, category, author string
}

var categories = []string{"Romance", "Ficção Científica", "Fantasia", "História", "Poesia", "Tecnologia", "Infantil"}

var books = []bookSeed{
	{"Dom Casmurro", "Bentinho e Capitu.", "Romance", "Machado de Assis"},
	{"Memórias Póstumas de Brás Cubas", "Um defunto autor.", "Romance", "Machado de Assis"},
	{"O Cortiço", "Naturalismo no Rio de Janeiro.", "Romance", "Aluísio Azevedo"},
	{"Fundação", "A psico-história de Hari Seldon.", "Ficção Científica", "Isaac Asimov"},
	{"Eu, Robô", "As três leis da robótica.", "Ficção Científica", "Isaac Asimov"},
	{"O Hobbit", "Lá e de volta outra vez.", "Fantasia", "J. R. R. Tolkien"},
	{"Sapiens", "Uma breve história da humanidade.", "História", "Yuval Noah Harari"},
	{"Sentimento do Mundo", "", "Poesia", "Carlos Drummond de Andrade"},
	{"A Rosa do Povo", "", "Poesia", "Carlos Drummond de Andrade"},
	{"The Go Programming Language", "Donovan e Kernighan.", "Tecnologia", "Alan Donovan"},
	{"O Pequeno Príncipe", "", "Infantil", "Antoine de Saint-Exupéry"},
	{"Reinações de Narizinho", "", "Infantil", "Monteiro Lobato"},
}

// DemoPassword is the password of every seeded account.
const DemoPassword = "biblioteca123"

var users = []entity.User{
	{Name: "Administradora", Email: "admin@biblioteca.dev", Role: entity.RoleAdmin},
	{Name: "Bruno Leitor", Email: "bruno@biblioteca.dev", Role: entity.RoleReader},
	{Name: "Carla Leitora", Email: "carla@biblioteca.dev", Role: entity.RoleReader},
	{Name: "Diego Leitor", Email: "diego@biblioteca.dev", Role: entity.RoleReader},
}

// loan offsets in days relative to today: negative due dates are overdue.
var loanPlan = []struct {
	user, book    int
	lent, dueDays int
}{
	{1, 0, -20, -6},
	{1, 3, -3, 11},
	{2, 5, -10, 4},
	{2, 6, -30, -2},
	{3, 9, -1, 13},
	{3, 10, 0, 0},
	{3, 11, -2, 7},
}

type Result struct {
	Books []*entity.Book
	Users int
	Loans int
}

// Run writes the demo data. Loans are only added for users who have none, so running it
// twice does not duplicate them.
func Run(ctx context.Context, w Writer, today time.Time, logger *logrus.Logger) (*Result, error) {
	today = entity.DateOf(today)
	res := &Result{}

	catIDs := map[string]int64{}
	for _, name := range categories {
		id, err := w.Category(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", name, err)
		}
		catIDs[name] = id
	}

	authorIDs := map[string]int64{}
	bookIDs := make([]int64, 0, len(books))
	for _, b := range books {
		aid, ok := authorIDs[b.author]
		if !ok {
			id, err := w.Author(ctx, b.author)
			if err != nil {
				return nil, fmt.Errorf("seed author %q: %w", b.author, err)
			}
			aid = id
			authorIDs[b.author] = id
		}
		book := entity.Book{
			Title:       b.title,
			Description: b.description,
			Category:    &entity.Category{ID: catIDs[b.category], Name: b.category},
			Author:      &entity.Author{ID: aid, Name: b.author},
		}
		id, err := w.Book(ctx, book)
		if err != nil {
			return nil, fmt.Errorf("seed book %q: %w", b.title, err)
		}
		book.ID = id
		bookIDs = append(bookIDs, id)
		res.Books = append(res.Books, &book)
	}

	hash, err := helpers.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}
	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		u.Password = hash
		id, err := w.User(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		userIDs = append(userIDs, id)
	}
	res.Users = len(userIDs)

	skip := map[int]bool{}
	for i, id := range userIDs {
		has, err := w.HasLoans(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check loans of user %d: %w", id, err)
		}
		skip[i] = has
	}
	for _, p := range loanPlan {
		if skip[p.user] {
			continue
		}
		l := &entity.Loan{
			UserID:   userIDs[p.user],
			BookID:   bookIDs[p.book],
			LoanDate: today.AddDate(0, 0, p.lent),
			DueDate:  today.AddDate(0, 0, p.dueDays),
		}
		if err := w.Loan(ctx, l); err != nil {
			return nil, fmt.Errorf("seed loan: %w", err)
		}
		res.Loans++
	}

	logger.WithFields(logrus.Fields{
		"categories": len(catIDs),
		"books":      len(res.Books),
		"users":      res.Users,
		"loans":      res.Loans,
	}).Info("seed finished")
	return res, nil
}
