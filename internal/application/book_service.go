package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-library-backend/internal/domain/repository"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

var ErrCoverStorageDisabled = errors.New("cover storage not configured")

type BookService struct {
	Books        repo.BookRepository
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESBooksIndex string
	Logger       *logrus.Logger
}

func NewBookService(books repo.BookRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esBooksIndex string, logger *logrus.Logger) *BookService {
	return &BookService{
		Books:        books,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESBooksIndex: esBooksIndex,
		Logger:       logger,
	}
}

func (s *BookService) Get(ctx context.Context, id int64) (*entity.Book, error) {
	b, err := s.Books.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup book %d: %w", id, err)
	}
	return b, nil
}

// Search lists books matching every non-zero field of f.
func (s *BookService) Search(ctx context.Context, f repo.BookFilter) ([]*entity.Book, error) {
	books, err := s.Books.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// UploadCover stores the image in GCS under covers/<book id>/ and saves its public URL on the book.
func (s *BookService) UploadCover(ctx context.Context, bookID int64, r io.Reader, filename, contentType string) (string, error) {
	b, err := s.Get(ctx, bookID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrCoverStorageDisabled
	}

	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, helpers.CoverObjectPath(bookID, filename), contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}
	if err := s.Books.UpdateCoverURL(ctx, bookID, url); err != nil {
		return "", fmt.Errorf("save cover url: %w", err)
	}
	b.CoverURL = url

	_ = s.IndexBook(ctx, b)
	return url, nil
}

// IndexBook writes b to the catalog index. It is a no-op without Elasticsearch.
func (s *BookService) IndexBook(ctx context.Context, b *entity.Book) error {
	if s.ES == nil || s.ESBooksIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":        b.ID,
		"titulo":    b.Title,
		"descricao": b.Description,
		"urlCapa":   b.CoverURL,
		"autor":     b.AuthorName(),
		"categoria": b.CategoryName(),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      s.ESBooksIndex,
		DocumentID: strconv.FormatInt(b.ID, 10),
		Body:       strings.NewReader(string(body)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("book_id", b.ID).Warn("es index response error")
	}
	return nil
}

// SearchCatalog runs a multi_match query over title, author and category.
// Without Elasticsearch it returns an empty result.
func (s *BookService) SearchCatalog(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"titulo^2", "autor", "categoria"},
			},
		},
		"size": size,
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESBooksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
