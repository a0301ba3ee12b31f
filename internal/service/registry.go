package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/repository"
)

const defaultPageSize = 10

// RegistryService is CRUD over book records. Whether issue history
// survives a deletion is a policy decision owned by the host.
type RegistryService struct {
	repo            repository.BookRepository
	log             *zap.Logger
	preserveHistory bool
}

func NewRegistryService(repo repository.BookRepository, log *zap.Logger, preserveHistory bool) *RegistryService {
	return &RegistryService{
		repo:            repo,
		log:             log.Named("registry"),
		preserveHistory: preserveHistory,
	}
}

func (s *RegistryService) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book := model.Book{
		ID:              req.ID,
		AccessionNumber: req.AccessionNumber,
		MalAccNumber:    req.MalAccNumber,
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       req.Publisher,
		Edition:         req.Edition,
		PublishingYear:  req.PublishingYear,
		Author1:         req.Author1,
		Author2:         req.Author2,
		Author3:         req.Author3,
		Category1:       req.Category1,
		Category2:       req.Category2,
		Category3:       req.Category3,
		Available:       true,
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *RegistryService) Get(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RegistryService) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Book{}, err
	}

	if req.ID != nil {
		book.ID = *req.ID
	}
	if req.AccessionNumber != nil {
		book.AccessionNumber = req.AccessionNumber
	}
	if req.MalAccNumber != nil {
		book.MalAccNumber = req.MalAccNumber
	}
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.Edition != nil {
		book.Edition = req.Edition
	}
	if req.PublishingYear != nil {
		book.PublishingYear = req.PublishingYear
	}
	if req.Author1 != nil {
		book.Author1 = req.Author1
	}
	if req.Author2 != nil {
		book.Author2 = req.Author2
	}
	if req.Author3 != nil {
		book.Author3 = req.Author3
	}
	if req.Category1 != nil {
		book.Category1 = req.Category1
	}
	if req.Category2 != nil {
		book.Category2 = req.Category2
	}
	if req.Category3 != nil {
		book.Category3 = req.Category3
	}

	if err := s.repo.Update(ctx, id, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *RegistryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id, !s.preserveHistory)
}

func (s *RegistryService) List(ctx context.Context, q model.ListBooksQuery) (model.BookPage, error) {
	q.Page, q.Size = normalizePage(q.Page, q.Size)
	if q.Order == "" {
		q.Order = model.OrderRecent
	}

	books, total, err := s.repo.List(ctx, q)
	if err != nil {
		return model.BookPage{}, err
	}
	return model.BookPage{
		Books:      books,
		Page:       q.Page,
		TotalPages: pageCount(total, q.Size),
		TotalBooks: total,
	}, nil
}

func pageCount(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
