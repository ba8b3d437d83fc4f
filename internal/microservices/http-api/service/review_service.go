package service

import (
	"context"
	"log/slog"

	domainerrors "yamdb/internal/errors"
	"yamdb/internal/metrics"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/validation"
)

const duplicateReviewMsg = "you have already reviewed this title"

// ReviewService manages reviews nested under a title. actor is nil for anonymous callers.
type ReviewService interface {
	List(ctx context.Context, titleID int64, page repository.Page) (*dto.Paginated[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	validator  *validation.Validator
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	logger *slog.Logger,
	m *metrics.Metrics,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		validator:  validation.New(),
		metrics:    m,
		logger:     logger,
	}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page repository.Page) (*dto.Paginated[dto.ReviewResponse], error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		data = append(data, dto.FromReview(&reviews[i]))
	}
	return dto.NewPaginated(data, total, page.Number, page.Size), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromReview(review)
	return &resp, nil
}

// Create adds the actor's single review of a title.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Review, policy.Create, ""); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.Conflict(duplicateReviewMsg)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// lost a race with a concurrent insert
		if domainerrors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict(duplicateReviewMsg)
		}
		return nil, err
	}

	s.metrics.ReviewCreated()
	s.logger.Info("review created", "review_id", review.ID, "title_id", titleID, "author_id", actor.ID)

	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Review, policy.Update, review.AuthorID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	resp := dto.FromReview(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Review, policy.Delete, review.AuthorID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, review.ID)
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	ok, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.NotFound("title not found")
	}
	return nil
}
