package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/validation"
)

// CommentService manages comments on a review; the review must belong to the title.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page repository.Page) (*dto.Paginated[dto.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	validator   *validation.Validator
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		validator:   validation.New(),
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page repository.Page) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByReview(ctx, reviewID, page)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, dto.FromComment(&comments[i]))
	}
	return dto.NewPaginated(data, total, page.Number, page.Size), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromComment(comment)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Comment, policy.Create, ""); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.Get(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Comment, policy.Update, comment.AuthorID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	resp := dto.FromComment(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.find(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Comment, policy.Delete, comment.AuthorID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}

// find resolves the full title -> review -> comment path.
func (s *commentService) find(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, reviewID, commentID)
}
