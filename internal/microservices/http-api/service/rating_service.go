package service

import (
	"context"

	"yamdb/internal/microservices/http-api/repository"
)

// RatingService derives title ratings from review scores. Nothing is cached; every
// call reads the current reviews.
type RatingService interface {
	// Rating is nil when the title has no reviews.
	Rating(ctx context.Context, titleID int64) (*float64, error)
	// Ratings covers a batch of titles with one query; titles without reviews map to nil.
	Ratings(ctx context.Context, titleIDs []int64) (map[int64]*float64, error)
}

type ratingService struct {
	reviewRepo repository.ReviewRepository
}

func NewRatingService(reviewRepo repository.ReviewRepository) RatingService {
	return &ratingService{reviewRepo: reviewRepo}
}

func (s *ratingService) Rating(ctx context.Context, titleID int64) (*float64, error) {
	ratings, err := s.Ratings(ctx, []int64{titleID})
	if err != nil {
		return nil, err
	}
	return ratings[titleID], nil
}

func (s *ratingService) Ratings(ctx context.Context, titleIDs []int64) (map[int64]*float64, error) {
	stats, err := s.reviewRepo.ScoreStats(ctx, titleIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]*float64, len(titleIDs))
	for _, id := range titleIDs {
		out[id] = mean(stats[id])
	}
	return out, nil
}

func mean(st repository.ScoreStats) *float64 {
	if st.ScoreCount == 0 {
		return nil
	}
	avg := float64(st.ScoreSum) / float64(st.ScoreCount)
	return &avg
}
