package service

import (
	"context"
	"time"

	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

type ReviewService struct {
	reviews port.ReviewRepository
	now     func() time.Time
}

func NewReviewService(reviews port.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews, now: time.Now}
}

func (s *ReviewService) Create(ctx context.Context, r domain.Review, email string) (port.InsertResult, error) {
	r.UserEmail = email
	r.CreatedAt = s.now()
	return s.reviews.InsertReview(ctx, r)
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListReviews(ctx)
}
