package service

import (
	"context"
	"fmt"

	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
)

// FollowCounts is the size of both sides of a user's follow graph.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowService manages the user follow relation
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow makes followerID follow followingID.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return fmt.Errorf("%w: users cannot follow themselves", ErrValidation)
	}

	db := s.db.WithContext(ctx)

	var users int64
	if err := db.Model(&models.User{}).Where("id = ?", followingID).Count(&users).Error; err != nil {
		return storageErr("check user", err)
	}
	if users == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, followingID)
	}

	err := db.Create(&models.UserFollower{FollowerID: followerID, FollowingID: followingID}).Error
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: already following user %d", ErrConflict, followingID)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: user %d", ErrNotFound, followerID)
	case database.IsCheckViolation(err):
		return fmt.Errorf("%w: users cannot follow themselves", ErrValidation)
	default:
		return storageErr("follow", err)
	}
}

// Unfollow removes the follow edge between the two users.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.UserFollower{})
	if res.Error != nil {
		return storageErr("unfollow", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: not following user %d", ErrNotFound, followingID)
	}
	return nil
}

// Counts returns how many users follow userID and how many userID follows.
func (s *FollowService) Counts(ctx context.Context, userID uint) (*FollowCounts, error) {
	db := s.db.WithContext(ctx)
	var counts FollowCounts
	if err := db.Model(&models.UserFollower{}).Where("following_id = ?", userID).Count(&counts.Followers).Error; err != nil {
		return nil, storageErr("count followers", err)
	}
	if err := db.Model(&models.UserFollower{}).Where("follower_id = ?", userID).Count(&counts.Following).Error; err != nil {
		return nil, storageErr("count following", err)
	}
	return &counts, nil
}
