package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Avatar       string    `gorm:"size:1000" json:"avatar"`
	Token        *string   `json:"-"`
}

// UserFollower is the self-referential follow relation. The pair is the primary key and a
// user can never follow themselves.
type UserFollower struct {
	FollowerID  uint `gorm:"primaryKey;autoIncrement:false;check:chk_user_followers_no_self,follower_id <> following_id" json:"followerId"`
	FollowingID uint `gorm:"primaryKey;autoIncrement:false" json:"followingId"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserFollower) TableName() string {
	return "user_followers"
}
