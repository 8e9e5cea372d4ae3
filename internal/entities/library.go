package entities

import (
	"time"
)

// Review is a user's review of a catalog work. One review per (user, work).
type Review struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;uniqueIndex:uq_user_work_review" json:"user_id"`
	WorkOLID  string     `gorm:"column:work_olid;size:50;uniqueIndex:uq_user_work_review" json:"work_olid"`
	Rating    float64    `json:"rating"`
	Comment   string     `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Favorite marks a catalog work as a user's favourite.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;uniqueIndex:uq_favorite_work_user" json:"user_id"`
	WorkOLID  string    `gorm:"column:work_olid;size:50;uniqueIndex:uq_favorite_work_user" json:"work_olid"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Bookshelf is a user's named custom book list.
type Bookshelf struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;uniqueIndex:uq_user_shelf_name" json:"user_id"`
	Name        string    `gorm:"size:255;uniqueIndex:uq_user_shelf_name" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	User  User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Books []BookInShelf `gorm:"foreignKey:BookshelfID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

// BookInShelf is a work placed on a bookshelf.
type BookInShelf struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookshelfID uint      `gorm:"index;uniqueIndex:uq_shelf_work" json:"bookshelf_id"`
	WorkOLID    string    `gorm:"column:work_olid;size:50;uniqueIndex:uq_shelf_work" json:"work_olid"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`
}
