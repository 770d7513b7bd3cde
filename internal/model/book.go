package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book represents a catalog record. Title is the only required field; every
// other column holds whatever default the draft substitution produced.
type Book struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	Author        string          `json:"author" gorm:"size:255;index"`
	Publisher     string          `json:"publisher" gorm:"size:255"`
	PublishedDate string          `json:"published_date" gorm:"size:64"`
	Description   string          `json:"description" gorm:"type:text"`
	Category      string          `json:"category" gorm:"size:128"`
	Image         string          `json:"image" gorm:"size:512"`
	URL           string          `json:"url" gorm:"size:512"`
	Rating        int             `json:"rating"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Featured      bool            `json:"featured" gorm:"index"`
	ViewCount     int64           `json:"view_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookDraft is the caller-supplied payload for create and update. Optional
// fields are pointers so an absent field (nil) can be told apart from an
// explicit zero value; nil fields get the documented defaults.
type BookDraft struct {
	Title         string           `json:"title"`
	Author        *string          `json:"author"`
	Publisher     *string          `json:"publisher"`
	PublishedDate *string          `json:"published_date"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Image         *string          `json:"image"`
	URL           *string          `json:"url"`
	Rating        *int             `json:"rating"`
	Price         *decimal.Decimal `json:"price"`
	Featured      *bool            `json:"featured"`
}
