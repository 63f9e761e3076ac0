package models

import (
	"time"

	"gorm.io/datatypes"
)

// Estimate is a saved cost estimate: a snapshot of selected part lines plus
// the server-computed total. Items holds the line array as JSON.
type Estimate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255" json:"title"`
	Items     datatypes.JSON `json:"items"`
	Total     float64        `json:"total"`
	CreatedBy uint           `gorm:"index" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
}

// EstimateItem is one line inside Estimate.Items.
type EstimateItem struct {
	PartID string  `json:"part_id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Qty    int     `json:"qty"`
}
