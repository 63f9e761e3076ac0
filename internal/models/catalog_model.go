package models

// Illustration is one diagram sheet. Jenis is the truck category the sheet
// belongs to; Posisi classifies the subsystem and scopes partshop visibility.
type Illustration struct {
	IID        uint    `gorm:"primaryKey;column:iid" json:"iid"`
	Jenis      string  `gorm:"size:64;index" json:"id"`
	Name       string  `gorm:"size:255" json:"name"`
	Model      string  `gorm:"size:255" json:"model"`
	Posisi     string  `gorm:"size:50" json:"posisi"`
	NamaPosisi string  `gorm:"size:255" json:"nama_posisi"`
	NoPosisi   string  `gorm:"size:64" json:"no_posisi"`
	Image      string  `gorm:"size:500" json:"image"`
	Width      float64 `json:"-"`
	Height     float64 `json:"-"`
}

type Part struct {
	ID         string  `gorm:"primaryKey;size:64" json:"id"`
	Code       string  `gorm:"size:64" json:"code"`
	Name       string  `gorm:"size:255" json:"name"`
	Price      float64 `json:"price"`
	Additional string  `gorm:"size:500" json:"additional"`
}

// IllustrationPart links a part to a sheet.
type IllustrationPart struct {
	IllustrationIID uint   `gorm:"primaryKey;column:illustration_iid" json:"illustration_iid"`
	PartID          string `gorm:"primaryKey;size:64" json:"part_id"`
}

// Hotspot is a clickable circle on a sheet, linked to one or more parts
// through HotspotPart rows.
type Hotspot struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	IllustrationIID uint    `gorm:"column:illustration_iid;index" json:"illustration_iid"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	R               float64 `json:"r"`
}

type HotspotPart struct {
	HotspotID uint   `gorm:"primaryKey" json:"hotspot_id"`
	PartID    string `gorm:"primaryKey;size:64" json:"part_id"`
}
