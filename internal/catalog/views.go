package catalog

import (
	"github.com/rizkyab/partkatalog/internal/models"
)

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Summary is the wire shape of one illustration; the jenis category rides in
// the "id" field for compatibility with the editor client.
type Summary struct {
	ID         string `json:"id"`
	IID        uint   `json:"iid"`
	Name       string `json:"name"`
	Model      string `json:"model"`
	Posisi     string `json:"posisi"`
	NamaPosisi string `json:"nama_posisi"`
	NoPosisi   string `json:"no_posisi"`
	Image      string `json:"image"`
	Size       Size   `json:"size"`
}

// HotspotView emits "partId" when the hotspot points at exactly one part and
// "partIds" otherwise; the client accepts either on input.
type HotspotView struct {
	PartID  string   `json:"partId,omitempty"`
	PartIDs []string `json:"partIds,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	R       float64  `json:"r"`
}

type Detail struct {
	Summary
	Parts    []models.Part `json:"parts"`
	Hotspots []HotspotView `json:"hotspots"`
}

func summarize(ill *models.Illustration) Summary {
	return Summary{
		ID:         ill.Jenis,
		IID:        ill.IID,
		Name:       ill.Name,
		Model:      ill.Model,
		Posisi:     ill.Posisi,
		NamaPosisi: ill.NamaPosisi,
		NoPosisi:   ill.NoPosisi,
		Image:      ill.Image,
		Size:       Size{Width: ill.Width, Height: ill.Height},
	}
}
