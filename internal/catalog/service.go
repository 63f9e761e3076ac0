package catalog

import (
	"errors"

	"github.com/rizkyab/partkatalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotFound = errors.New("illustration not found")

// loadDetail assembles the full sheet: linked parts plus hotspots with their
// part bindings.
func loadDetail(db *gorm.DB, ill *models.Illustration) (*Detail, error) {
	detail := &Detail{
		Summary:  summarize(ill),
		Parts:    []models.Part{},
		Hotspots: []HotspotView{},
	}

	var links []models.IllustrationPart
	if err := db.Where("illustration_iid = ?", ill.IID).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) > 0 {
		ids := make([]string, 0, len(links))
		for _, l := range links {
			ids = append(ids, l.PartID)
		}
		if err := db.Where("id IN ?", ids).Order("code").Find(&detail.Parts).Error; err != nil {
			return nil, err
		}
	}

	var hotspots []models.Hotspot
	if err := db.Where("illustration_iid = ?", ill.IID).Find(&hotspots).Error; err != nil {
		return nil, err
	}
	for _, h := range hotspots {
		var hps []models.HotspotPart
		if err := db.Where("hotspot_id = ?", h.ID).Find(&hps).Error; err != nil {
			return nil, err
		}
		view := HotspotView{X: h.X, Y: h.Y, R: h.R}
		if len(hps) == 1 {
			view.PartID = hps[0].PartID
		} else {
			view.PartIDs = make([]string, 0, len(hps))
			for _, hp := range hps {
				view.PartIDs = append(view.PartIDs, hp.PartID)
			}
		}
		detail.Hotspots = append(detail.Hotspots, view)
	}

	return detail, nil
}

type structureParts []models.Part

type structureHotspot struct {
	PartID  string   `json:"partId"`
	PartIDs []string `json:"partIds"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	R       float64  `json:"r"`
}

func (h *structureHotspot) partIDs() []string {
	if len(h.PartIDs) > 0 {
		return h.PartIDs
	}
	if h.PartID != "" {
		return []string{h.PartID}
	}
	return nil
}

// replaceStructure applies a full parts+hotspots batch for one sheet inside
// the caller's transaction: either the whole new graph lands or none of it.
func replaceStructure(tx *gorm.DB, iid uint, parts structureParts, hotspots []structureHotspot) error {
	var ill models.Illustration
	if err := tx.Where("iid = ?", iid).First(&ill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound
		}
		return err
	}

	partIDs := make([]string, 0, len(parts))
	for _, p := range parts {
		partIDs = append(partIDs, p.ID)
		// Upsert keeps an existing price: the structure editor does not
		// manage pricing.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "name", "additional"}),
		}).Create(&p).Error; err != nil {
			return err
		}
	}

	if len(partIDs) == 0 {
		if err := tx.Where("illustration_iid = ?", iid).
			Delete(&models.IllustrationPart{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("illustration_iid = ? AND part_id NOT IN ?", iid, partIDs).
			Delete(&models.IllustrationPart{}).Error; err != nil {
			return err
		}
		for _, pid := range partIDs {
			link := models.IllustrationPart{IllustrationIID: iid, PartID: pid}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
	}

	if err := deleteHotspots(tx, iid); err != nil {
		return err
	}
	for _, h := range hotspots {
		hotspot := models.Hotspot{IllustrationIID: iid, X: h.X, Y: h.Y, R: h.R}
		if err := tx.Create(&hotspot).Error; err != nil {
			return err
		}
		for _, pid := range h.partIDs() {
			hp := models.HotspotPart{HotspotID: hotspot.ID, PartID: pid}
			if err := tx.Create(&hp).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func deleteHotspots(tx *gorm.DB, iid uint) error {
	ids, err := hotspotIDs(tx, iid)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		if err := tx.Where("hotspot_id IN ?", ids).Delete(&models.HotspotPart{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("illustration_iid = ?", iid).Delete(&models.Hotspot{}).Error
}

func hotspotIDs(tx *gorm.DB, iid uint) ([]uint, error) {
	var hotspots []models.Hotspot
	if err := tx.Where("illustration_iid = ?", iid).Find(&hotspots).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(hotspots))
	for _, h := range hotspots {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// unlinkPart removes one part from a sheet: its hotspot bindings go first,
// then any hotspot left without parts, then the link row itself.
func unlinkPart(tx *gorm.DB, iid uint, partID string) error {
	ids, err := hotspotIDs(tx, iid)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		if err := tx.Where("hotspot_id IN ? AND part_id = ?", ids, partID).
			Delete(&models.HotspotPart{}).Error; err != nil {
			return err
		}
		for _, id := range ids {
			var remaining int64
			if err := tx.Model(&models.HotspotPart{}).Where("hotspot_id = ?", id).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := tx.Delete(&models.Hotspot{}, id).Error; err != nil {
					return err
				}
			}
		}
	}

	res := tx.Where("illustration_iid = ? AND part_id = ?", iid, partID).
		Delete(&models.IllustrationPart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}
