package store

import (
	"sort"

	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// uniqueIDs returns ids sorted and without duplicates or zero values
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// diffIDs compares the current membership of an association with the desired
// one and returns the ids to attach and to detach. Ids present in both are
// left alone.
func diffIDs(current, desired []uint) (add, remove []uint) {
	have := make(map[uint]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := make(map[uint]struct{}, len(desired))
	for _, id := range uniqueIDs(desired) {
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			add = append(add, id)
		}
	}
	for _, id := range uniqueIDs(current) {
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}
	return add, remove
}

// joinSide names one end of the posttags table
type joinSide struct {
	column string // column holding the owner's id
	other  string // column holding the associated id
	row    func(owner, other uint) models.PostTag
}

var (
	postSide = joinSide{
		column: "post_id",
		other:  "tag_id",
		row:    func(post, tag uint) models.PostTag { return models.PostTag{PostID: post, TagID: tag} },
	}
	tagSide = joinSide{
		column: "tag_id",
		other:  "post_id",
		row:    func(tag, post uint) models.PostTag { return models.PostTag{PostID: post, TagID: tag} },
	}
)

// replaceJoin makes the association set of ownerID exactly desired.
// desired must only contain ids that exist.
func replaceJoin(tx *gorm.DB, side joinSide, ownerID uint, desired []uint) error {
	var current []uint
	if err := tx.Model(&models.PostTag{}).Where(side.column+" = ?", ownerID).Pluck(side.other, &current).Error; err != nil {
		return err
	}

	add, remove := diffIDs(current, desired)

	if len(remove) > 0 {
		if err := tx.Where(side.column+" = ? AND "+side.other+" IN ?", ownerID, remove).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
	}
	if len(add) > 0 {
		rows := make([]models.PostTag, len(add))
		for i, id := range add {
			rows[i] = side.row(ownerID, id)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// clearJoin removes every join row of ownerID
func clearJoin(tx *gorm.DB, side joinSide, ownerIDs ...uint) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	return tx.Where(side.column+" IN ?", ownerIDs).Delete(&models.PostTag{}).Error
}
