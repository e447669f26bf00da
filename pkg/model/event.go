package model

import (
	"github.com/oneconcern/gpmodel/pkg/revision"
)

// Event describes a change to a feature store.
//
// Old and New are the store revisions before and after the change: both remain valid snapshots.
// A consolidated event, emitted when a notification guard is released, covers all edits
// committed within the guard: it has no chain.
type Event struct {
	Chain        []revision.Revisionable
	Old          revision.Revision
	New          revision.Revision
	Consolidated bool
}

// ChangeSet lists the features affected by an event
type ChangeSet struct {
	Added   []*Feature
	Deleted []*Feature
	Updated []*Feature
}

// Empty tells if no feature has changed
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Deleted) == 0 && len(c.Updated) == 0
}

// Changes computes the features added, deleted or updated between the two store revisions.
//
// Only subtrees with distinct revisions are visited: shared revisions did not change.
func (e Event) Changes() ChangeSet {
	var changes ChangeSet
	oldStore, _ := e.Old.(*storeRevision)
	newStore, _ := e.New.(*storeRevision)
	if oldStore == newStore {
		return changes
	}

	oldCollections := collectionsOf(oldStore)
	newCollections := collectionsOf(newStore)

	for _, c := range oldCollections {
		if _, kept := findSlot(newCollections, c.Get()); !kept {
			changes.Deleted = append(changes.Deleted, featuresOf(c.Revision())...)
		}
	}
	for _, c := range newCollections {
		former, kept := findSlot(oldCollections, c.Get())
		if !kept {
			changes.Added = append(changes.Added, featuresOf(c.Revision())...)
			continue
		}
		if former.Revision() == c.Revision() {
			continue
		}
		diffFeatures(&changes, former.Revision().(*collectionRevision), c.Revision().(*collectionRevision))
	}

	return changes
}

func diffFeatures(changes *ChangeSet, former, latest *collectionRevision) {
	for _, f := range former.features {
		if _, kept := findSlot(latest.features, f.Get()); !kept {
			changes.Deleted = append(changes.Deleted, f.Get())
		}
	}
	for _, f := range latest.features {
		previous, kept := findSlot(former.features, f.Get())
		switch {
		case !kept:
			changes.Added = append(changes.Added, f.Get())
		case previous.Revision() != f.Revision():
			changes.Updated = append(changes.Updated, f.Get())
		}
	}
}

func collectionsOf(r *storeRevision) revision.References[*FeatureCollection] {
	if r == nil {
		return nil
	}
	return r.collections
}

func featuresOf(r revision.Revision) []*Feature {
	return r.(*collectionRevision).features.Children()
}

func findSlot[T revision.Revisionable](refs revision.References[T], child T) (revision.Reference[T], bool) {
	i := refs.IndexOf(child)
	if i < 0 {
		return revision.Reference[T]{}, false
	}
	return refs[i], true
}
