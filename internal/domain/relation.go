package domain

// Relation names a user-to-target toggle relation whose row existence encodes a flag.
type Relation string

const (
	RelationSavedRoute Relation = "saved_route"
	RelationTripLike   Relation = "trip_like"
)

func (r Relation) Valid() bool {
	switch r {
	case RelationSavedRoute, RelationTripLike:
		return true
	}
	return false
}
