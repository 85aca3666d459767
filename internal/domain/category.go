package domain

import "fmt"

// Dictionary ids with fixed meaning. They are an external contract of the
// fact tables and are not configurable.
const (
	PaymentTypeBodyID    int64 = 1
	PaymentTypePercentID int64 = 2
	CategoryIssuanceID   int64 = 3
	CategoryCollectionID int64 = 4
)

// CategoryKind is the meaning of a dictionary entry for the reports.
type CategoryKind int

const (
	CategoryOther CategoryKind = iota
	CategoryIssuance
	CategoryCollection
	CategoryBodyPayment
	CategoryPercentPayment
)

func (k CategoryKind) String() string {
	switch k {
	case CategoryIssuance:
		return "issuance"
	case CategoryCollection:
		return "collection"
	case CategoryBodyPayment:
		return "body_payment"
	case CategoryPercentPayment:
		return "percent_payment"
	default:
		return "other"
	}
}

// DictionaryEntry is a row of the dictionary table.
type DictionaryEntry struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Category is a resolved dictionary entry.
type Category struct {
	ID   int64
	Name string
	Kind CategoryKind
}

// Categories is the dictionary resolved once at startup. Everything that
// depends on category meaning receives it explicitly.
type Categories struct {
	Issuance       Category
	Collection     Category
	BodyPayment    Category
	PercentPayment Category
}

// NewCategories resolves the dictionary. Issuance and collection must be
// present; payment types fall back to their fixed ids without a name.
func NewCategories(entries []DictionaryEntry) (Categories, error) {
	c := Categories{
		BodyPayment:    Category{ID: PaymentTypeBodyID, Kind: CategoryBodyPayment},
		PercentPayment: Category{ID: PaymentTypePercentID, Kind: CategoryPercentPayment},
	}

	for _, entry := range entries {
		category := Category{ID: entry.ID, Name: entry.Name, Kind: kindOf(entry.ID)}

		switch category.Kind {
		case CategoryIssuance:
			c.Issuance = category
		case CategoryCollection:
			c.Collection = category
		case CategoryBodyPayment:
			c.BodyPayment = category
		case CategoryPercentPayment:
			c.PercentPayment = category
		}
	}

	if c.Issuance.ID == 0 {
		return Categories{}, fmt.Errorf("dictionary has no issuance category (id %d)", CategoryIssuanceID)
	}
	if c.Collection.ID == 0 {
		return Categories{}, fmt.Errorf("dictionary has no collection category (id %d)", CategoryCollectionID)
	}

	return c, nil
}

// DefaultCategories returns the fixed contract without dictionary names.
func DefaultCategories() Categories {
	c, _ := NewCategories([]DictionaryEntry{
		{ID: PaymentTypeBodyID},
		{ID: PaymentTypePercentID},
		{ID: CategoryIssuanceID},
		{ID: CategoryCollectionID},
	})
	return c
}

func kindOf(id int64) CategoryKind {
	switch id {
	case CategoryIssuanceID:
		return CategoryIssuance
	case CategoryCollectionID:
		return CategoryCollection
	case PaymentTypeBodyID:
		return CategoryBodyPayment
	case PaymentTypePercentID:
		return CategoryPercentPayment
	default:
		return CategoryOther
	}
}
