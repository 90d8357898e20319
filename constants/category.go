package constants

// Category is one of the fixed entity extraction classes. Keeping the set
// typed prevents a mistyped category name from silently creating a ghost key
// in the entity map.
type Category string

const (
	CategoryPerson Category = "PERSON"
	CategoryEmail  Category = "EMAIL"
	CategoryPhone  Category = "PHONE"
	CategoryOrg    Category = "ORG"
	CategoryDate   Category = "DATE"
	CategorySkill  Category = "SKILL"
)

// AllCategories returns the fixed category set in a stable order.
func AllCategories() []Category {
	return []Category{
		CategoryPerson,
		CategoryEmail,
		CategoryPhone,
		CategoryOrg,
		CategoryDate,
		CategorySkill,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPerson, CategoryEmail, CategoryPhone, CategoryOrg, CategoryDate, CategorySkill:
		return true
	}
	return false
}
